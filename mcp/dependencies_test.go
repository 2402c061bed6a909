package mcp

import (
	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/internal/config"
	"github.com/Mikefromtheback/plagiat-check/service"
)

func NewTestDependencies(compare domain.CompareService, cfg *config.Config, path string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		compare:    compare,
		pairReader: service.NewPairListReader(),
		loader:     service.NewConfigurationLoader(),
		config:     cfg,
		configPath: path,
	}
}
