package mcp

import (
	"log/slog"

	"github.com/Mikefromtheback/plagiat-check/app"
	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/internal/config"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	compare    domain.CompareService
	pairReader domain.PairListReader
	loader     domain.CompareConfigurationLoader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string, logger *slog.Logger) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dependencies{
		compare:    service.NewCompareService(service.WithLogger(logger)),
		pairReader: service.NewPairListReader(),
		loader:     service.NewConfigurationLoader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// CanonicalizeOptions returns the rewrite options of the configuration snapshot
func (d *Dependencies) CanonicalizeOptions() domain.CanonicalizeOptions {
	return d.config.CanonicalizeOptions()
}

// BuildCompareUseCase assembles a fresh CompareUseCase with injected dependencies.
func (d *Dependencies) BuildCompareUseCase() (*app.CompareUseCase, error) {
	return app.NewCompareUseCaseBuilder().
		WithService(d.compare).
		WithPairReader(d.pairReader).
		WithFormatter(service.NewCompareFormatter()).
		WithConfigLoader(d.loader).
		WithOutputWriter(service.NewFileOutputWriter(nil)).
		Build()
}
