package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Mikefromtheback/plagiat-check/internal/config"
)

func TestResolveLogSettings(t *testing.T) {
	base := config.DefaultConfig().Log

	tests := []struct {
		name      string
		cfgLevel  string
		verbose   bool
		levelFlag string
		expected  slog.Level
	}{
		{name: "default is warn", expected: slog.LevelWarn},
		{name: "verbose lowers to info", verbose: true, expected: slog.LevelInfo},
		{name: "verbose keeps debug", cfgLevel: "debug", verbose: true, expected: slog.LevelDebug},
		{name: "configured level", cfgLevel: "error", expected: slog.LevelError},
		{name: "flag wins", cfgLevel: "error", verbose: true, levelFlag: "debug", expected: slog.LevelDebug},
		{name: "numeric flag", levelFlag: "-4", expected: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			if tt.cfgLevel != "" {
				cfg.Level = tt.cfgLevel
			}
			settings := resolveLogSettings(cfg, tt.verbose, tt.levelFlag, "")
			assert.Equal(t, tt.expected, settings.level)
		})
	}
}

func TestLogWriter(t *testing.T) {
	var stderr bytes.Buffer
	cfg := config.DefaultConfig().Log

	settings := resolveLogSettings(cfg, false, "", "")
	assert.Same(t, &stderr, settings.logWriter(&stderr))

	path := filepath.Join(t.TempDir(), "plagiat.log")
	settings = resolveLogSettings(cfg, false, "", path)
	writer, ok := settings.logWriter(&stderr).(*lumberjack.Logger)
	if assert.True(t, ok) {
		assert.Equal(t, path, writer.Filename)
		assert.Equal(t, cfg.MaxSizeMB, writer.MaxSize)
		assert.Equal(t, cfg.MaxBackups, writer.MaxBackups)
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(resolveLogSettings(config.DefaultConfig().Log, false, "", ""), &buf)

	logger.Info("hidden")
	logger.Warn("shown", "pairs", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "pairs=3")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	_, _, err := runCLI(t, "version", "--log-level", "loud")
	assert.Error(t, err)
}
