package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Mikefromtheback/plagiat-check/internal/config"
)

// logSettings is the resolved logger configuration of one invocation
type logSettings struct {
	level slog.Level
	file  string
	log   config.LogConfig
}

// resolveLogSettings combines the [log] section with the persistent flags.
// --verbose lowers the level to info unless --log-level is given.
func resolveLogSettings(cfg config.LogConfig, verbose bool, levelFlag, fileFlag string) logSettings {
	level, _ := config.ParseLogLevel(cfg.Level)
	if verbose {
		level = min(level, slog.LevelInfo)
	}
	if strings.TrimSpace(levelFlag) != "" {
		if parsed, ok := config.ParseLogLevel(levelFlag); ok {
			level = parsed
		}
	}

	file := cfg.File
	if strings.TrimSpace(fileFlag) != "" {
		file = fileFlag
	}

	return logSettings{level: level, file: strings.TrimSpace(file), log: cfg}
}

// logWriter returns stderr, or a rotating file when a log file is set
func (s logSettings) logWriter(stderr io.Writer) io.Writer {
	if s.file == "" {
		return stderr
	}
	return &lumberjack.Logger{
		Filename:   s.file,
		MaxSize:    s.log.MaxSizeMB,
		MaxBackups: s.log.MaxBackups,
		MaxAge:     s.log.MaxAgeDays,
		Compress:   s.log.Compress,
	}
}

// newLogger builds the text handler logger for settings
func newLogger(s logSettings, stderr io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(s.logWriter(stderr), &slog.HandlerOptions{
		AddSource: s.level <= slog.LevelDebug,
		Level:     s.level,
	})
	return slog.New(handler)
}

// setupLogging configures the global slog logger from the configuration
// file and the persistent flags.
func setupLogging(cmd *cobra.Command) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString(configFlagName)
	verbose, _ := flags.GetBool(verboseFlagName)
	levelFlag, _ := flags.GetString(logLevelFlagName)
	fileFlag, _ := flags.GetString(logFileFlagName)

	// Configuration errors are reported by the command itself
	logCfg := config.DefaultConfig().Log
	if cfg, err := config.LoadConfig(configPath); err == nil {
		logCfg = cfg.Log
	}

	if strings.TrimSpace(levelFlag) != "" {
		if _, ok := config.ParseLogLevel(levelFlag); !ok {
			return invalidFlagValue(logLevelFlagName, levelFlag)
		}
	}

	settings := resolveLogSettings(logCfg, verbose, levelFlag, fileFlag)
	slog.SetDefault(newLogger(settings, os.Stderr))
	slog.Debug("logger configured", "level", settings.level.String(), "file", settings.file)
	return nil
}
