package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// EnvPrefix is the prefix of environment variables that override
// configuration values, e.g. PLAGIAT_COMPARE_WORKERS=4.
const EnvPrefix = "PLAGIAT"

// Config represents the main configuration structure
type Config struct {
	// Canonicalize toggles the individual tree rewrites
	Canonicalize CanonicalizeConfig `mapstructure:"canonicalize" yaml:"canonicalize" toml:"canonicalize"`

	// Input controls how pair lists are read
	Input InputConfig `mapstructure:"input" yaml:"input" toml:"input"`

	// Compare controls the batch comparator
	Compare CompareConfig `mapstructure:"compare" yaml:"compare" toml:"compare"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Log configures the structured logger
	Log LogConfig `mapstructure:"log" yaml:"log" toml:"log"`
}

// CanonicalizeConfig holds the rewrite switches
type CanonicalizeConfig struct {
	NormalizeFunctions   bool `mapstructure:"normalize_functions" yaml:"normalize_functions" toml:"normalize_functions"`
	NormalizeIdentifiers bool `mapstructure:"normalize_identifiers" yaml:"normalize_identifiers" toml:"normalize_identifiers"`
	StripDocstrings      bool `mapstructure:"strip_docstrings" yaml:"strip_docstrings" toml:"strip_docstrings"`
}

// InputConfig holds pair list settings
type InputConfig struct {
	// SkipBlankLines ignores empty lines; when false they are format errors
	SkipBlankLines bool `mapstructure:"skip_blank_lines" yaml:"skip_blank_lines" toml:"skip_blank_lines"`

	// RelativeToList resolves relative paths against the list file's directory
	RelativeToList bool `mapstructure:"relative_to_list" yaml:"relative_to_list" toml:"relative_to_list"`

	// IncludePatterns and ExcludePatterns are doublestar globs every listed
	// path must satisfy
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`
}

// CompareConfig holds batch settings
type CompareConfig struct {
	// Workers is the number of pairs compared concurrently
	Workers int `mapstructure:"workers" yaml:"workers" toml:"workers"`

	// OnError is "fail" to abort the batch or "record" to keep going
	OnError string `mapstructure:"on_error" yaml:"on_error" toml:"on_error"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv, table
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// ShowProgress enables the progress bar on interactive terminals
	ShowProgress bool `mapstructure:"show_progress" yaml:"show_progress" toml:"show_progress"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level" toml:"level"`
	File       string `mapstructure:"file" yaml:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress" toml:"compress"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Canonicalize: CanonicalizeConfig{
			NormalizeFunctions:   true,
			NormalizeIdentifiers: true,
			StripDocstrings:      true,
		},
		Input: InputConfig{
			SkipBlankLines:  domain.DefaultSkipBlankLines,
			RelativeToList:  false,
			IncludePatterns: []string{},
			ExcludePatterns: []string{},
		},
		Compare: CompareConfig{
			Workers: domain.DefaultWorkers,
			OnError: string(domain.DefaultErrorMode),
		},
		Output: OutputConfig{
			Format:       string(domain.DefaultOutputFormat),
			ShowProgress: true,
		},
		Log: LogConfig{
			Level:      domain.DefaultLogLevel,
			MaxSizeMB:  domain.DefaultLogMaxSizeMB,
			MaxBackups: domain.DefaultLogMaxBackups,
			MaxAgeDays: domain.DefaultLogMaxAgeDays,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from configPath, or discovers a
// .plagiat.toml / pyproject.toml when configPath is empty. Environment
// variables with the PLAGIAT_ prefix override both.
func LoadConfig(configPath string) (*Config, error) {
	var (
		config *Config
		err    error
	)

	if configPath == "" {
		startDir, wdErr := os.Getwd()
		if wdErr != nil {
			startDir = "."
		}
		config, _, err = NewTomlConfigLoader().LoadConfig(startDir)
	} else {
		config, err = loadConfigFile(configPath)
	}
	if err != nil {
		return nil, err
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadConfigFile reads an explicit TOML, YAML or JSON file through viper
func loadConfigFile(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	setDefaults(v, config)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// applyEnv overlays PLAGIAT_* environment variables onto config
func applyEnv(config *Config) error {
	v := viper.New()
	setDefaults(v, config)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// setDefaults registers every key so viper can unmarshal and resolve
// environment variables for keys absent from the file
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("canonicalize.normalize_functions", c.Canonicalize.NormalizeFunctions)
	v.SetDefault("canonicalize.normalize_identifiers", c.Canonicalize.NormalizeIdentifiers)
	v.SetDefault("canonicalize.strip_docstrings", c.Canonicalize.StripDocstrings)

	v.SetDefault("input.skip_blank_lines", c.Input.SkipBlankLines)
	v.SetDefault("input.relative_to_list", c.Input.RelativeToList)
	v.SetDefault("input.include_patterns", c.Input.IncludePatterns)
	v.SetDefault("input.exclude_patterns", c.Input.ExcludePatterns)

	v.SetDefault("compare.workers", c.Compare.Workers)
	v.SetDefault("compare.on_error", c.Compare.OnError)

	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.show_progress", c.Output.ShowProgress)

	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.file", c.Log.File)
	v.SetDefault("log.max_size_mb", c.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", c.Log.MaxBackups)
	v.SetDefault("log.max_age_days", c.Log.MaxAgeDays)
	v.SetDefault("log.compress", c.Log.Compress)
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Compare.Workers < 1 || c.Compare.Workers > domain.MaxWorkers {
		return fmt.Errorf("compare.workers must be between 1 and %d, got %d", domain.MaxWorkers, c.Compare.Workers)
	}

	switch domain.ErrorMode(c.Compare.OnError) {
	case domain.ErrorModeFail, domain.ErrorModeRecord:
	default:
		return fmt.Errorf("compare.on_error must be %q or %q, got %q",
			domain.ErrorModeFail, domain.ErrorModeRecord, c.Compare.OnError)
	}

	if !IsSupportedFormat(c.Output.Format) {
		return fmt.Errorf("output.format %q is not supported", c.Output.Format)
	}

	for _, pattern := range append(append([]string{}, c.Input.IncludePatterns...), c.Input.ExcludePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid path pattern %q", pattern)
		}
	}

	if _, ok := ParseLogLevel(c.Log.Level); !ok {
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}

	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation values must not be negative")
	}

	return nil
}

// IsSupportedFormat reports whether format names a known output format
func IsSupportedFormat(format string) bool {
	for _, f := range domain.SupportedOutputFormats {
		if string(f) == format {
			return true
		}
	}
	return false
}

// ParseLogLevel accepts debug, info, warn/warning, error or a numeric slog level.
func ParseLogLevel(value string) (slog.Level, bool) {
	level := strings.ToLower(strings.TrimSpace(value))

	switch level {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning", "":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n), true
	}

	return slog.LevelWarn, false
}

// CanonicalizeOptions converts the [canonicalize] section to domain options
func (c *Config) CanonicalizeOptions() domain.CanonicalizeOptions {
	return domain.CanonicalizeOptions{
		NormalizeFunctions:   c.Canonicalize.NormalizeFunctions,
		NormalizeIdentifiers: c.Canonicalize.NormalizeIdentifiers,
		StripDocstrings:      c.Canonicalize.StripDocstrings,
	}
}

// PairListOptions converts the [input] section to domain options
func (c *Config) PairListOptions() domain.PairListOptions {
	return domain.PairListOptions{
		SkipBlankLines:  c.Input.SkipBlankLines,
		RelativeToList:  c.Input.RelativeToList,
		IncludePatterns: c.Input.IncludePatterns,
		ExcludePatterns: c.Input.ExcludePatterns,
	}
}
