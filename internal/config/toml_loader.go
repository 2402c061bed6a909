package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectConfigFileName is the dedicated configuration file searched for
// from the working directory upward.
const ProjectConfigFileName = ".plagiat.toml"

// PlagiatTomlConfig represents the structure of .plagiat.toml and of the
// [tool.plagiat] table in pyproject.toml. Booleans are pointers so that a
// key missing from the file keeps its default.
type PlagiatTomlConfig struct {
	Canonicalize TomlCanonicalizeConfig `toml:"canonicalize"`
	Input        TomlInputConfig        `toml:"input"`
	Compare      TomlCompareConfig      `toml:"compare"`
	Output       TomlOutputConfig       `toml:"output"`
	Log          TomlLogConfig          `toml:"log"`
}

type TomlCanonicalizeConfig struct {
	NormalizeFunctions   *bool `toml:"normalize_functions"`
	NormalizeIdentifiers *bool `toml:"normalize_identifiers"`
	StripDocstrings      *bool `toml:"strip_docstrings"`
}

type TomlInputConfig struct {
	SkipBlankLines  *bool    `toml:"skip_blank_lines"`
	RelativeToList  *bool    `toml:"relative_to_list"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

type TomlCompareConfig struct {
	Workers int    `toml:"workers"`
	OnError string `toml:"on_error"`
}

type TomlOutputConfig struct {
	Format       string `toml:"format"`
	ShowProgress *bool  `toml:"show_progress"`
}

type TomlLogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   *bool  `toml:"compress"`
}

// TomlConfigLoader handles TOML-only configuration discovery
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration with ruff-like priority:
// 1. .plagiat.toml (dedicated config file)
// 2. pyproject.toml (with [tool.plagiat] section)
// 3. defaults
//
// The returned path is the file the values came from, or "" for defaults.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, string, error) {
	if configPath, err := findUpward(startDir, ProjectConfigFileName); err == nil {
		config, err := l.LoadFile(configPath)
		if err != nil {
			return nil, "", err
		}
		return config, configPath, nil
	}

	if configPath, err := findPyprojectToml(startDir); err == nil {
		config, found, err := loadPyprojectFile(configPath)
		if err != nil {
			return nil, "", err
		}
		if found {
			return config, configPath, nil
		}
	}

	return DefaultConfig(), "", nil
}

// LoadFile reads one .plagiat.toml file and merges it into the defaults
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var tomlConfig PlagiatTomlConfig
	if err := toml.Unmarshal(data, &tomlConfig); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	config := DefaultConfig()
	tomlConfig.mergeInto(config)
	return config, nil
}

// findUpward walks up the directory tree to find name
func findUpward(startDir, name string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	for {
		configPath := filepath.Join(dir, name)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// mergeInto copies every value present in the file over the defaults
func (t *PlagiatTomlConfig) mergeInto(config *Config) {
	mergeBoolPtr(&config.Canonicalize.NormalizeFunctions, t.Canonicalize.NormalizeFunctions)
	mergeBoolPtr(&config.Canonicalize.NormalizeIdentifiers, t.Canonicalize.NormalizeIdentifiers)
	mergeBoolPtr(&config.Canonicalize.StripDocstrings, t.Canonicalize.StripDocstrings)

	mergeBoolPtr(&config.Input.SkipBlankLines, t.Input.SkipBlankLines)
	mergeBoolPtr(&config.Input.RelativeToList, t.Input.RelativeToList)
	if len(t.Input.IncludePatterns) > 0 {
		config.Input.IncludePatterns = t.Input.IncludePatterns
	}
	if len(t.Input.ExcludePatterns) > 0 {
		config.Input.ExcludePatterns = t.Input.ExcludePatterns
	}

	if t.Compare.Workers != 0 {
		config.Compare.Workers = t.Compare.Workers
	}
	if t.Compare.OnError != "" {
		config.Compare.OnError = t.Compare.OnError
	}

	if t.Output.Format != "" {
		config.Output.Format = t.Output.Format
	}
	mergeBoolPtr(&config.Output.ShowProgress, t.Output.ShowProgress)

	if t.Log.Level != "" {
		config.Log.Level = t.Log.Level
	}
	if t.Log.File != "" {
		config.Log.File = t.Log.File
	}
	if t.Log.MaxSizeMB > 0 {
		config.Log.MaxSizeMB = t.Log.MaxSizeMB
	}
	if t.Log.MaxBackups > 0 {
		config.Log.MaxBackups = t.Log.MaxBackups
	}
	if t.Log.MaxAgeDays > 0 {
		config.Log.MaxAgeDays = t.Log.MaxAgeDays
	}
	mergeBoolPtr(&config.Log.Compress, t.Log.Compress)
}

func mergeBoolPtr(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// DefaultTomlConfig renders the defaults as a .plagiat.toml document
func DefaultTomlConfig() ([]byte, error) {
	return toml.Marshal(DefaultConfig())
}
