package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// PyprojectToml represents the parts of pyproject.toml this tool reads
type PyprojectToml struct {
	Tool ToolConfig `toml:"tool"`
}

// ToolConfig represents the [tool] section
type ToolConfig struct {
	Plagiat *PlagiatTomlConfig `toml:"plagiat"`
}

// LoadPyprojectConfig loads configuration from the nearest pyproject.toml.
// Defaults are returned when there is no file or no [tool.plagiat] table.
func LoadPyprojectConfig(startDir string) (*Config, error) {
	configPath, err := findPyprojectToml(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	config, _, err := loadPyprojectFile(configPath)
	return config, err
}

// loadPyprojectFile parses one pyproject.toml and reports whether it had a
// [tool.plagiat] table
func loadPyprojectFile(configPath string) (*Config, bool, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, false, err
	}

	var pyproject PyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if pyproject.Tool.Plagiat == nil {
		return config, false, nil
	}
	pyproject.Tool.Plagiat.mergeInto(config)
	return config, true, nil
}

// findPyprojectToml walks up the directory tree to find pyproject.toml
func findPyprojectToml(startDir string) (string, error) {
	return findUpward(startDir, "pyproject.toml")
}
