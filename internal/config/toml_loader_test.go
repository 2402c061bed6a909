package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTomlConfigLoaderDedicatedFile(t *testing.T) {
	tempDir := t.TempDir()
	content := `[canonicalize]
normalize_identifiers = false

[compare]
workers = 3
on_error = "record"

[output]
format = "table"
show_progress = false
`
	configPath := filepath.Join(tempDir, ProjectConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	config, foundPath, err := NewTomlConfigLoader().LoadConfig(tempDir)
	require.NoError(t, err)

	assert.Equal(t, configPath, foundPath)
	assert.False(t, config.Canonicalize.NormalizeIdentifiers)
	assert.True(t, config.Canonicalize.NormalizeFunctions)
	assert.Equal(t, 3, config.Compare.Workers)
	assert.Equal(t, "record", config.Compare.OnError)
	assert.Equal(t, "table", config.Output.Format)
	assert.False(t, config.Output.ShowProgress)
}

func TestTomlConfigLoaderWalksUp(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	configPath := filepath.Join(tempDir, ProjectConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("[input]\nskip_blank_lines = false\n"), 0644))

	config, foundPath, err := NewTomlConfigLoader().LoadConfig(nested)
	require.NoError(t, err)

	assert.Equal(t, configPath, foundPath)
	assert.False(t, config.Input.SkipBlankLines)
}

func TestTomlConfigLoaderPrefersDedicatedFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ProjectConfigFileName),
		[]byte("[compare]\nworkers = 5\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "pyproject.toml"),
		[]byte("[tool.plagiat.compare]\nworkers = 9\n"), 0644))

	config, _, err := NewTomlConfigLoader().LoadConfig(tempDir)
	require.NoError(t, err)
	assert.Equal(t, 5, config.Compare.Workers)
}

func TestTomlConfigLoaderDefaultsWithoutFiles(t *testing.T) {
	config, foundPath, err := NewTomlConfigLoader().LoadConfig(t.TempDir())
	require.NoError(t, err)

	// a file higher up in the real filesystem may exist; only check shape
	if foundPath == "" {
		assert.Equal(t, DefaultConfig(), config)
	}
}

func TestTomlConfigLoaderInvalidToml(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ProjectConfigFileName),
		[]byte("[compare\nworkers = "), 0644))

	_, _, err := NewTomlConfigLoader().LoadConfig(tempDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestDefaultTomlConfigRoundTrip(t *testing.T) {
	data, err := DefaultTomlConfig()
	require.NoError(t, err)
	assert.Contains(t, string(data), "normalize_functions = true")

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, DefaultConfig().Compare, decoded.Compare)
}
