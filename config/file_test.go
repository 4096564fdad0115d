package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ".newscards", "config.yaml"), path)
}

func TestLoadConfigFile_NoFile(t *testing.T) {
	// A path inside an empty temporary directory
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Nil(t, cfg, "Should return nil when config file doesn't exist")
}

func TestLoadConfigFile_ValidConfig(t *testing.T) {
	// Write a valid config file
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `source:
  url: "https://example.com/news/"
  selector: ".headline a"
  dark_mode: true
  base_origin: "https://example.com"
  derive_origin: false
http:
  user_agent: "newscards/1.0"
  timeout: "15s"
log_file: "/tmp/newscards.log"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	cfg, err := LoadConfigFile(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/news/", cfg.Source.URL)
	assert.Equal(t, ".headline a", cfg.Source.Selector)
	require.NotNil(t, cfg.Source.DarkMode)
	assert.True(t, *cfg.Source.DarkMode)
	assert.Equal(t, "https://example.com", cfg.Source.BaseOrigin)
	require.NotNil(t, cfg.Source.DeriveOrigin)
	assert.False(t, *cfg.Source.DeriveOrigin)
	assert.Equal(t, "newscards/1.0", cfg.HTTP.UserAgent)
	assert.Equal(t, "15s", cfg.HTTP.Timeout)
	assert.Equal(t, "/tmp/newscards.log", cfg.LogFile)
}

func TestLoadConfigFile_InvalidYAML(t *testing.T) {
	// Write an invalid config file
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	invalidContent := `source:
  url: "https://example.com"
http:
  - this is invalid yaml because http should be an object not a list
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidContent), 0o600))

	cfg, err := LoadConfigFile(configPath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigFile_PartialConfig(t *testing.T) {
	// Write a partial config file (only the URL)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `source:
  url: "https://example.com/news/"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	cfg, err := LoadConfigFile(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/news/", cfg.Source.URL)
	assert.Equal(t, "", cfg.Source.Selector, "Unspecified selector should be empty string")
	assert.Nil(t, cfg.Source.DarkMode, "Unspecified dark mode should be nil")
	assert.Equal(t, "", cfg.HTTP.Timeout)
}
