package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceSection represents the source configuration from config file. Unset
// fields keep their defaults.
type SourceSection struct {
	URL          string `yaml:"url"`
	Selector     string `yaml:"selector"`
	DarkMode     *bool  `yaml:"dark_mode"`
	BaseOrigin   string `yaml:"base_origin"`
	DeriveOrigin *bool  `yaml:"derive_origin"`
}

// HTTPSection represents outbound HTTP settings from config file.
type HTTPSection struct {
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"`
}

// FileConfig represents the structure of ~/.newscards/config.yaml.
type FileConfig struct {
	Source  SourceSection `yaml:"source"`
	HTTP    HTTPSection   `yaml:"http"`
	LogFile string        `yaml:"log_file"`
}

// DefaultConfigPath returns ~/.newscards/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".newscards", "config.yaml"), nil
}

// LoadConfigFile loads configuration from path. Returns nil if the file
// doesn't exist (not an error). Returns error if the file exists but cannot
// be parsed.
func LoadConfigFile(path string) (*FileConfig, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
