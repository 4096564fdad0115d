package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pevans/newscards/discovery"
	"github.com/pevans/newscards/scraper"
)

// Environment variables read by ApplyEnv.
const (
	EnvURL       = "NEWSCARDS_URL"
	EnvSelector  = "NEWSCARDS_SELECTOR"
	EnvDark      = "NEWSCARDS_DARK"
	EnvUserAgent = "NEWSCARDS_USER_AGENT"
	EnvTimeout   = "NEWSCARDS_TIMEOUT"
	EnvLog       = "NEWSCARDS_LOG"
)

// Config represents the startup configuration of the reader.
type Config struct {
	Source    scraper.SourceConfig
	UserAgent string
	// Timeout applies to each request; zero means none.
	Timeout time.Duration
	// LogFile receives log output while the terminal UI owns the screen.
	LogFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source:    scraper.NewSourceConfig(),
		UserAgent: discovery.DefaultUserAgent,
	}
}

// ApplyFile overlays the values set in fc. A nil fc changes nothing.
func (c *Config) ApplyFile(fc *FileConfig) error {
	if fc == nil {
		return nil
	}

	if fc.Source.URL != "" {
		c.Source.ListingURL = fc.Source.URL
	}
	if fc.Source.Selector != "" {
		c.Source.ListingSelector = fc.Source.Selector
	}
	if fc.Source.DarkMode != nil {
		c.Source.DarkMode = *fc.Source.DarkMode
	}
	if fc.Source.BaseOrigin != "" {
		c.Source.BaseOrigin = fc.Source.BaseOrigin
	}
	if fc.Source.DeriveOrigin != nil {
		c.Source.DeriveOrigin = *fc.Source.DeriveOrigin
	}

	if fc.HTTP.UserAgent != "" {
		c.UserAgent = fc.HTTP.UserAgent
	}
	if fc.HTTP.Timeout != "" {
		timeout, err := time.ParseDuration(fc.HTTP.Timeout)
		if err != nil {
			return fmt.Errorf("invalid http.timeout: %w", err)
		}
		c.Timeout = timeout
	}

	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}

	return nil
}

// ApplyEnv overlays values from environment variables, looked up with
// getenv. Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if value := getenv(EnvURL); value != "" {
		c.Source.ListingURL = value
	}
	if value := getenv(EnvSelector); value != "" {
		c.Source.ListingSelector = value
	}
	if value := getenv(EnvDark); value != "" {
		dark, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDark, err)
		}
		c.Source.DarkMode = dark
	}
	if value := getenv(EnvUserAgent); value != "" {
		c.UserAgent = value
	}
	if value := getenv(EnvTimeout); value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = timeout
	}
	if value := getenv(EnvLog); value != "" {
		c.LogFile = value
	}
	return nil
}

// Load builds the configuration from defaults, the config file at path and
// the environment, in that order of precedence (later wins). A blank
// selector from any of them falls back to the default.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	fc, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFile(fc); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.Source = cfg.Source.Normalize()

	return cfg, nil
}

// Fetcher builds a fetcher honouring the HTTP settings.
func (c *Config) Fetcher() *discovery.Fetcher {
	return discovery.NewFetcher(
		discovery.WithUserAgent(c.UserAgent),
		discovery.WithTimeout(c.Timeout),
	)
}
