package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pevans/newscards/config"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// commonFlags are accepted by every subcommand. They override the config
// file and environment when given explicitly.
type commonFlags struct {
	configPath   string
	url          string
	selector     string
	dark         bool
	deriveOrigin bool
	timeout      time.Duration
	userAgent    string
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultPath = ""
	}

	cf := &commonFlags{}
	fs.StringVar(&cf.configPath, "config", getEnv("NEWSCARDS_CONFIG", defaultPath), "Config file path (NEWSCARDS_CONFIG)")
	fs.StringVar(&cf.url, "url", "", "Listing page URL")
	fs.StringVar(&cf.selector, "selector", "", "CSS selector for headline links")
	fs.BoolVar(&cf.dark, "dark", false, "Use the dark theme")
	fs.BoolVar(&cf.deriveOrigin, "derive-origin", false, "Resolve relative links against the listing URL")
	fs.DurationVar(&cf.timeout, "timeout", 0, "Per-request timeout (0 = none)")
	fs.StringVar(&cf.userAgent, "user-agent", "", "User-Agent header")
	return cf
}

// loadConfig loads configuration with precedence:
// 1. Flags given on the command line (highest priority)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
func loadConfig(fs *flag.FlagSet, cf *commonFlags) (*config.Config, error) {
	cfg, err := config.Load(cf.configPath, os.Getenv)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.Source.ListingURL = cf.url
		case "selector":
			cfg.Source.ListingSelector = cf.selector
		case "dark":
			cfg.Source.DarkMode = cf.dark
		case "derive-origin":
			cfg.Source.DeriveOrigin = cf.deriveOrigin
		case "timeout":
			cfg.Timeout = cf.timeout
		case "user-agent":
			cfg.UserAgent = cf.userAgent
		}
	})
	cfg.Source = cfg.Source.Normalize()

	return cfg, nil
}

// mustLoadConfig is loadConfig for command handlers: a configuration error
// ends the process.
func mustLoadConfig(fs *flag.FlagSet, cf *commonFlags) *config.Config {
	cfg, err := loadConfig(fs, cf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
