package scraper

import (
	"net/url"
	"strings"
)

// Defaults for a fresh session.
const (
	DefaultListingURL      = "https://www.hurriyet.com.tr/gundem/"
	DefaultListingSelector = ".category__list a"
	DefaultBaseOrigin      = "https://www.hurriyet.com.tr"

	// DetailSelector is the container holding an article's paragraphs.
	DetailSelector = ".news-content"

	// MaxDetailLength caps detail text, counted in characters.
	MaxDetailLength = 2000
)

// SourceConfig defines where headlines come from and how they are shown.
type SourceConfig struct {
	ListingURL      string `json:"listing_url" yaml:"url"`
	ListingSelector string `json:"listing_selector" yaml:"selector"`
	DarkMode        bool   `json:"dark_mode" yaml:"dark_mode"`

	// BaseOrigin is prefixed to relative links. It is fixed rather than taken
	// from ListingURL unless DeriveOrigin is set.
	BaseOrigin   string `json:"base_origin" yaml:"base_origin"`
	DeriveOrigin bool   `json:"derive_origin" yaml:"derive_origin"`
}

// NewSourceConfig creates a source configuration with default values.
func NewSourceConfig() SourceConfig {
	return SourceConfig{
		ListingURL:      DefaultListingURL,
		ListingSelector: DefaultListingSelector,
		BaseOrigin:      DefaultBaseOrigin,
	}
}

// Submission holds the raw values of the settings form.
type Submission struct {
	ListingURL      string `json:"listing_url"`
	ListingSelector string `json:"listing_selector"`
	DarkMode        bool   `json:"dark_mode"`
}

// Apply returns a copy of c updated from a settings submission. The URL is
// trimmed and a blank selector falls back to DefaultListingSelector. Nothing
// else is validated.
func (c SourceConfig) Apply(s Submission) SourceConfig {
	c.ListingURL = s.ListingURL
	c.ListingSelector = s.ListingSelector
	c.DarkMode = s.DarkMode
	return c.Normalize()
}

// Normalize trims the URL and selector and replaces a blank selector with
// DefaultListingSelector. Every path that sets a selector goes through it.
func (c SourceConfig) Normalize() SourceConfig {
	c.ListingURL = strings.TrimSpace(c.ListingURL)
	c.ListingSelector = strings.TrimSpace(c.ListingSelector)
	if c.ListingSelector == "" {
		c.ListingSelector = DefaultListingSelector
	}
	return c
}

// Submission returns the form values that would reproduce c.
func (c SourceConfig) Submission() Submission {
	return Submission{
		ListingURL:      c.ListingURL,
		ListingSelector: c.ListingSelector,
		DarkMode:        c.DarkMode,
	}
}

// LinkBase returns the origin relative listing links are resolved against.
func (c SourceConfig) LinkBase() string {
	if c.DeriveOrigin {
		if u, err := url.Parse(c.ListingURL); err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}
	if c.BaseOrigin == "" {
		return DefaultBaseOrigin
	}
	return c.BaseOrigin
}
