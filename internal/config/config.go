// Package config handles configuration loading and validation for congregate.
//
// Configuration is a single TOML file. Every field has a usable default so
// a bare `congregate serve` works out of the box with a local SQLite file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "congregate/pkg/errors"
)

// Default values applied when the config file omits a field.
const (
	DefaultListen       = "127.0.0.1:8080"
	DefaultDatabasePath = "congregate.db"
	DefaultSiteTitle    = "Congregate"
	DefaultSessionTTL   = 30 * 24 * time.Hour
)

// Config is the application configuration.
type Config struct {
	// Listen is the HTTP listen address, host:port.
	Listen string `toml:"listen"`

	// DatabasePath is the SQLite database file.
	DatabasePath string `toml:"database_path"`

	// SiteTitle appears in page headers and the ICS calendar name.
	SiteTitle string `toml:"site_title"`

	// SessionTTLHours is the login session lifetime in hours.
	SessionTTLHours int `toml:"session_ttl_hours"`

	// SecureCookies marks session cookies Secure; enable behind TLS.
	SecureCookies bool `toml:"secure_cookies"`

	// Auxiliaries seeds the auxiliary table on `congregate init`.
	Auxiliaries []AuxiliarySeed `toml:"auxiliaries"`
}

// AuxiliarySeed describes one auxiliary to create during init.
type AuxiliarySeed struct {
	Slug  string `toml:"slug"`
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return DefaultSessionTTL
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Listen:       DefaultListen,
		DatabasePath: DefaultDatabasePath,
		SiteTitle:    DefaultSiteTitle,
		Auxiliaries: []AuxiliarySeed{
			{Slug: "ward", Name: "Ward", Color: "#4a6da7"},
			{Slug: "relief-society", Name: "Relief Society", Color: "#a74a6d"},
			{Slug: "elders-quorum", Name: "Elders Quorum", Color: "#6da74a"},
			{Slug: "young-women", Name: "Young Women", Color: "#a7964a"},
			{Slug: "primary", Name: "Primary", Color: "#4aa796"},
		},
	}
}

// Load reads the TOML file at path, fills in defaults, and validates the
// result. An empty path returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath
	}
	if c.SiteTitle == "" {
		c.SiteTitle = DefaultSiteTitle
	}
}

// Validate checks the configuration for values that would fail later in
// confusing ways.
func (c *Config) Validate() error {
	if c.SessionTTLHours < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "session_ttl_hours cannot be negative")
	}
	for _, aux := range c.Auxiliaries {
		if err := apperrors.ValidateSlug(aux.Slug); err != nil {
			return err
		}
		if aux.Name == "" {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "auxiliary %q has no name", aux.Slug)
		}
	}
	return nil
}
