// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the catalog client, session registry and server via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalog browser.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"4200"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Upstream repository REST API (DSpace "server/api" root)
	CatalogAPIURL   string        `env:"CATALOG_API_URL"  envDefault:"http://localhost:8080/server/api"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	// DefaultPageSize is the initial page size of every list view.
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"10"`

	// LookupPageSize is the page size used when a deep link forces a search
	// across parent lists (communities, or collections of every community).
	LookupPageSize int `env:"LOOKUP_PAGE_SIZE" envDefault:"100"`

	// SessionTTL is how long an idle browser session is kept in memory.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CatalogAPIURL == "" {
		return fmt.Errorf("config: CATALOG_API_URL must not be empty")
	}
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("config: DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.LookupPageSize < 1 {
		return fmt.Errorf("config: LOOKUP_PAGE_SIZE must be positive, got %d", c.LookupPageSize)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
