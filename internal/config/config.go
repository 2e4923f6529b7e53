// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

// Package config defines the application configuration and loads it from
// layered sources: struct defaults, an optional YAML file, and environment
// variables, in ascending precedence.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// StoreConfig controls the report store.
type StoreConfig struct {
	// Path is the BadgerDB directory.
	Path string `koanf:"path"`

	// InMemory switches to a non-persistent store. Reports are lost on
	// restart; intended for demos and tests.
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every write to the report log.
	SyncWrites bool `koanf:"sync_writes"`
}

// AnalyticsConfig tunes the compliance clustering endpoint.
type AnalyticsConfig struct {
	// DefaultEpsilonKm is the neighborhood radius applied when the request
	// omits max_distance.
	DefaultEpsilonKm float64 `koanf:"default_epsilon_km"`

	// DefaultMinPoints is the density threshold applied when the request
	// omits min_points.
	DefaultMinPoints int `koanf:"default_min_points"`

	// MaxEpsilonKm caps the requested radius. Anything beyond half the
	// Earth's circumference degenerates into one global cluster.
	MaxEpsilonKm float64 `koanf:"max_epsilon_km"`

	// CacheTTL is how long analysis results are served from cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// APIConfig controls pagination limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig controls rate limiting and CORS.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, overridden by the config file
// and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Store: StoreConfig{
			Path:       "/data/rcv-reports",
			InMemory:   false,
			SyncWrites: false,
		},
		Analytics: AnalyticsConfig{
			DefaultEpsilonKm: 1000,
			DefaultMinPoints: 3,
			MaxEpsilonKm:     20000,
			CacheTTL:         5 * time.Minute,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if !c.Store.InMemory && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path is required unless store.in_memory is set")
	}
	if c.Analytics.DefaultEpsilonKm <= 0 {
		return fmt.Errorf("analytics.default_epsilon_km must be positive, got %v", c.Analytics.DefaultEpsilonKm)
	}
	if c.Analytics.DefaultMinPoints < 1 {
		return fmt.Errorf("analytics.default_min_points must be >= 1, got %d", c.Analytics.DefaultMinPoints)
	}
	if c.Analytics.MaxEpsilonKm < c.Analytics.DefaultEpsilonKm {
		return fmt.Errorf("analytics.max_epsilon_km %v below default %v",
			c.Analytics.MaxEpsilonKm, c.Analytics.DefaultEpsilonKm)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be >= 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size %d below default page size %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be >= 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
