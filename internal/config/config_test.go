// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package config

import (
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }},
		{"missing store path", func(c *Config) { c.Store.Path = " "; c.Store.InMemory = false }},
		{"zero default epsilon", func(c *Config) { c.Analytics.DefaultEpsilonKm = 0 }},
		{"zero min points", func(c *Config) { c.Analytics.DefaultMinPoints = 0 }},
		{"max epsilon below default", func(c *Config) { c.Analytics.MaxEpsilonKm = 1 }},
		{"zero default page size", func(c *Config) { c.API.DefaultPageSize = 0 }},
		{"max page below default", func(c *Config) { c.API.MaxPageSize = 5 }},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }},
		{"zero rate window", func(c *Config) { c.Security.RateLimitWindow = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfig_ValidateAllowsMemoryStoreWithoutPath(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Store.Path = ""
	cfg.Store.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for in-memory store", err)
	}
}

func TestConfig_ValidateAllowsDisabledRateLimit(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	cfg.Security.RateLimitWindow = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil when rate limiting is disabled", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	cfg := ServerConfig{Host: "127.0.0.1", Port: 9090}
	if got := cfg.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", got)
	}
}

func TestServerConfig_IsProduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		environment string
		want        bool
	}{
		{"production", true},
		{"PRODUCTION", true},
		{"development", false},
		{"", false},
	}

	for _, tt := range tests {
		tt := tt
		cfg := ServerConfig{Environment: tt.environment}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction(%q) = %v, want %v", tt.environment, got, tt.want)
		}
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"STORE_PATH", "store.path"},
		{"ANALYTICS_DEFAULT_EPSILON_KM", "analytics.default_epsilon_km"},
		{"LOG_LEVEL", "logging.level"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"PATH", ""},
		{"RANDOM_UNRELATED_VAR", ""},
	}

	for _, tt := range tests {
		tt := tt
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("STORE_IN_MEMORY", "true")
	t.Setenv("ANALYTICS_CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv(ConfigPathEnvVar, "/nonexistent/config.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if !cfg.Store.InMemory {
		t.Error("Store.InMemory = false, want true")
	}
	if cfg.Analytics.CacheTTL != 90*time.Second {
		t.Errorf("Analytics.CacheTTL = %s, want 90s", cfg.Analytics.CacheTTL)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != "https://a.example" {
		t.Errorf("Security.CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}

	// Untouched settings keep their defaults.
	if cfg.API.DefaultPageSize != 20 {
		t.Errorf("API.DefaultPageSize = %d, want default 20", cfg.API.DefaultPageSize)
	}
}
