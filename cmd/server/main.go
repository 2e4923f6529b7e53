// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

// Package main is the entry point for the RCV API server.
//
// RCV API is a compliance-tracking backend for field inspections. Agents file
// geolocated compliance reports; the analytics engine clusters them with
// density-based spatial clustering (DBSCAN over haversine distances) to surface
// geographic compliance hotspots.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Report Store: Open BadgerDB (or an in-memory store for ephemeral runs)
//  3. Handlers: REST API with analytics result caching
//  4. HTTP Server: Chi router with rate limiting, CORS, and Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// Commonly tuned settings:
//   - HTTP_HOST, HTTP_PORT: listen address (default 0.0.0.0:8080)
//   - STORE_PATH: BadgerDB directory (default ./data/reports)
//   - STORE_IN_MEMORY=true: ephemeral store, no disk writes
//   - ANALYTICS_DEFAULT_EPSILON_KM, ANALYTICS_DEFAULT_MIN_POINTS: clustering defaults
//   - CORS_ORIGINS: comma-separated allowed origins
//   - LOG_LEVEL, LOG_FORMAT: zerolog configuration
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the analytics cache janitor and closes the report store
//
// # Example Usage
//
// Development with an ephemeral store:
//
//	export STORE_IN_MEMORY=true
//	export LOG_FORMAT=console
//	./rcv-api
//
// Production with persistence:
//
//	export STORE_PATH=/data/reports
//	export STORE_SYNC_WRITES=true
//	export CORS_ORIGINS=https://dashboard.example.com
//	./rcv-api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Genrei123/rcv-api/internal/api"
	"github.com/Genrei123/rcv-api/internal/config"
	"github.com/Genrei123/rcv-api/internal/logging"
	"github.com/Genrei123/rcv-api/internal/metrics"
	"github.com/Genrei123/rcv-api/internal/store"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting RCV API")

	reportStore, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open report store")
	}
	defer func() {
		if err := reportStore.Close(); err != nil && !errors.Is(err, store.ErrStoreClosed) {
			logging.Error().Err(err).Msg("Error closing report store")
		}
	}()

	if cfg.Store.InMemory {
		logging.Warn().Msg("Report store is in-memory; reports are lost on restart")
	} else {
		logging.Info().
			Str("path", cfg.Store.Path).
			Bool("sync_writes", cfg.Store.SyncWrites).
			Msg("Report store opened")
	}

	handler := api.NewHandler(reportStore, cfg)
	defer handler.Close()

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler).Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Uptime gauge, refreshed until shutdown.
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			}
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server failed")
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	} else {
		logging.Info().Msg("Server stopped")
	}
}

// openStore picks the store implementation from configuration.
func openStore(cfg *config.Config) (store.ReportStore, error) {
	if cfg.Store.InMemory {
		return store.NewMemoryStore(), nil
	}
	return store.OpenBadger(store.BadgerOptions{
		Path:       cfg.Store.Path,
		SyncWrites: cfg.Store.SyncWrites,
	})
}
