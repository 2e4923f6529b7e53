// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

// Package api implements the HTTP surface of the compliance platform:
// report ingestion, geospatial compliance analytics, and health endpoints.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - helpers.go: shared response and parameter helpers
//   - requests.go: validated request structs
//   - analytics_executor.go: cache-first analytics execution
//   - handlers_analytics.go: compliance clustering endpoint
//   - handlers_reports.go: report ingestion and retrieval endpoints
//   - handlers_health.go: health and readiness endpoints
//   - router.go: Chi route wiring
package api

import (
	"time"

	"github.com/Genrei123/rcv-api/internal/cache"
	"github.com/Genrei123/rcv-api/internal/config"
	"github.com/Genrei123/rcv-api/internal/logging"
	"github.com/Genrei123/rcv-api/internal/store"
)

// Version is the service version reported by the health endpoint.
// Overridden at build time via -ldflags.
var Version = "dev"

// Handler carries the dependencies of every API endpoint.
type Handler struct {
	store     store.ReportStore
	config    *config.Config
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler wires the API handlers to the report store and configuration.
// Analysis results are cached with the configured TTL.
func NewHandler(reportStore store.ReportStore, cfg *config.Config) *Handler {
	return &Handler{
		store:     reportStore,
		config:    cfg,
		cache:     cache.New(cfg.Analytics.CacheTTL),
		startTime: time.Now(),
	}
}

// ClearCache invalidates all cached analytics results. Called after every
// successful ingestion so analyses never reflect stale data.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Debug().Msg("analytics cache cleared")
	}
}

// Close releases handler-owned resources.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Stop()
	}
}
