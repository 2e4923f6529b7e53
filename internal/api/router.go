// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Genrei123/rcv-api/internal/middleware"
)

// healthRateLimit allows frequent probes without opening an abuse vector.
const healthRateLimit = 1000

// Router wires the API handlers into a Chi route tree.
type Router struct {
	handler *Handler
}

// NewRouter creates a router for the given handler.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// Setup builds the complete route tree with the global middleware stack.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	cfg := router.handler.config

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// CORS is global so OPTIONS preflights succeed on every route.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(healthRateLimit, cfg.Security.RateLimitWindow))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if !cfg.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/compliance", router.handler.ComplianceAnalysis)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", router.handler.CreateReport)
			r.Get("/", router.handler.ListReports)
			r.Get("/{id}", router.handler.GetReport)
		})
	})

	return r
}
