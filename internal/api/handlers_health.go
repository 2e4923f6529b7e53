// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package api

import (
	"net/http"
	"time"

	"github.com/Genrei123/rcv-api/internal/models"
	"github.com/Genrei123/rcv-api/internal/store"
)

// Health handles GET /api/v1/health: service identity plus store
// connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storeConnected := h.storeReachable(r)

	status := "ok"
	httpStatus := http.StatusOK
	if !storeConnected {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:         status,
			Service:        "rcv-api",
			Version:        Version,
			StoreConnected: storeConnected,
			Uptime:         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles GET /api/v1/health/live. Always 200 while the process
// can serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"status": "alive"},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles GET /api/v1/health/ready. 503 until the report store
// answers queries.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.storeReachable(r) {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY",
			"Report store is not reachable", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"status": "ready"},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// storeReachable probes the report store with a cheap count.
func (h *Handler) storeReachable(r *http.Request) bool {
	if h.store == nil {
		return false
	}
	_, err := h.store.Count(r.Context(), store.Filter{})
	return err == nil
}
