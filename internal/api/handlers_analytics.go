// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package api

import (
	"fmt"
	"net/http"
)

// ComplianceAnalysis handles GET /api/v1/analytics/compliance.
//
// Query parameters:
//   - maxDistance: neighborhood radius in kilometers (default from config)
//   - minPoints: minimum cluster density including the point itself (default from config)
//   - agentId: optional agent filter
//
// Runs DBSCAN over all geolocated reports and returns per-cluster compliance
// statistics plus noise points. Results are cached per parameter tuple.
func (h *Handler) ComplianceAnalysis(w http.ResponseWriter, r *http.Request) {
	maxDistance, ok := getFloatParam(r, "maxDistance", h.config.Analytics.DefaultEpsilonKm)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"maxDistance must be a number of kilometers", nil)
		return
	}

	if maxDistance > h.config.Analytics.MaxEpsilonKm {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("maxDistance must be at most %g km", h.config.Analytics.MaxEpsilonKm), nil)
		return
	}

	minPoints, ok := getIntParam(r, "minPoints", h.config.Analytics.DefaultMinPoints)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"minPoints must be an integer", nil)
		return
	}

	req := &ComplianceAnalysisRequest{
		MaxDistance: maxDistance,
		MinPoints:   minPoints,
		AgentID:     r.URL.Query().Get("agentId"),
	}

	if apiErr := validateRequest(req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	newAnalysisExecutor(h).Execute(w, r, req)
}
