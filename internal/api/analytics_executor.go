// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Genrei123/rcv-api/internal/cache"
	"github.com/Genrei123/rcv-api/internal/geocluster"
	"github.com/Genrei123/rcv-api/internal/logging"
	"github.com/Genrei123/rcv-api/internal/metrics"
	"github.com/Genrei123/rcv-api/internal/models"
	"github.com/Genrei123/rcv-api/internal/store"
)

// analyticsCacheType labels analytics lookups in the cache metrics.
const analyticsCacheType = "analytics"

// noDataResult is returned with HTTP 200 when no geolocated reports exist
// yet. An empty platform is not an error condition.
type noDataResult struct {
	TotalReports int    `json:"total_reports"`
	Message      string `json:"message"`
}

// analysisExecutor implements the cache-first execution flow of the
// compliance analytics endpoint:
//
//  1. check the cache for an identical validated query
//  2. on miss, load geolocated reports from the store
//  3. run the clustering engine
//  4. cache the result and respond with query-time metadata
type analysisExecutor struct {
	handler *Handler
}

func newAnalysisExecutor(h *Handler) *analysisExecutor {
	return &analysisExecutor{handler: h}
}

// Execute runs a validated analysis request end to end.
func (e *analysisExecutor) Execute(w http.ResponseWriter, r *http.Request, req *ComplianceAnalysisRequest) {
	start := time.Now()
	h := e.handler

	cacheKey := cache.GenerateKey("compliance_analysis", req)
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			metrics.RecordCacheLookup(analyticsCacheType, true)
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   cached,
				Metadata: models.Metadata{
					Timestamp:   time.Now(),
					QueryTimeMS: 0,
					Cached:      true,
				},
			})
			return
		}
		metrics.RecordCacheLookup(analyticsCacheType, false)
	}

	filter := store.Filter{
		AgentID:         req.AgentID,
		RequireLocation: true,
	}

	listStart := time.Now()
	reports, err := h.store.List(r.Context(), filter)
	metrics.RecordStoreOperation("list", time.Since(listStart), err)
	if err != nil {
		metrics.RecordAnalysisError("store")
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"Failed to load reports for analysis", err)
		return
	}

	if len(reports) == 0 {
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data: noDataResult{
				TotalReports: 0,
				Message:      "No geolocated compliance reports available for analysis",
			},
			Metadata: models.Metadata{
				Timestamp:   time.Now(),
				QueryTimeMS: time.Since(start).Milliseconds(),
			},
		})
		return
	}

	result, err := geocluster.Analyze(reports, req.MaxDistance, req.MinPoints)
	if err != nil {
		switch {
		case errors.Is(err, geocluster.ErrEmptyInput):
			// The store filter already requires coordinates, so this only
			// fires when every stored location turned out non-finite.
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data: noDataResult{
					TotalReports: 0,
					Message:      "No geolocated compliance reports available for analysis",
				},
				Metadata: models.Metadata{
					Timestamp:   time.Now(),
					QueryTimeMS: time.Since(start).Milliseconds(),
				},
			})
		case geocluster.IsInvalidParameter(err):
			metrics.RecordAnalysisError("invalid_parameter")
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			metrics.RecordAnalysisError("engine")
			respondError(w, http.StatusInternalServerError, "ANALYSIS_ERROR",
				"Failed to perform compliance analysis", err)
		}
		return
	}

	metrics.RecordAnalysis(time.Since(start), result.Summary.TotalPoints, result.Summary.ClusterCount)

	logging.Ctx(r.Context()).Info().
		Int("total_points", result.Summary.TotalPoints).
		Int("clusters", result.Summary.ClusterCount).
		Int("noise", result.Summary.NoiseCount).
		Float64("epsilon_km", req.MaxDistance).
		Int("min_points", req.MinPoints).
		Dur("duration", time.Since(start)).
		Msg("compliance analysis completed")

	if h.cache != nil {
		h.cache.Set(cacheKey, result)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   result,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
