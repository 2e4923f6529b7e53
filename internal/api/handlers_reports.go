// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Genrei123/rcv-api/internal/logging"
	"github.com/Genrei123/rcv-api/internal/metrics"
	"github.com/Genrei123/rcv-api/internal/models"
	"github.com/Genrei123/rcv-api/internal/store"
)

// maxReportBodyBytes caps the ingestion payload size.
const maxReportBodyBytes = 1 << 20 // 1 MiB

// CreateReport handles POST /api/v1/reports.
//
// Rejects unknown compliance statuses and half-present coordinate pairs with
// 400. On success the stored report is returned with 201 and the analytics
// cache is invalidated.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBodyBytes)

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Request body must be valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	// Coordinates come as a pair or not at all.
	if (req.Latitude == nil) != (req.Longitude == nil) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"latitude and longitude must be provided together", nil)
		return
	}

	report := &models.ComplianceReport{
		ID:           uuid.New().String(),
		AgentID:      req.AgentID,
		Status:       models.ComplianceStatus(req.Status),
		Reason:       req.Reason,
		ScanMetadata: req.ScanMetadata,
		CreatedAt:    time.Now().UTC(),
	}
	if req.Latitude != nil && req.Longitude != nil {
		report.Location = &models.Coordinates{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		}
	}

	putStart := time.Now()
	err := h.store.Put(r.Context(), report)
	metrics.RecordStoreOperation("put", time.Since(putStart), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"Failed to store compliance report", err)
		return
	}

	// New data invalidates every cached analysis.
	h.ClearCache()

	logging.Ctx(r.Context()).Info().
		Str("report_id", report.ID).
		Str("agent_id", sanitizeLogValue(report.AgentID)).
		Str("status", string(report.Status)).
		Bool("has_location", report.Location != nil).
		Msg("compliance report ingested")

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data:   report,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// ListReports handles GET /api/v1/reports.
//
// Query parameters: limit (capped at the configured maximum), offset,
// agentId, status, hasLocation. Results are ordered by creation time
// ascending so pages are stable across requests.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit, ok := getIntParam(r, "limit", h.config.API.DefaultPageSize)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"limit must be an integer", nil)
		return
	}
	if limit > h.config.API.MaxPageSize {
		limit = h.config.API.MaxPageSize
	}

	offset, ok := getIntParam(r, "offset", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"offset must be an integer", nil)
		return
	}

	req := &ListReportsRequest{
		Limit:       limit,
		Offset:      offset,
		AgentID:     r.URL.Query().Get("agentId"),
		Status:      r.URL.Query().Get("status"),
		HasLocation: r.URL.Query().Get("hasLocation") == "true",
	}

	if apiErr := validateRequest(req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	filter := store.Filter{
		AgentID:         req.AgentID,
		Status:          models.ComplianceStatus(req.Status),
		RequireLocation: req.HasLocation,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}

	start := time.Now()
	reports, err := h.store.List(r.Context(), filter)
	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"Failed to list compliance reports", err)
		return
	}

	countStart := time.Now()
	total, err := h.store.Count(r.Context(), store.Filter{
		AgentID:         req.AgentID,
		Status:          models.ComplianceStatus(req.Status),
		RequireLocation: req.HasLocation,
	})
	metrics.RecordStoreOperation("count", time.Since(countStart), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"Failed to count compliance reports", err)
		return
	}

	if reports == nil {
		reports = []models.ComplianceReport{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.ReportsResponse{
			Reports: reports,
			Pagination: models.PaginationInfo{
				Limit:   req.Limit,
				Offset:  req.Offset,
				Count:   len(reports),
				HasMore: req.Offset+len(reports) < total,
			},
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GetReport handles GET /api/v1/reports/{id}.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	start := time.Now()
	report, err := h.store.Get(r.Context(), id)
	metrics.RecordStoreOperation("get", time.Since(start), err)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND",
				"No compliance report with that ID", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR",
			"Failed to load compliance report", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   report,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
