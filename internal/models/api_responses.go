// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides consistent structure for both successful and error
// responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"summary": {...}, "clusters": [...]},
//	  "metadata": {"timestamp": "2026-08-23T12:00:00Z", "query_time_ms": 12}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is 0 and Cached is true when the response was served from the
// analytics cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - ANALYSIS_ERROR: clustering engine failure
//   - STORE_ERROR: report store failure
//   - NOT_FOUND: resource doesn't exist
//   - METHOD_NOT_ALLOWED: wrong HTTP method
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo contains offset-based pagination metadata for list
// responses.
type PaginationInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

// ReportsResponse wraps a page of compliance reports.
type ReportsResponse struct {
	Reports    []ComplianceReport `json:"reports"`
	Pagination PaginationInfo     `json:"pagination"`
}

// HealthStatus is the service-identity payload of the health endpoint.
type HealthStatus struct {
	Status         string  `json:"status"`
	Service        string  `json:"service"`
	Version        string  `json:"version"`
	StoreConnected bool    `json:"store_connected"`
	Uptime         float64 `json:"uptime_seconds"`
}
