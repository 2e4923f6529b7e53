// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package api

import (
	"github.com/goccy/go-json"
)

// ComplianceAnalysisRequest holds the validated query parameters of the
// compliance clustering endpoint.
type ComplianceAnalysisRequest struct {
	// MaxDistance is the neighborhood radius in kilometers.
	MaxDistance float64 `validate:"gt=0"`

	// MinPoints is the density threshold for a cluster core.
	MinPoints int `validate:"min=1"`

	// AgentID optionally restricts analysis to one agent's reports.
	AgentID string `validate:"omitempty,min=1,max=128"`
}

// CreateReportRequest is the ingestion payload. Latitude and Longitude are
// pointers so "absent" is distinguishable from zero; a report may legally
// carry no location, but then it never participates in spatial analysis.
type CreateReportRequest struct {
	AgentID      string          `json:"agent_id" validate:"required,min=1,max=128"`
	Status       string          `json:"status" validate:"required,oneof=COMPLIANT NON_COMPLIANT FRAUDULENT"`
	Reason       *string         `json:"reason,omitempty" validate:"omitempty,max=1024"`
	Latitude     *float64        `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64        `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ScanMetadata json.RawMessage `json:"scan_metadata,omitempty"`
}

// ListReportsRequest holds the validated query parameters of the report list
// endpoint.
type ListReportsRequest struct {
	Limit       int    `validate:"min=1"`
	Offset      int    `validate:"min=0"`
	AgentID     string `validate:"omitempty,min=1,max=128"`
	Status      string `validate:"omitempty,oneof=COMPLIANT NON_COMPLIANT FRAUDULENT"`
	HasLocation bool
}
