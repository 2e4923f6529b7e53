// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

// Package models contains the shared data types exchanged between the report
// store, the clustering engine, and the HTTP layer.
package models

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
)

// ComplianceStatus is the closed set of outcomes a field inspection can have.
// Status is caller-controlled data: unknown values are rejected at ingestion
// (see api.CreateReport) so they never reach the clustering engine.
type ComplianceStatus string

const (
	// StatusCompliant marks a product that passed inspection.
	StatusCompliant ComplianceStatus = "COMPLIANT"

	// StatusNonCompliant marks a product that failed one or more checks.
	StatusNonCompliant ComplianceStatus = "NON_COMPLIANT"

	// StatusFraudulent marks a product flagged as counterfeit or falsified.
	StatusFraudulent ComplianceStatus = "FRAUDULENT"
)

// ParseComplianceStatus validates a raw status string against the closed enum.
// Returns an error for anything outside the three known variants.
func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	switch ComplianceStatus(s) {
	case StatusCompliant, StatusNonCompliant, StatusFraudulent:
		return ComplianceStatus(s), nil
	default:
		return "", fmt.Errorf("unknown compliance status %q (must be one of %s, %s, %s)",
			s, StatusCompliant, StatusNonCompliant, StatusFraudulent)
	}
}

// IsValid reports whether the status is one of the three known variants.
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case StatusCompliant, StatusNonCompliant, StatusFraudulent:
		return true
	}
	return false
}

// Coordinates is a geographic point in floating-point degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// IsFinite reports whether both components are real numbers (not NaN or Inf).
// Reports failing this check are excluded from clustering before the
// algorithm runs.
func (c Coordinates) IsFinite() bool {
	return !math.IsNaN(c.Latitude) && !math.IsInf(c.Latitude, 0) &&
		!math.IsNaN(c.Longitude) && !math.IsInf(c.Longitude, 0)
}

// ComplianceReport represents one field inspection event.
//
// Reports are created by the reporting workflow (agents scanning product
// labels in the field) and are immutable inputs to the analytics engine:
// the engine only reads and reorganizes them in memory for the duration of
// one analysis call.
type ComplianceReport struct {
	// ID is the unique report identifier (UUID).
	ID string `json:"id"`

	// AgentID identifies the field agent who submitted the report.
	AgentID string `json:"agent_id"`

	// Status is the inspection outcome.
	Status ComplianceStatus `json:"status"`

	// Reason is the optional non-compliance reason.
	Reason *string `json:"reason,omitempty"`

	// Location is the geotag captured at scan time. Nil when the agent's
	// device provided no fix; such reports are excluded from clustering.
	Location *Coordinates `json:"location,omitempty"`

	// ScanMetadata holds free-form scanned/OCR payload. Opaque to the
	// clustering engine.
	ScanMetadata json.RawMessage `json:"scan_metadata,omitempty"`

	// CreatedAt is the report creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// HasValidLocation reports whether the report carries a usable coordinate
// pair: a non-nil location with finite latitude and longitude.
func (r *ComplianceReport) HasValidLocation() bool {
	return r.Location != nil && r.Location.IsFinite()
}
