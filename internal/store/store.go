// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

// Package store persists compliance reports and serves the filtered batches
// the analytics engine consumes. Two implementations share one interface:
// a BadgerDB-backed store for production and an in-memory store for tests
// and ephemeral deployments.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/Genrei123/rcv-api/internal/models"
)

var (
	// ErrNotFound is returned when no report exists under the requested ID.
	ErrNotFound = errors.New("report not found")

	// ErrDuplicateID is returned when a Put would overwrite an existing report.
	ErrDuplicateID = errors.New("report ID already exists")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// Filter narrows List and Count to a subset of reports. Zero values match
// everything.
type Filter struct {
	// AgentID restricts results to reports filed by one agent.
	AgentID string

	// Status restricts results to one compliance status.
	Status models.ComplianceStatus

	// RequireLocation keeps only reports carrying a finite coordinate pair.
	RequireLocation bool

	// Limit caps the number of results after sorting; 0 means unlimited.
	Limit int

	// Offset skips that many results after sorting.
	Offset int
}

// matches reports whether a report satisfies the filter's predicates.
// Limit and Offset are applied by the caller after sorting.
func (f Filter) matches(r *models.ComplianceReport) bool {
	if f.AgentID != "" && r.AgentID != f.AgentID {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.RequireLocation && !r.HasValidLocation() {
		return false
	}
	return true
}

// ReportStore is the persistence contract for compliance reports.
type ReportStore interface {
	// Put stores a new report. Returns ErrDuplicateID if the ID is taken.
	Put(ctx context.Context, report *models.ComplianceReport) error

	// Get retrieves one report by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*models.ComplianceReport, error)

	// List returns reports matching the filter, ordered by creation time
	// ascending with ID as the tiebreaker so pagination is stable.
	List(ctx context.Context, filter Filter) ([]models.ComplianceReport, error)

	// Count returns the number of reports matching the filter, ignoring
	// Limit and Offset.
	Count(ctx context.Context, filter Filter) (int, error)

	// Close releases the store's resources. Subsequent calls return
	// ErrStoreClosed.
	Close() error
}

// sortReports orders reports by creation time ascending, ID ascending on
// ties. Both stores share it so pagination behaves identically.
func sortReports(reports []models.ComplianceReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.Before(reports[j].CreatedAt)
		}
		return reports[i].ID < reports[j].ID
	})
}

// paginate applies Offset and Limit to a sorted result slice.
func paginate(reports []models.ComplianceReport, filter Filter) []models.ComplianceReport {
	if filter.Offset > 0 {
		if filter.Offset >= len(reports) {
			return []models.ComplianceReport{}
		}
		reports = reports[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(reports) {
		reports = reports[:filter.Limit]
	}
	return reports
}
