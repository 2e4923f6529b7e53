// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package store

import (
	"context"
	"sync"

	"github.com/Genrei123/rcv-api/internal/models"
)

// MemoryStore is a ReportStore held entirely in memory. Reports are copied on
// the way in and out so callers can never alias the store's internal state.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]models.ComplianceReport
	closed  bool
}

// NewMemoryStore creates an empty in-memory report store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[string]models.ComplianceReport),
	}
}

// Put stores a new report.
func (s *MemoryStore) Put(ctx context.Context, report *models.ComplianceReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if _, exists := s.reports[report.ID]; exists {
		return ErrDuplicateID
	}

	s.reports[report.ID] = copyReport(report)
	return nil
}

// Get retrieves one report by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*models.ComplianceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	report, exists := s.reports[id]
	if !exists {
		return nil, ErrNotFound
	}

	out := copyReport(&report)
	return &out, nil
}

// List returns filtered reports ordered by creation time, then ID.
func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]models.ComplianceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var reports []models.ComplianceReport
	for id := range s.reports {
		report := s.reports[id]
		if filter.matches(&report) {
			reports = append(reports, copyReport(&report))
		}
	}

	sortReports(reports)
	return paginate(reports, filter), nil
}

// Count returns the number of reports matching the filter.
func (s *MemoryStore) Count(ctx context.Context, filter Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	count := 0
	for id := range s.reports {
		report := s.reports[id]
		if filter.matches(&report) {
			count++
		}
	}
	return count, nil
}

// Close marks the store closed and drops its contents.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.closed = true
	s.reports = nil
	return nil
}

// copyReport deep-copies a report, including its pointer fields.
func copyReport(r *models.ComplianceReport) models.ComplianceReport {
	out := *r
	if r.Reason != nil {
		reason := *r.Reason
		out.Reason = &reason
	}
	if r.Location != nil {
		loc := *r.Location
		out.Location = &loc
	}
	if r.ScanMetadata != nil {
		out.ScanMetadata = append([]byte(nil), r.ScanMetadata...)
	}
	return out
}
