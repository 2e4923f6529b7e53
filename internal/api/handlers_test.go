// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package api

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/Genrei123/rcv-api/internal/config"
	"github.com/Genrei123/rcv-api/internal/models"
	"github.com/Genrei123/rcv-api/internal/store"
)

// testConfig returns a configuration suitable for handler tests.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:    "127.0.0.1",
			Port:    8080,
			Timeout: 5 * time.Second,
		},
		Store: config.StoreConfig{InMemory: true},
		Analytics: config.AnalyticsConfig{
			DefaultEpsilonKm: 1000,
			DefaultMinPoints: 3,
			MaxEpsilonKm:     20000,
			CacheTTL:         time.Minute,
		},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
}

// newTestHandler builds a handler over a fresh in-memory store.
func newTestHandler(t *testing.T) (*Handler, *store.MemoryStore) {
	t.Helper()

	memStore := store.NewMemoryStore()
	handler := NewHandler(memStore, testConfig())
	t.Cleanup(func() {
		handler.Close()
		_ = memStore.Close()
	})
	return handler, memStore
}

// seedReport inserts one geolocated report.
func seedReport(t *testing.T, s store.ReportStore, id, agentID string, status models.ComplianceStatus, lat, lon float64) {
	t.Helper()

	err := s.Put(context.Background(), &models.ComplianceReport{
		ID:        id,
		AgentID:   agentID,
		Status:    status,
		Location:  &models.Coordinates{Latitude: lat, Longitude: lon},
		CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed report %s: %v", id, err)
	}
}

// envelope mirrors the standard response wrapper with raw Data for
// per-test decoding.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

// decodeEnvelope parses a recorded response body.
func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode response envelope: %v\nbody: %s", err, body)
	}
	return env
}

// decodeData parses the envelope's data payload into out.
func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode response data: %v\ndata: %s", err, env.Data)
	}
}

// wantStatus fails the test unless the recorder holds the expected code.
func wantStatus(t *testing.T, got, want int, body []byte) {
	t.Helper()

	if got != want {
		t.Fatalf("status = %d, want %d\nbody: %s", got, want, body)
	}
}
