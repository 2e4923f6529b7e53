// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Genrei123/rcv-api/internal/logging"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	t.Parallel()

	var seenID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seenID == "" {
		t.Fatal("handler saw empty request ID")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seenID {
		t.Errorf("X-Request-ID header = %q, context ID = %q", got, seenID)
	}
}

func TestRequestID_HonorsUpstreamHeader(t *testing.T) {
	t.Parallel()

	const upstream = "proxy-assigned-id"

	var seenID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		if got := logging.RequestIDFromContext(r.Context()); got != upstream {
			t.Errorf("logging context request ID = %q, want %q", got, upstream)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", upstream)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seenID != upstream {
		t.Errorf("context request ID = %q, want %q", seenID, upstream)
	}
	if got := rec.Header().Get("X-Request-ID"); got != upstream {
		t.Errorf("X-Request-ID header = %q, want %q", got, upstream)
	}
}

func TestGetRequestID_MissingReturnsEmpty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID() on bare context = %q, want empty", got)
	}
}

func TestPrometheusMetrics_PassesThroughStatus(t *testing.T) {
	t.Parallel()

	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics-test", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
