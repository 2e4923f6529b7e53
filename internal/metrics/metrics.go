// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

// Package metrics exposes Prometheus instrumentation for the API surface,
// the clustering engine, the report store, and the analytics cache.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Clustering engine metrics
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compliance_analysis_duration_seconds",
			Help:    "Duration of compliance clustering runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	AnalysisPoints = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compliance_analysis_points",
			Help:    "Number of geolocated reports per clustering run",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
	)

	AnalysisClusters = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compliance_analysis_clusters",
			Help:    "Number of clusters discovered per run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	AnalysisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compliance_analysis_errors_total",
			Help: "Total number of failed clustering runs",
		},
		[]string{"error_type"}, // "empty_input", "invalid_parameter", "store"
	)

	// Report store metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_store_operations_total",
			Help: "Total number of report store operations",
		},
		[]string{"operation", "result"}, // operation: "put", "get", "list", "count"
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_store_operation_duration_seconds",
			Help:    "Duration of report store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// System metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAnalysis records one clustering run.
func RecordAnalysis(duration time.Duration, points, clusters int) {
	AnalysisDuration.Observe(duration.Seconds())
	AnalysisPoints.Observe(float64(points))
	AnalysisClusters.Observe(float64(clusters))
}

// RecordAnalysisError records one failed clustering run by category.
func RecordAnalysisError(errorType string) {
	AnalysisErrors.WithLabelValues(errorType).Inc()
}

// RecordStoreOperation records a store call and its outcome.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(operation, result).Inc()
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheLookup records one cache lookup by outcome.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}
