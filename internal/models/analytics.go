// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package models

import "time"

// ReportPoint is one geolocated report as it appears in analysis output,
// either as a cluster member or as a noise point.
type ReportPoint struct {
	ReportID   string           `json:"report_id"`
	AgentID    string           `json:"agent_id"`
	Status     ComplianceStatus `json:"status"`
	Latitude   float64          `json:"latitude"`
	Longitude  float64          `json:"longitude"`
	ReportedAt time.Time        `json:"reported_at"`
}

// Centroid is the arithmetic-mean coordinate of a cluster's members.
// This is an approximation valid only for geographically compact clusters:
// it is a simple mean of degrees, not a geodesic centroid.
type Centroid struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ComplianceStats tallies member reports by status.
type ComplianceStats struct {
	Compliant    int `json:"compliant"`
	NonCompliant int `json:"non_compliant"`
	Fraudulent   int `json:"fraudulent"`
}

// Total returns the sum of all tallied statuses.
func (s ComplianceStats) Total() int {
	return s.Compliant + s.NonCompliant + s.Fraudulent
}

// ClusterInfo describes one discovered compliance hotspot.
//
// Invariants:
//   - Size always equals len(Points).
//   - Centroid is the arithmetic mean of member coordinates.
//   - RadiusKm is the maximum great-circle distance from the centroid to any
//     member; it is zero only for singleton clusters.
type ClusterInfo struct {
	// ID is the cluster identifier, assigned sequentially from 0 in
	// discovery order.
	ID int `json:"id"`

	// Size is the number of member points.
	Size int `json:"size"`

	// Centroid is the mean coordinate of the members.
	Centroid Centroid `json:"centroid"`

	// RadiusKm is the maximum haversine distance from centroid to any
	// member, in kilometers.
	RadiusKm float64 `json:"radius_km"`

	// Points are the member reports.
	Points []ReportPoint `json:"points"`

	// Compliance is the per-cluster status breakdown.
	Compliance ComplianceStats `json:"compliance_stats"`
}

// AnalysisParams echoes the tuning parameters an analysis ran with.
type AnalysisParams struct {
	// EpsilonKm is the neighborhood radius in kilometers.
	EpsilonKm float64 `json:"epsilon_km"`

	// MinPoints is the core-point density threshold (neighborhood size
	// including the point itself).
	MinPoints int `json:"min_points"`
}

// AnalysisSummary is the global statistics block of an analysis.
//
// Invariant: TotalPoints == sum of cluster sizes + NoiseCount.
type AnalysisSummary struct {
	// TotalPoints is the number of reports with valid coordinates that
	// entered clustering.
	TotalPoints int `json:"total_points"`

	// ClusterCount is the number of clusters discovered.
	ClusterCount int `json:"cluster_count"`

	// NoiseCount is the number of points not dense enough to belong to
	// any cluster.
	NoiseCount int `json:"noise_count"`

	// NoisePercentage is 100 * NoiseCount / TotalPoints.
	NoisePercentage float64 `json:"noise_percentage"`

	// Compliance tallies all valid points, clustered or not.
	Compliance ComplianceStats `json:"compliance_stats"`
}

// AnalysisResult is the top-level output of one clustering run.
//
// Clusters are sorted descending by size; ties retain discovery order.
// Noise points are in original filtered-input order.
type AnalysisResult struct {
	Params      AnalysisParams  `json:"parameters"`
	Summary     AnalysisSummary `json:"summary"`
	Clusters    []ClusterInfo   `json:"clusters"`
	NoisePoints []ReportPoint   `json:"noise_points"`
	AnalyzedAt  time.Time       `json:"analyzed_at"`
}
