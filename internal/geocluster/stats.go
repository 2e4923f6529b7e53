// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package geocluster

import (
	"sort"

	"github.com/Genrei123/rcv-api/internal/models"
)

// buildResult derives cluster statistics and the global summary from
// clustered points.
func buildResult(points []clusterPoint, clusterCount int, params models.AnalysisParams) *models.AnalysisResult {
	members := make([][]clusterPoint, clusterCount)
	var noise []clusterPoint

	for _, p := range points {
		if p.cluster == noiseCluster {
			noise = append(noise, p)
			continue
		}
		members[p.cluster] = append(members[p.cluster], p)
	}

	clusters := make([]models.ClusterInfo, clusterCount)
	for id := range members {
		clusters[id] = buildClusterInfo(id, members[id])
	}

	// Largest clusters first; ties keep discovery order.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size > clusters[j].Size
	})

	noisePoints := make([]models.ReportPoint, len(noise))
	for i, p := range noise {
		noisePoints[i] = toReportPoint(p)
	}

	totalPoints := len(points)
	noisePercentage := 100 * float64(len(noise)) / float64(totalPoints)

	return &models.AnalysisResult{
		Params: params,
		Summary: models.AnalysisSummary{
			TotalPoints:     totalPoints,
			ClusterCount:    clusterCount,
			NoiseCount:      len(noise),
			NoisePercentage: noisePercentage,
			Compliance:      tally(points),
		},
		Clusters:    clusters,
		NoisePoints: noisePoints,
	}
}

// buildClusterInfo computes the spatial and compliance statistics of one
// cluster.
func buildClusterInfo(id int, members []clusterPoint) models.ClusterInfo {
	centroid := centroidOf(members)

	reportPoints := make([]models.ReportPoint, len(members))
	for i, p := range members {
		reportPoints[i] = toReportPoint(p)
	}

	return models.ClusterInfo{
		ID:         id,
		Size:       len(members),
		Centroid:   centroid,
		RadiusKm:   radiusKm(centroid, members),
		Points:     reportPoints,
		Compliance: tally(members),
	}
}

// centroidOf returns the arithmetic mean of member coordinates. A simple
// mean of degrees, not a geodesic centroid: the approximation holds for the
// geographically compact clusters DBSCAN produces at epsilon scale.
func centroidOf(members []clusterPoint) models.Centroid {
	var sumLat, sumLon float64
	for _, p := range members {
		sumLat += p.lat
		sumLon += p.lon
	}

	n := float64(len(members))
	return models.Centroid{
		Latitude:  sumLat / n,
		Longitude: sumLon / n,
	}
}

// radiusKm returns the maximum great-circle distance from the centroid to
// any member, in kilometers. Zero for singleton clusters.
func radiusKm(centroid models.Centroid, members []clusterPoint) float64 {
	var maxDist float64
	for _, p := range members {
		dist := haversineKm(centroid.Latitude, centroid.Longitude, p.lat, p.lon)
		if dist > maxDist {
			maxDist = dist
		}
	}
	return maxDist
}

// tally counts points by compliance status. Status is validated at
// ingestion, so the default branch only fires for data written by older
// clients; such values are skipped rather than failing the analysis.
func tally(points []clusterPoint) models.ComplianceStats {
	var stats models.ComplianceStats
	for _, p := range points {
		switch p.report.Status {
		case models.StatusCompliant:
			stats.Compliant++
		case models.StatusNonCompliant:
			stats.NonCompliant++
		case models.StatusFraudulent:
			stats.Fraudulent++
		default:
			// Unknown status: ignored in the tally.
		}
	}
	return stats
}

// toReportPoint projects a cluster point into its output representation.
func toReportPoint(p clusterPoint) models.ReportPoint {
	return models.ReportPoint{
		ReportID:   p.report.ID,
		AgentID:    p.report.AgentID,
		Status:     p.report.Status,
		Latitude:   p.lat,
		Longitude:  p.lon,
		ReportedAt: p.report.CreatedAt,
	}
}
