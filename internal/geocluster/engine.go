// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package geocluster

import (
	"math"
	"time"

	"github.com/Genrei123/rcv-api/internal/models"
)

// noiseCluster marks a point that belongs to no cluster.
const noiseCluster = -1

// gridThreshold is the batch size above which neighborhood search uses the
// cell-grid index instead of the O(n²) scan.
const gridThreshold = 64

// clusterPoint wraps one qualifying report with its resolved coordinates,
// its index in the filtered input batch, and its assigned cluster.
// Ephemeral: created per analysis run, discarded after response construction.
type clusterPoint struct {
	report  *models.ComplianceReport
	lat     float64
	lon     float64
	index   int
	cluster int
}

// Analyze partitions geotagged compliance reports into density-based spatial
// clusters and derives compliance statistics.
//
// epsilonKm is the maximum neighborhood radius in kilometers for two points
// to be considered adjacent. minPoints is the neighborhood size (including
// the point itself) required for a point to seed a cluster.
//
// Reports without both a latitude and a longitude, or with non-finite
// coordinates, are excluded before clustering. If nothing survives the
// filter, Analyze returns ErrEmptyInput. Malformed parameters return an
// *InvalidParameterError before the algorithm runs.
//
// For fixed input the result is fully deterministic: cluster IDs are
// assigned sequentially from 0 in filtered-input discovery order, and
// already-clustered points are never reassigned.
func Analyze(reports []models.ComplianceReport, epsilonKm float64, minPoints int) (*models.AnalysisResult, error) {
	if err := validateParams(epsilonKm, minPoints); err != nil {
		return nil, err
	}

	points := filterPoints(reports)
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}

	neighborhoods := buildNeighborhoods(points, epsilonKm)
	clusterCount := runDBSCAN(points, neighborhoods, minPoints)

	result := buildResult(points, clusterCount, models.AnalysisParams{
		EpsilonKm: epsilonKm,
		MinPoints: minPoints,
	})
	result.AnalyzedAt = time.Now().UTC()

	return result, nil
}

// validateParams rejects malformed tuning parameters eagerly.
func validateParams(epsilonKm float64, minPoints int) error {
	if math.IsNaN(epsilonKm) || epsilonKm <= 0 {
		return &InvalidParameterError{Param: "epsilonKm", Reason: "must be a positive number of kilometers"}
	}
	if minPoints < 1 {
		return &InvalidParameterError{Param: "minPoints", Reason: "must be a positive integer >= 1"}
	}
	return nil
}

// filterPoints keeps reports with a present, finite coordinate pair and wraps
// them as cluster points in input order. Reports are never mutated; the
// engine only reads them.
func filterPoints(reports []models.ComplianceReport) []clusterPoint {
	points := make([]clusterPoint, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		if !r.HasValidLocation() {
			continue
		}
		points = append(points, clusterPoint{
			report:  r,
			lat:     r.Location.Latitude,
			lon:     r.Location.Longitude,
			index:   len(points),
			cluster: noiseCluster,
		})
	}
	return points
}

// buildNeighborhoods precomputes the epsilon-neighborhood of every point,
// inclusive of the point itself. Neighbor lists are ascending by input index
// regardless of search strategy, which keeps clustering deterministic.
func buildNeighborhoods(points []clusterPoint, epsilonKm float64) [][]int {
	neighborhoods := make([][]int, len(points))

	if len(points) >= gridThreshold {
		grid := newPointGrid(points, epsilonKm)
		for i := range points {
			neighborhoods[i] = grid.neighbors(i)
		}
		return neighborhoods
	}

	for i := range points {
		neighborhoods[i] = bruteForceNeighbors(points, i, epsilonKm)
	}
	return neighborhoods
}

// runDBSCAN assigns cluster IDs in place and returns the number of clusters
// discovered.
//
// Cluster expansion uses an explicit worklist rather than recursion so a
// single dense connected component cannot blow the call stack.
func runDBSCAN(points []clusterPoint, neighborhoods [][]int, minPoints int) int {
	visited := make([]bool, len(points))
	clusterID := 0

	for i := range points {
		if visited[i] {
			continue
		}
		visited[i] = true

		// Not a core point: provisionally noise. A later expansion may
		// still absorb it as a border point.
		if len(neighborhoods[i]) < minPoints {
			continue
		}

		points[i].cluster = clusterID

		// Region growing: absorb the seed's neighborhood, then transitively
		// the neighborhoods of every core point reached.
		queue := make([]int, len(neighborhoods[i]))
		copy(queue, neighborhoods[i])

		for head := 0; head < len(queue); head++ {
			j := queue[head]

			if points[j].cluster == noiseCluster {
				points[j].cluster = clusterID
			}

			if visited[j] {
				continue
			}
			visited[j] = true

			if len(neighborhoods[j]) >= minPoints {
				queue = append(queue, neighborhoods[j]...)
			}
		}

		clusterID++
	}

	return clusterID
}
