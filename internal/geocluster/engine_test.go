// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package geocluster

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/Genrei123/rcv-api/internal/models"
)

// report builds a geolocated compliance report for tests.
func report(id string, status models.ComplianceStatus, lat, lon float64) models.ComplianceReport {
	return models.ComplianceReport{
		ID:        id,
		AgentID:   "agent-1",
		Status:    status,
		Location:  &models.Coordinates{Latitude: lat, Longitude: lon},
		CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

// reportNoLocation builds a report without a coordinate pair.
func reportNoLocation(id string) models.ComplianceReport {
	return models.ComplianceReport{
		ID:        id,
		AgentID:   "agent-1",
		Status:    models.StatusCompliant,
		CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

// tightTriad returns three reports within ~0.15 km of each other in Manila.
func tightTriad() []models.ComplianceReport {
	return []models.ComplianceReport{
		report("r1", models.StatusCompliant, 14.5995, 120.9842),
		report("r2", models.StatusCompliant, 14.6005, 120.9842),
		report("r3", models.StatusNonCompliant, 14.5995, 120.9852),
	}
}

func TestAnalyze_SingleDenseCluster(t *testing.T) {
	t.Parallel()

	result, err := Analyze(tightTriad(), 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := result.Summary.ClusterCount; got != 1 {
		t.Fatalf("ClusterCount = %d, want 1", got)
	}
	if got := result.Clusters[0].Size; got != 3 {
		t.Errorf("cluster size = %d, want 3", got)
	}
	if got := result.Summary.NoiseCount; got != 0 {
		t.Errorf("NoiseCount = %d, want 0", got)
	}
	if got := result.Summary.NoisePercentage; got != 0 {
		t.Errorf("NoisePercentage = %v, want 0", got)
	}
}

func TestAnalyze_ClusterSpansAntimeridian(t *testing.T) {
	t.Parallel()

	// Two tight columns of reports a few hundred meters apart, one just east
	// and one just west of ±180. The batch exceeds the grid threshold so the
	// spatial index handles the neighborhood search.
	n := 2 * gridThreshold
	reports := make([]models.ComplianceReport, n)
	for i := range reports {
		lon := 179.9995
		if i%2 == 1 {
			lon = -179.9995
		}
		reports[i] = report(fmt.Sprintf("r%d", i), models.StatusCompliant, 10.0, lon)
	}

	result, err := Analyze(reports, 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := result.Summary.ClusterCount; got != 1 {
		t.Fatalf("ClusterCount = %d, want 1", got)
	}
	if got := result.Clusters[0].Size; got != n {
		t.Errorf("cluster size = %d, want %d", got, n)
	}
	if got := result.Summary.NoiseCount; got != 0 {
		t.Errorf("NoiseCount = %d, want 0", got)
	}
}

func TestAnalyze_MinPointsAboveDensity_AllNoise(t *testing.T) {
	t.Parallel()

	result, err := Analyze(tightTriad(), 1, 4)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := result.Summary.ClusterCount; got != 0 {
		t.Errorf("ClusterCount = %d, want 0", got)
	}
	if got := result.Summary.NoiseCount; got != 3 {
		t.Errorf("NoiseCount = %d, want 3", got)
	}
	if got := result.Summary.NoisePercentage; got != 100 {
		t.Errorf("NoisePercentage = %v, want 100", got)
	}
}

func TestAnalyze_ClusterWithOutliers(t *testing.T) {
	t.Parallel()

	// Three reports mutually within ~1 km; two outliers roughly 50 km away
	// from the triad and from each other.
	reports := tightTriad()
	reports = append(reports,
		report("r4", models.StatusFraudulent, 15.05, 120.9842), // ~50km north
		report("r5", models.StatusCompliant, 14.5995, 121.45),  // ~50km east
	)

	result, err := Analyze(reports, 2, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := result.Summary.ClusterCount; got != 1 {
		t.Fatalf("ClusterCount = %d, want 1", got)
	}
	if got := result.Clusters[0].Size; got != 3 {
		t.Errorf("cluster size = %d, want 3", got)
	}
	if got := result.Summary.NoiseCount; got != 2 {
		t.Errorf("NoiseCount = %d, want 2", got)
	}
	if got := result.Summary.NoisePercentage; got != 40 {
		t.Errorf("NoisePercentage = %v, want 40", got)
	}

	// Noise points keep filtered-input order.
	if result.NoisePoints[0].ReportID != "r4" || result.NoisePoints[1].ReportID != "r5" {
		t.Errorf("noise order = [%s %s], want [r4 r5]",
			result.NoisePoints[0].ReportID, result.NoisePoints[1].ReportID)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reports []models.ComplianceReport
	}{
		{"no reports", nil},
		{"all missing coordinates", []models.ComplianceReport{
			reportNoLocation("r1"),
			reportNoLocation("r2"),
		}},
		{"all NaN coordinates", []models.ComplianceReport{
			report("r1", models.StatusCompliant, math.NaN(), 120.98),
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Analyze(tt.reports, 1, 3)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("Analyze() error = %v, want ErrEmptyInput", err)
			}
		})
	}
}

func TestAnalyze_InvalidParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		epsilonKm float64
		minPoints int
	}{
		{"zero epsilon", 0, 3},
		{"negative epsilon", -5, 3},
		{"NaN epsilon", math.NaN(), 3},
		{"zero minPoints", 1, 0},
		{"negative minPoints", 1, -1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Analyze(tightTriad(), tt.epsilonKm, tt.minPoints)
			if !IsInvalidParameter(err) {
				t.Errorf("Analyze() error = %v, want InvalidParameterError", err)
			}
		})
	}
}

func TestAnalyze_ComplianceBreakdown(t *testing.T) {
	t.Parallel()

	// 2 compliant + 1 non-compliant in one tight cluster.
	result, err := Analyze(tightTriad(), 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	got := result.Clusters[0].Compliance
	want := models.ComplianceStats{Compliant: 2, NonCompliant: 1, Fraudulent: 0}
	if got != want {
		t.Errorf("cluster compliance = %+v, want %+v", got, want)
	}

	if result.Summary.Compliance != want {
		t.Errorf("global compliance = %+v, want %+v", result.Summary.Compliance, want)
	}
}

func TestAnalyze_UnknownStatusIgnoredInTally(t *testing.T) {
	t.Parallel()

	reports := tightTriad()
	reports[2].Status = models.ComplianceStatus("LEGACY_STATE")

	result, err := Analyze(reports, 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// The point still clusters; only the tally skips it.
	if got := result.Clusters[0].Size; got != 3 {
		t.Errorf("cluster size = %d, want 3", got)
	}
	want := models.ComplianceStats{Compliant: 2}
	if result.Clusters[0].Compliance != want {
		t.Errorf("compliance = %+v, want %+v", result.Clusters[0].Compliance, want)
	}
}

func TestAnalyze_SingleReport(t *testing.T) {
	t.Parallel()

	single := []models.ComplianceReport{report("r1", models.StatusCompliant, 14.6, 121.0)}

	// With minPoints above 1 the lone point is noise.
	result, err := Analyze(single, 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Summary.ClusterCount != 0 || result.Summary.NoiseCount != 1 {
		t.Errorf("clusters/noise = %d/%d, want 0/1",
			result.Summary.ClusterCount, result.Summary.NoiseCount)
	}

	// With minPoints=1 a singleton is its own cluster with radius 0.
	result, err = Analyze(single, 1, 1)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Summary.ClusterCount != 1 {
		t.Fatalf("ClusterCount = %d, want 1", result.Summary.ClusterCount)
	}
	c := result.Clusters[0]
	if c.Size != 1 {
		t.Errorf("cluster size = %d, want 1", c.Size)
	}
	if c.RadiusKm != 0 {
		t.Errorf("singleton RadiusKm = %v, want 0", c.RadiusKm)
	}
}

func TestAnalyze_FiltersInvalidCoordinates(t *testing.T) {
	t.Parallel()

	reports := tightTriad()
	reports = append(reports,
		reportNoLocation("skip-1"),
		report("skip-2", models.StatusFraudulent, math.NaN(), 121.0),
		report("skip-3", models.StatusFraudulent, 14.6, math.Inf(1)),
	)

	result, err := Analyze(reports, 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := result.Summary.TotalPoints; got != 3 {
		t.Errorf("TotalPoints = %d, want 3 (invalid reports must not count)", got)
	}

	for _, c := range result.Clusters {
		for _, p := range c.Points {
			if p.ReportID == "skip-1" || p.ReportID == "skip-2" || p.ReportID == "skip-3" {
				t.Errorf("filtered report %s appeared in cluster output", p.ReportID)
			}
		}
	}
	for _, p := range result.NoisePoints {
		if p.ReportID == "skip-1" || p.ReportID == "skip-2" || p.ReportID == "skip-3" {
			t.Errorf("filtered report %s appeared in noise output", p.ReportID)
		}
	}
}

func TestAnalyze_CentroidIsArithmeticMean(t *testing.T) {
	t.Parallel()

	reports := tightTriad()
	result, err := Analyze(reports, 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	const tolerance = 1e-9
	wantLat := (14.5995 + 14.6005 + 14.5995) / 3
	wantLon := (120.9842 + 120.9842 + 120.9852) / 3

	c := result.Clusters[0].Centroid
	if math.Abs(c.Latitude-wantLat) > tolerance {
		t.Errorf("centroid latitude = %v, want %v", c.Latitude, wantLat)
	}
	if math.Abs(c.Longitude-wantLon) > tolerance {
		t.Errorf("centroid longitude = %v, want %v", c.Longitude, wantLon)
	}
}

func TestAnalyze_RadiusNonNegativeAndTight(t *testing.T) {
	t.Parallel()

	result, err := Analyze(tightTriad(), 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	c := result.Clusters[0]
	if c.RadiusKm < 0 {
		t.Errorf("RadiusKm = %v, want >= 0", c.RadiusKm)
	}

	// Every member must fall within the radius of the centroid.
	for _, p := range c.Points {
		dist := haversineKm(c.Centroid.Latitude, c.Centroid.Longitude, p.Latitude, p.Longitude)
		if dist > c.RadiusKm+1e-9 {
			t.Errorf("member %s at %v km exceeds radius %v km", p.ReportID, dist, c.RadiusKm)
		}
	}
}

func TestAnalyze_TwoSeparateClusters(t *testing.T) {
	t.Parallel()

	// A tight triad in Manila and a tight quad in Cebu (~570 km apart).
	reports := tightTriad()
	reports = append(reports,
		report("c1", models.StatusFraudulent, 10.3157, 123.8854),
		report("c2", models.StatusFraudulent, 10.3167, 123.8854),
		report("c3", models.StatusFraudulent, 10.3157, 123.8864),
		report("c4", models.StatusCompliant, 10.3167, 123.8864),
	)

	result, err := Analyze(reports, 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := result.Summary.ClusterCount; got != 2 {
		t.Fatalf("ClusterCount = %d, want 2", got)
	}

	// Sorted largest-first: the Cebu quad before the Manila triad.
	if result.Clusters[0].Size != 4 || result.Clusters[1].Size != 3 {
		t.Errorf("cluster sizes = [%d %d], want [4 3]",
			result.Clusters[0].Size, result.Clusters[1].Size)
	}

	// Discovery order assigns the Manila triad ID 0.
	if result.Clusters[1].ID != 0 || result.Clusters[0].ID != 1 {
		t.Errorf("cluster IDs = [%d %d], want [1 0]",
			result.Clusters[0].ID, result.Clusters[1].ID)
	}

	want := models.ComplianceStats{Fraudulent: 3, Compliant: 1}
	if result.Clusters[0].Compliance != want {
		t.Errorf("Cebu cluster compliance = %+v, want %+v", result.Clusters[0].Compliance, want)
	}
}

func TestAnalyze_BorderPointNotReassigned(t *testing.T) {
	t.Parallel()

	// A chain of points 0.8 km apart with epsilon 1 km: every interior point
	// is core with minPoints=3, so the chain forms one cluster.
	var reports []models.ComplianceReport
	for i := 0; i < 6; i++ {
		// 0.0072 degrees latitude ≈ 0.8 km
		reports = append(reports, report(
			fmt.Sprintf("chain-%d", i), models.StatusCompliant,
			14.6+float64(i)*0.0072, 121.0))
	}

	result, err := Analyze(reports, 1, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := result.Summary.ClusterCount; got != 1 {
		t.Fatalf("ClusterCount = %d, want 1 (chain should be density-connected)", got)
	}
	if got := result.Clusters[0].Size; got != 6 {
		t.Errorf("cluster size = %d, want 6", got)
	}
}

func TestAnalyze_ConservationAndExclusivity(t *testing.T) {
	t.Parallel()

	reports := tightTriad()
	reports = append(reports,
		report("far-1", models.StatusFraudulent, 15.05, 120.9842),
		report("far-2", models.StatusCompliant, 14.5995, 121.45),
		reportNoLocation("invalid"),
	)

	result, err := Analyze(reports, 2, 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	sum := result.Summary.NoiseCount
	for _, c := range result.Clusters {
		sum += c.Size
		if c.Size != len(c.Points) {
			t.Errorf("cluster %d Size = %d but has %d points", c.ID, c.Size, len(c.Points))
		}
	}
	if sum != result.Summary.TotalPoints {
		t.Errorf("clusters + noise = %d, want TotalPoints %d", sum, result.Summary.TotalPoints)
	}

	// No report appears twice across clusters and noise.
	seen := make(map[string]int)
	for _, c := range result.Clusters {
		for _, p := range c.Points {
			seen[p.ReportID]++
		}
	}
	for _, p := range result.NoisePoints {
		seen[p.ReportID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("report %s appeared %d times across clusters and noise", id, n)
		}
	}
}

func TestAnalyze_ClusterSizeFloor(t *testing.T) {
	t.Parallel()

	reports := tightTriad()
	reports = append(reports,
		report("far-1", models.StatusFraudulent, 15.05, 120.9842),
		report("far-2", models.StatusCompliant, 14.5995, 121.45),
	)

	for _, minPoints := range []int{1, 2, 3} {
		result, err := Analyze(reports, 2, minPoints)
		if err != nil {
			t.Fatalf("Analyze(minPoints=%d) error = %v", minPoints, err)
		}
		for _, c := range result.Clusters {
			if c.Size < minPoints {
				t.Errorf("minPoints=%d: cluster %d size = %d, below floor", minPoints, c.ID, c.Size)
			}
		}
	}
}
