// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package geocluster

import (
	"math"
	"sort"
)

// kmPerDegree is the approximate surface distance of one degree of latitude.
const kmPerDegree = 111.0

// minCosLat bounds the longitude-ring widening near the poles, where one
// degree of longitude approaches zero kilometers.
const minCosLat = 0.01

// pointGrid is a cell-hash spatial index over a fixed point slice. It divides
// geographic space into epsilon-sized cells so a neighborhood query only
// inspects nearby cells instead of every point.
//
// Longitude columns are cyclic: the width of one column divides 360 exactly
// and column indices wrap modulo lonCells, so neighborhoods spanning the
// antimeridian are found the same way as anywhere else.
//
// The grid is a pure optimization: candidates are always confirmed with the
// haversine distance and returned sorted by input index, so clustering
// results are identical to the brute-force search.
type pointGrid struct {
	cellSizeDeg    float64 // latitude cell height
	lonCellSizeDeg float64 // longitude cell width; 360 / lonCells exactly
	lonCells       int
	epsilonKm      float64
	cells          map[cellKey][]int
	points         []clusterPoint
}

// cellKey addresses one grid cell. x is a cyclic longitude column in
// [0, lonCells); y is a latitude row.
type cellKey struct {
	x, y int
}

// newPointGrid indexes points into epsilon-sized cells.
func newPointGrid(points []clusterPoint, epsilonKm float64) *pointGrid {
	cellSizeDeg := epsilonKm / kmPerDegree

	// Round the longitude column count down so columns tile the full circle
	// exactly; each column is then at least cellSizeDeg wide.
	lonCells := int(math.Floor(360 / cellSizeDeg))
	if lonCells < 1 {
		lonCells = 1
	}

	g := &pointGrid{
		cellSizeDeg:    cellSizeDeg,
		lonCellSizeDeg: 360 / float64(lonCells),
		lonCells:       lonCells,
		epsilonKm:      epsilonKm,
		cells:          make(map[cellKey][]int),
		points:         points,
	}

	for i := range points {
		key := g.cellKeyFor(points[i].lat, points[i].lon)
		g.cells[key] = append(g.cells[key], i)
	}

	return g
}

// cellKeyFor returns the cell containing a lat/lon coordinate.
func (g *pointGrid) cellKeyFor(lat, lon float64) cellKey {
	// Normalize longitude to [-180, 180)
	for lon >= 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}

	x := int(math.Floor((lon + 180) / g.lonCellSizeDeg))
	if x >= g.lonCells {
		x = g.lonCells - 1
	}

	return cellKey{
		x: x,
		y: int(math.Floor(lat / g.cellSizeDeg)),
	}
}

// neighbors returns the indices of all points within epsilonKm of point i,
// inclusive of i itself, sorted ascending by input index.
func (g *pointGrid) neighbors(i int) []int {
	p := g.points[i]
	center := g.cellKeyFor(p.lat, p.lon)

	// One cell ring covers epsilon along latitude. Longitude degrees shrink
	// with cos(lat), so the east-west ring widens toward the poles.
	epsDeg := g.epsilonKm / kmPerDegree
	latRing := int(math.Ceil(epsDeg/g.cellSizeDeg)) + 1

	cosLat := math.Cos(p.lat * math.Pi / 180)
	if cosLat < minCosLat {
		cosLat = minCosLat
	}
	lonRing := int(math.Ceil(epsDeg/cosLat/g.lonCellSizeDeg)) + 1

	// Columns wrap modulo lonCells. A ring wide enough to lap the circle
	// collapses to scanning every column exactly once.
	var columns []int
	if 2*lonRing+1 >= g.lonCells {
		columns = make([]int, g.lonCells)
		for x := range columns {
			columns[x] = x
		}
	} else {
		columns = make([]int, 0, 2*lonRing+1)
		for dx := -lonRing; dx <= lonRing; dx++ {
			x := (center.x + dx) % g.lonCells
			if x < 0 {
				x += g.lonCells
			}
			columns = append(columns, x)
		}
	}

	var result []int
	for _, x := range columns {
		for dy := -latRing; dy <= latRing; dy++ {
			key := cellKey{x: x, y: center.y + dy}
			for _, j := range g.cells[key] {
				q := g.points[j]
				if haversineKm(p.lat, p.lon, q.lat, q.lon) <= g.epsilonKm {
					result = append(result, j)
				}
			}
		}
	}

	sort.Ints(result)
	return result
}

// bruteForceNeighbors returns the indices of all points within epsilonKm of
// point i by scanning the whole slice. Output order matches pointGrid's
// (ascending by input index).
func bruteForceNeighbors(points []clusterPoint, i int, epsilonKm float64) []int {
	p := points[i]

	var result []int
	for j := range points {
		q := points[j]
		if haversineKm(p.lat, p.lon, q.lat, q.lon) <= epsilonKm {
			result = append(result, j)
		}
	}

	return result
}
