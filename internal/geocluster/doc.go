// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

// Package geocluster implements the geospatial compliance clustering engine.
//
// The engine partitions geotagged compliance reports into spatial clusters
// using density-based clustering (DBSCAN) over great-circle distance, flags
// outliers as noise, and derives per-cluster and global compliance
// statistics.
//
// Analyze is a pure, stateless computation: it holds no state between
// invocations, performs no I/O, and never mutates its input. It is safe to
// invoke concurrently from multiple requests.
//
//	result, err := geocluster.Analyze(reports, 2.0, 3)
//	if err != nil {
//	    // ErrEmptyInput or *InvalidParameterError
//	}
//
// The naive neighborhood search is O(n²); for larger batches the engine
// switches to an internal cell-grid index. The index is purely an
// optimization: neighbor sets are index-sorted so clustering output is
// byte-identical either way.
package geocluster
