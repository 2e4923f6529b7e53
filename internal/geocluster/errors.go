// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package geocluster

import (
	"errors"
	"fmt"
)

// ErrEmptyInput indicates that no report in the input batch carried a valid
// coordinate pair. This is deliberately an error rather than an empty result:
// it surfaces upstream data-quality problems loudly instead of hiding them
// behind a degenerate analysis.
var ErrEmptyInput = errors.New("no reports with valid coordinates to analyze")

// InvalidParameterError indicates a malformed tuning parameter. The engine
// validates eagerly: it rejects bad parameters before the algorithm runs
// rather than producing degraded all-noise output.
type InvalidParameterError struct {
	// Param is the offending parameter name ("epsilonKm" or "minPoints").
	Param string

	// Reason describes the violated constraint.
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// IsInvalidParameter reports whether err is (or wraps) an
// InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}
