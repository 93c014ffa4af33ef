// SPDX-License-Identifier: MIT
// Package probe: per-block Jacobian comparison and diagnostic rendering.

package probe

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/gradcheck/matrix"
)

// DefaultMaxLogEntries caps how many offending entries a failing block
// reports, worst first. Enough to localize a discrepancy without dumping
// whole Jacobians.
const DefaultMaxLogEntries = 10

// relativeErrorFloor is the denominator floor in
// |analytic−numeric| / max(|numeric|, floor). The floor keeps the error
// bounded and well-defined when the reference entry is exactly zero,
// while staying sensitive to absolute error at small magnitudes.
const relativeErrorFloor = 1.0

// offender records one Jacobian element that exceeded tolerance.
type offender struct {
	row, col          int
	analytic, numeric float64
	relErr            float64
}

// compareBlock computes the worst per-element relative error between a
// block's analytic and numeric local Jacobians, and renders a diagnostic
// fragment when that error exceeds tolerance.
//
// Per element: err = |analytic − numeric| / max(|numeric|, 1).
//
// Returns (maxRelativeError, fragment); fragment is "" when the block
// passes. Deterministic: fixed row→column scan, offenders sorted by
// descending error with (row, col) tie-break.
func compareBlock(analytic, numeric *matrix.Dense, blockIndex int, tolerance float64) (float64, string) {
	rows, cols := analytic.Rows(), analytic.Cols()
	// Shapes are fixed by the caller; walk the flat row-major storage.
	ad, nd := analytic.RawData(), numeric.RawData()

	maxErr := 0.0
	var offenders []offender
	var r, c, idx int // loop iterators
	var a, n, relErr float64
	for r = 0; r < rows; r++ {
		for c = 0; c < cols; c++ {
			a, n = ad[idx], nd[idx]
			idx++
			relErr = math.Abs(a-n) / math.Max(math.Abs(n), relativeErrorFloor)
			if relErr > maxErr {
				maxErr = relErr
			}
			if relErr > tolerance {
				offenders = append(offenders, offender{row: r, col: c, analytic: a, numeric: n, relErr: relErr})
			}
		}
	}

	if maxErr <= tolerance {
		return maxErr, ""
	}

	// Worst entries first; ties broken by position for determinism.
	sort.Slice(offenders, func(i, j int) bool {
		if offenders[i].relErr != offenders[j].relErr {
			return offenders[i].relErr > offenders[j].relErr
		}
		if offenders[i].row != offenders[j].row {
			return offenders[i].row < offenders[j].row
		}

		return offenders[i].col < offenders[j].col
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "block %d: %d Jacobian element(s) beyond tolerance %.3e, worst relative error %.6e\n",
		blockIndex, len(offenders), tolerance, maxErr)
	shown := len(offenders)
	if shown > DefaultMaxLogEntries {
		shown = DefaultMaxLogEntries
	}
	for i := 0; i < shown; i++ {
		o := offenders[i]
		fmt.Fprintf(&sb, "  (%d,%d): analytic=%.12e numeric=%.12e relative error=%.6e\n",
			o.row, o.col, o.analytic, o.numeric, o.relErr)
	}
	if shown < len(offenders) {
		fmt.Fprintf(&sb, "  ... and %d more\n", len(offenders)-shown)
	}

	return maxErr, sb.String()
}
