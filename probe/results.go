// SPDX-License-Identifier: MIT
// Package probe: the Results record populated by each probe.

package probe

import "github.com/katalvlaran/gradcheck/matrix"

// Results collects everything a probe learns about one parameter point.
//
// A Results value is owned solely by the caller and fully overwritten by
// every Probe call — nothing accumulates. It holds no reference to the
// evaluator or manifolds.
//
// Invariant: the four Jacobian slices always hold exactly one entry per
// parameter block, shaped NumResiduals × ambient size (ambient pair) or
// NumResiduals × tangent size (local pair) — zero-filled when the
// evaluation failed.
type Results struct {
	// Success mirrors the evaluator's return value at the probe point —
	// not the outcome of the Jacobian comparison, which is carried by
	// Probe's boolean return, MaximumRelativeError and DiagnosticLog.
	Success bool

	// Residuals holds the residual vector at the probe point.
	Residuals []float64

	// AmbientJacobians holds the analytic Jacobians as reported by the
	// evaluator, one per block.
	AmbientJacobians []*matrix.Dense

	// NumericAmbientJacobians holds finite-difference estimates of the
	// ambient Jacobians, one per block.
	NumericAmbientJacobians []*matrix.Dense

	// LocalJacobians holds the analytic Jacobians projected into each
	// block's tangent space.
	LocalJacobians []*matrix.Dense

	// NumericLocalJacobians holds finite-difference estimates taken
	// along tangent directions, one per block.
	NumericLocalJacobians []*matrix.Dense

	// MaximumRelativeError is the worst per-element relative error
	// across all blocks' local Jacobian pairs; always >= 0.
	MaximumRelativeError float64

	// DiagnosticLog is empty exactly when every block agreed within
	// tolerance (and the evaluation succeeded). Its emptiness is the
	// authoritative all-good signal for callers that ignore the boolean.
	DiagnosticLog string
}

// reset reshapes and zeroes every field for a fresh probe.
// Matrices are reallocated only when the recorded shape differs.
func (r *Results) reset(blockSizes, tangentSizes []int, numResiduals int) {
	r.Success = false
	r.MaximumRelativeError = 0
	r.DiagnosticLog = ""

	if len(r.Residuals) != numResiduals {
		r.Residuals = make([]float64, numResiduals)
	} else {
		for i := range r.Residuals {
			r.Residuals[i] = 0
		}
	}

	r.AmbientJacobians = resetJacobians(r.AmbientJacobians, numResiduals, blockSizes)
	r.NumericAmbientJacobians = resetJacobians(r.NumericAmbientJacobians, numResiduals, blockSizes)
	r.LocalJacobians = resetJacobians(r.LocalJacobians, numResiduals, tangentSizes)
	r.NumericLocalJacobians = resetJacobians(r.NumericLocalJacobians, numResiduals, tangentSizes)
}

// resetJacobians returns a slice with one zeroed rows×cols[i] matrix per
// block, reusing prior allocations when shapes already match.
func resetJacobians(prev []*matrix.Dense, rows int, cols []int) []*matrix.Dense {
	out := prev
	if len(out) != len(cols) {
		out = make([]*matrix.Dense, len(cols))
	}
	for i, c := range cols {
		if out[i] != nil && out[i].Rows() == rows && out[i].Cols() == c {
			out[i].Zero()

			continue
		}
		m, err := matrix.NewDense(rows, c)
		if err != nil {
			// Shapes were validated at Checker construction.
			panic(panicResultsShape)
		}
		out[i] = m
	}

	return out
}
