// SPDX-License-Identifier: MIT
// Package probe: the Evaluator capability consumed by the checker.

package probe

import "github.com/katalvlaran/gradcheck/matrix"

// Evaluator is the residual function under verification.
//
// Block count and sizes are fixed for the lifetime of the evaluator;
// parameter blocks are addressed by position. The checker borrows the
// evaluator for the duration of a Probe call only.
type Evaluator interface {
	// ParameterBlockSizes reports the ambient dimension of each
	// parameter block, in block order.
	ParameterBlockSizes() []int

	// NumResiduals reports the residual dimension.
	NumResiduals() int

	// Evaluate computes residuals (length NumResiduals) at the given
	// parameter blocks and, when jacobians is non-nil, fills each
	// non-nil entry with the analytic ambient Jacobian for that block
	// (NumResiduals × block size, row-major). A nil jacobians slice, or
	// a nil entry in it, skips that output. Evaluate reports false when
	// residuals or Jacobians cannot be computed at this point; outputs
	// are untrusted in that case.
	Evaluate(parameters [][]float64, residuals []float64, jacobians []*matrix.Dense) bool
}
