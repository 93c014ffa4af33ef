// SPDX-License-Identifier: MIT
// Package manifold: tangent-space projection of ambient Jacobians.
//
// Shape mismatches here are contract violations between the caller's
// evaluator and its manifolds, not runtime conditions: they panic with
// the named messages below, mirroring the module-wide policy of panicking
// only on programmer error.

package manifold

import (
	"fmt"

	"github.com/katalvlaran/gradcheck/matrix"
)

// Internal panic messages (no magic strings).
const (
	panicIdentityDim     = "manifold: NewIdentity: dimension must be > 0"
	panicProjectNil      = "manifold: Project: nil ambient Jacobian or nil manifold"
	panicProjectAmbient  = "manifold: Project: ambient Jacobian columns != manifold AmbientSize"
	panicProjectJacShape = "manifold: Project: PlusJacobian shape != AmbientSize×TangentSize"
)

// Project computes the local (tangent-space) Jacobian for one parameter
// block: local = ambient × PlusJacobian(x).
//
// Implementation:
//   - Stage 1 (Validate): non-nil arguments; ambient.Cols == m.AmbientSize.
//     Violations panic (broken caller contract).
//   - Stage 2 (Short-circuit): an Identity manifold changes nothing —
//     return a clone so the caller may mutate freely.
//   - Stage 3 (Execute): evaluate PlusJacobian once at x, verify its
//     declared shape, multiply.
//
// PlusJacobian is evaluated exactly once per call and never cached:
// the point x may differ between probes.
//
// Errors:
//   - Propagates PlusJacobian's error verbatim (evaluation failure at x).
//
// Complexity: O(residuals × ambient × tangent).
func Project(ambient *matrix.Dense, m Manifold, x []float64) (*matrix.Dense, error) {
	if ambient == nil || m == nil {
		panic(panicProjectNil)
	}
	if ambient.Cols() != m.AmbientSize() {
		panic(panicProjectAmbient)
	}

	// Identity projection: tangent == ambient, local == ambient.
	if _, ok := m.(Identity); ok {
		return ambient.Clone(), nil
	}

	plusJac, err := m.PlusJacobian(x)
	if err != nil {
		return nil, fmt.Errorf("Project: PlusJacobian: %w", err)
	}
	if plusJac == nil || plusJac.Rows() != m.AmbientSize() || plusJac.Cols() != m.TangentSize() {
		panic(panicProjectJacShape)
	}

	local, err := matrix.Mul(ambient, plusJac)
	if err != nil {
		// Unreachable after the shape checks above; surface it anyway.
		return nil, fmt.Errorf("Project: %w", err)
	}

	return local, nil
}
