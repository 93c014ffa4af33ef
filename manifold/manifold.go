// SPDX-License-Identifier: MIT
// Package manifold: the Manifold interface and the Identity implementation.

package manifold

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gradcheck/matrix"
)

// ErrBadVectorLen indicates that a vector passed to Plus does not match
// the manifold's declared ambient/tangent size.
var ErrBadVectorLen = errors.New("manifold: vector length does not match declared size")

// Manifold describes a local reparameterization of one parameter block.
//
// Contract (checked by consumers, not enforced here):
//   - 0 <= TangentSize() <= AmbientSize()
//   - Plus fills xPlusDelta (length AmbientSize) from x (AmbientSize)
//     and delta (TangentSize); it must not retain any argument slice.
//   - PlusJacobian returns d/d delta Plus(x, delta) at delta = 0 as an
//     AmbientSize×TangentSize matrix, freshly allocated per call.
type Manifold interface {
	// AmbientSize reports the dimension of the ambient representation.
	AmbientSize() int

	// TangentSize reports the dimension of the tangent space.
	TangentSize() int

	// Plus computes xPlusDelta = x ⊞ delta.
	Plus(x, delta, xPlusDelta []float64) error

	// PlusJacobian evaluates the derivative of Plus w.r.t. delta at delta=0.
	PlusJacobian(x []float64) (*matrix.Dense, error)
}

// Identity is the trivial manifold of dimension N: tangent space equals
// ambient space, Plus is componentwise addition and PlusJacobian is I_N.
// The zero value is unusable; N must be positive.
type Identity struct {
	N int
}

// NewIdentity returns the identity manifold of dimension n.
// Panics on n <= 0 (programmer error, same policy as option constructors).
func NewIdentity(n int) Identity {
	if n <= 0 {
		panic(panicIdentityDim)
	}

	return Identity{N: n}
}

// AmbientSize reports N. Complexity: O(1).
func (id Identity) AmbientSize() int { return id.N }

// TangentSize reports N. Complexity: O(1).
func (id Identity) TangentSize() int { return id.N }

// Plus computes xPlusDelta[i] = x[i] + delta[i].
// Errors: ErrBadVectorLen when any slice length differs from N.
// Complexity: O(N).
func (id Identity) Plus(x, delta, xPlusDelta []float64) error {
	// Validate every slice against the declared dimension.
	if len(x) != id.N || len(delta) != id.N || len(xPlusDelta) != id.N {
		return fmt.Errorf("Identity.Plus(N=%d): %w", id.N, ErrBadVectorLen)
	}
	// Componentwise add in fixed order.
	for i := 0; i < id.N; i++ {
		xPlusDelta[i] = x[i] + delta[i]
	}

	return nil
}

// PlusJacobian returns I_N regardless of x.
// Complexity: O(N²) allocation + O(N) diagonal writes.
func (id Identity) PlusJacobian(_ []float64) (*matrix.Dense, error) {
	eye, err := matrix.NewDense(id.N, id.N)
	if err != nil {
		return nil, err
	}
	for i := 0; i < id.N; i++ { // fixed i order
		_ = eye.Set(i, i, 1.0) // bounds-safe after shape validation
	}

	return eye, nil
}
