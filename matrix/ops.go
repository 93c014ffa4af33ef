// SPDX-License-Identifier: MIT
// Package matrix: linear-algebra kernels.
//
// Purpose:
//   - Declare the canonical kernels used across the module: Mul (Jacobian
//     projection), MatVec (linear fixtures), Sub (elementwise residuals).
//   - All kernels use central validators and wrap failures with an
//     operation tag, preserving sentinels for errors.Is.
//
// Determinism:
//   - Fixed loop orders (i→k→j for Mul, i→j elsewhere); results are
//     bit-reproducible for identical inputs.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opMul    = "Mul"
	opSub    = "Sub"
	opMatVec = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving the original
// error via %w. Call only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes the matrix product a × b into a freshly allocated Dense.
// Operands are never mutated.
//
// Implementation:
//   - Stage 1 (Validate): ValidateMulShapes(a, b).
//   - Stage 2 (Execute): i→k→j loop over flat slices; the k-outer order
//     keeps b's row contiguous in cache.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity: O(r*n*c) time, O(r*c) memory.
func Mul(a, b *Dense) (*Dense, error) {
	// Validate conformability
	if err := ValidateMulShapes(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Deterministic i→k→j accumulation over flat backing slices.
	var i, k, j int // loop iterators
	var aik float64
	for i = 0; i < rows; i++ {
		for k = 0; k < inner; k++ {
			aik = a.data[i*inner+k]
			if aik == 0 {
				continue // skip zero rows cheaply; order unaffected
			}
			for j = 0; j < cols; j++ {
				res.data[i*cols+j] += aik * b.data[k*cols+j]
			}
		}
	}

	return res, nil
}

// Sub computes elementwise a − b into a freshly allocated Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "Sub").
// Complexity: O(r*c).
func Sub(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	for idx := range a.data { // single flat loop 0..n-1
		res.data[idx] = a.data[idx] - b.data[idx]
	}

	return res, nil
}

// MatVec computes y = m·x for a vector x of length m.Cols().
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "MatVec").
// Complexity: O(r*c).
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)
	var i, j int // loop iterators
	var sum float64
	for i = 0; i < rows; i++ {
		sum = 0
		for j = 0; j < cols; j++ {
			sum += m.data[i*cols+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}
