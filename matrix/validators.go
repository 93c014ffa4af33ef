// SPDX-License-Identifier: MIT
// Package matrix: central validators.
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels minimal by delegating nil/shape checks here.
//   - Return sentinel errors wrapped with a validator tag so call sites
//     stay uniform and errors.Is keeps matching.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate only on failure.

package matrix

import "fmt"

// validatorErrorf wraps an underlying sentinel with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil. Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Returns nil or wrapped ErrDimensionMismatch. Complexity: O(1).
func ValidateSameShape(a, b *Dense) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulShapes ensures a and b are conformable for Mul (a.Cols == b.Rows).
// Stage 1: nil checks. Stage 2: inner-dimension check.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(1).
func ValidateMulShapes(a, b *Dense) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulShapes", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures vector x has exactly want elements.
// Errors: ErrDimensionMismatch. Complexity: O(1).
func ValidateVecLen(x []float64, want int) error {
	if len(x) != want {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}
