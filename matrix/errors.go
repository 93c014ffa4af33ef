// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// matrix package. All kernels MUST return these sentinels and tests MUST
// check them via errors.Is. No kernel panics on user-triggered error
// conditions; panics are reserved for programmer errors in callers.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to
// allow easy grepping across logs. Do not %w-wrap these sentinels when
// returning directly; if context is essential, wrap at the call site
// with fmt.Errorf("Op: %w", ErrX) — callers still match via errors.Is.

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (rows <= 0 or cols < 0, or backing data of the wrong length).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside
	// valid bounds. Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between
	// operands, e.g. Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument)
	// was passed where a concrete matrix is required.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
