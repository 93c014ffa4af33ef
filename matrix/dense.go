// SPDX-License-Identifier: MIT
// Package matrix: Dense is the concrete row-major matrix implementation,
// storing elements in a flat slice for performance and cache friendliness.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// A Dense with zero columns is legal: it keeps its row count but stores
// no data (useful for zero-dimensional tangent spaces).
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows > 0 and cols >= 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrBadShape.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions: rows must be positive, cols may be zero
	// (a Jacobian over an empty tangent space has shape r×0).
	if rows <= 0 || cols < 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}
	// Allocate flat slice
	data := make([]float64, rows*cols)

	// Return initialized Dense
	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseOf creates an r×c Dense adopting the given row-major backing
// slice (no copy). The caller must not alias data afterwards.
// Errors: ErrBadShape when len(data) != rows*cols or dimensions invalid.
// Complexity: O(1).
func NewDenseOf(rows, cols int, data []float64) (*Dense, error) {
	// Validate dimensions first, mirroring NewDense.
	if rows <= 0 || cols < 0 {
		return nil, fmt.Errorf("NewDenseOf(%d,%d): %w", rows, cols, ErrBadShape)
	}
	// The backing slice must match the declared shape exactly.
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseOf(%d,%d): len(data)=%d: %w", rows, cols, len(data), ErrBadShape)
	}

	// Adopt the slice without copying.
	return &Dense{r: rows, c: cols, data: data}, nil
}

// Rows returns the number of rows in the matrix. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	// Validate row index
	if row < 0 || row >= m.r {
		return 0, fmt.Errorf("Dense(%d,%d): %w", row, col, ErrOutOfRange)
	}
	// Validate column index
	if col < 0 || col >= m.c {
		return 0, fmt.Errorf("Dense(%d,%d): %w", row, col, ErrOutOfRange)
	}

	// Compute flat offset
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Errors: ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	copyData := make([]float64, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// Zero resets every element to 0 in place.
// Complexity: O(r*c); no allocation.
func (m *Dense) Zero() {
	// Fixed flat loop 0..n-1 for determinism.
	for i := range m.data {
		m.data[i] = 0
	}
}

// MaxAbs returns the largest absolute value among all elements,
// or 0 for an empty (r×0) matrix. Complexity: O(r*c).
func (m *Dense) MaxAbs() float64 {
	maxAbs := 0.0
	for _, v := range m.data { // deterministic flat walk
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	return maxAbs
}

// Equal reports whether m and other have identical shape and elements.
// Exact float comparison; use for structural/zero checks in tests.
// Complexity: O(r*c).
func (m *Dense) Equal(other *Dense) bool {
	if other == nil || m.r != other.r || m.c != other.c {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}

	return true
}

// RawData exposes the row-major backing slice. Mutating it mutates the
// matrix; intended for evaluators that fill Jacobian buffers directly.
// Complexity: O(1).
func (m *Dense) RawData() []float64 { return m.data }

// String implements fmt.Stringer for easy debugging: one line per row,
// elements formatted with %g and separated by single spaces.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int // loop iterators
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
