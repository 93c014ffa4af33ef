// Package probe_test: white-box tests for per-block comparison.
package probe_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gradcheck/matrix"
	"github.com/katalvlaran/gradcheck/probe"
)

// TestCompareBlockPasses verifies a matching pair yields an empty
// fragment and the exact worst error.
func TestCompareBlockPasses(t *testing.T) {
	analytic := mustDenseOf(t, 2, 2, 1, 2, 3, 4)
	numeric := mustDenseOf(t, 2, 2, 1, 2, 3, 4)

	maxErr, fragment := probe.CompareBlock(analytic, numeric, 0, 1e-9)
	assert.Zero(t, maxErr)
	assert.Empty(t, fragment)
}

// TestCompareBlockFloor verifies the denominator floor: near-zero
// reference entries measure absolute error; large ones measure relative.
func TestCompareBlockFloor(t *testing.T) {
	// Reference entry is exactly zero: error = |analytic| / max(0, 1).
	analytic := mustDenseOf(t, 1, 1, 1e-3)
	numeric := mustDenseOf(t, 1, 1, 0)
	maxErr, _ := probe.CompareBlock(analytic, numeric, 0, 1)
	assert.InDelta(t, 1e-3, maxErr, 1e-15)

	// Large reference entry: same absolute gap, much smaller error.
	analytic = mustDenseOf(t, 1, 1, 1000.001)
	numeric = mustDenseOf(t, 1, 1, 1000)
	maxErr, _ = probe.CompareBlock(analytic, numeric, 0, 1)
	assert.InDelta(t, 1e-3/1000, maxErr, 1e-12)
}

// TestCompareBlockFragment verifies a failing block's fragment names the
// block, counts offenders and lists the worst entry first.
func TestCompareBlockFragment(t *testing.T) {
	analytic := mustDenseOf(t, 2, 2,
		1.5, 2, // (0,0) off by 0.5
		3, 4.1, // (1,1) off by 0.1
	)
	numeric := mustDenseOf(t, 2, 2, 1, 2, 3, 4)

	maxErr, fragment := probe.CompareBlock(analytic, numeric, 3, 1e-3)
	assert.InDelta(t, 0.5, maxErr, 1e-12)
	require.NotEmpty(t, fragment)
	assert.Contains(t, fragment, "block 3")
	assert.Contains(t, fragment, "2 Jacobian element(s)")

	// Worst entry leads.
	firstEntry := strings.SplitN(fragment, "\n", 3)[1]
	assert.Contains(t, firstEntry, "(0,0)")
}

// TestCompareBlockCapsEntries verifies the offender list is capped at
// DefaultMaxLogEntries with an explicit remainder line.
func TestCompareBlockCapsEntries(t *testing.T) {
	const n = probe.DefaultMaxLogEntries + 5
	data := make([]float64, n)
	for i := range data {
		data[i] = 1 // every entry off by 1 against a zero reference
	}
	analytic, err := matrix.NewDenseOf(1, n, data)
	require.NoError(t, err)
	zeros, err := matrix.NewDenseOf(1, n, make([]float64, n))
	require.NoError(t, err)

	_, fragment := probe.CompareBlock(analytic, zeros, 0, 1e-6)
	assert.Equal(t, probe.DefaultMaxLogEntries, strings.Count(fragment, "analytic="))
	assert.Contains(t, fragment, "... and 5 more")
}
