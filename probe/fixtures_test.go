// Package probe_test: shared evaluator and manifold fixtures.
//
// expTerm is the classic non-quadratic residual with easy derivatives:
//
//	f  = exp(-a·x)
//	df = -f·a
//
// where a and x are block vectors of matching sizes. linearEvaluator
// multiplies each block by a fixed Jacobian and adds an offset, so every
// derivative is exact and errors can be injected per block.
package probe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gradcheck/matrix"
	"github.com/katalvlaran/gradcheck/probe"
)

// expTerm implements probe.Evaluator for f = exp(-a·x).
// jacOffset injects a constant error into every analytic Jacobian entry;
// returnValue false simulates evaluation failure.
type expTerm struct {
	a           [][]float64
	jacOffset   float64
	returnValue bool
}

func newExpTerm(a [][]float64) *expTerm {
	return &expTerm{a: a, returnValue: true}
}

func (e *expTerm) ParameterBlockSizes() []int {
	sizes := make([]int, len(e.a))
	for j, block := range e.a {
		sizes[j] = len(block)
	}

	return sizes
}

func (e *expTerm) NumResiduals() int { return 1 }

func (e *expTerm) Evaluate(parameters [][]float64, residuals []float64, jacobians []*matrix.Dense) bool {
	if !e.returnValue {
		return false
	}

	ax := 0.0
	for j, block := range e.a {
		for u, aju := range block {
			ax += aju * parameters[j][u]
		}
	}
	f := math.Exp(-ax)
	residuals[0] = f

	if jacobians != nil {
		for j, block := range e.a {
			if jacobians[j] == nil {
				continue
			}
			for u, aju := range block {
				_ = jacobians[j].Set(0, u, -f*aju+e.jacOffset)
			}
		}
	}

	return true
}

// Fixed exp-term data: three blocks of ambient sizes {2, 3, 4} with
// moderate magnitudes, keeping the residual well conditioned.
var (
	expTermA = [][]float64{
		{0.30, -0.24},
		{0.18, 0.33, -0.07},
		{0.21, -0.12, 0.05, 0.30},
	}
	expTermX = [][]float64{
		{0.12, 0.28},
		{-0.33, 0.18, 0.25},
		{0.07, -0.20, 0.31, -0.14},
	}
)

// cloneBlocks deep-copies a block vector so probes can assert the
// caller's storage stayed untouched.
func cloneBlocks(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for i, b := range src {
		out[i] = append([]float64(nil), b...)
	}

	return out
}

// linearEvaluator multiplies each parameter block by a fixed Jacobian
// and adds a constant residual offset. SetJacobianOffset injects an
// error into the analytic Jacobian reported for one block.
type linearEvaluator struct {
	offset     []float64
	jacs       []*matrix.Dense
	jacOffsets map[int]*matrix.Dense
}

func newLinearEvaluator(offset []float64, jacs ...*matrix.Dense) *linearEvaluator {
	return &linearEvaluator{
		offset:     offset,
		jacs:       jacs,
		jacOffsets: make(map[int]*matrix.Dense),
	}
}

func (l *linearEvaluator) SetJacobianOffset(block int, offset *matrix.Dense) {
	l.jacOffsets[block] = offset
}

func (l *linearEvaluator) ParameterBlockSizes() []int {
	sizes := make([]int, len(l.jacs))
	for i, j := range l.jacs {
		sizes[i] = j.Cols()
	}

	return sizes
}

func (l *linearEvaluator) NumResiduals() int { return len(l.offset) }

func (l *linearEvaluator) Evaluate(parameters [][]float64, residuals []float64, jacobians []*matrix.Dense) bool {
	copy(residuals, l.offset)
	for i, jac := range l.jacs {
		contrib, err := matrix.MatVec(jac, parameters[i])
		if err != nil {
			return false
		}
		for r, v := range contrib {
			residuals[r] += v
		}

		if jacobians == nil || jacobians[i] == nil {
			continue
		}
		var r, c int // loop iterators
		for r = 0; r < jac.Rows(); r++ {
			for c = 0; c < jac.Cols(); c++ {
				v, _ := jac.At(r, c)
				if off, ok := l.jacOffsets[i]; ok {
					ov, _ := off.At(r, c)
					v += ov
				}
				_ = jacobians[i].Set(r, c, v)
			}
		}
	}

	return true
}

// linearManifold maps tangent deltas into ambient space through a fixed
// ambient×tangent matrix: Plus(x, delta) = x + M·delta, PlusJacobian = M.
type linearManifold struct {
	m *matrix.Dense
}

func (lm *linearManifold) AmbientSize() int { return lm.m.Rows() }
func (lm *linearManifold) TangentSize() int { return lm.m.Cols() }

func (lm *linearManifold) Plus(x, delta, xPlusDelta []float64) error {
	step, err := matrix.MatVec(lm.m, delta)
	if err != nil {
		return err
	}
	for i := range xPlusDelta {
		xPlusDelta[i] = x[i] + step[i]
	}

	return nil
}

func (lm *linearManifold) PlusJacobian(_ []float64) (*matrix.Dense, error) {
	return lm.m.Clone(), nil
}

// constrainedEvaluator computes r = x0 + x1 over one 2-vector block but
// refuses any point off the diagonal x0 == x1. Tangent steps through
// diagonalManifold stay on the diagonal; raw ambient perturbations
// leave it, so only ambient finite differencing can fail.
type constrainedEvaluator struct{}

func (constrainedEvaluator) ParameterBlockSizes() []int { return []int{2} }
func (constrainedEvaluator) NumResiduals() int          { return 1 }

func (constrainedEvaluator) Evaluate(parameters [][]float64, residuals []float64, jacobians []*matrix.Dense) bool {
	x := parameters[0]
	if x[0] != x[1] {
		return false
	}
	residuals[0] = x[0] + x[1]
	if jacobians != nil && jacobians[0] != nil {
		_ = jacobians[0].Set(0, 0, 1)
		_ = jacobians[0].Set(0, 1, 1)
	}

	return true
}

// diagonalManifold moves both coordinates together:
// Plus(x, d) = x + d·(1,1), PlusJacobian = (1,1)ᵀ.
type diagonalManifold struct{}

func (diagonalManifold) AmbientSize() int { return 2 }
func (diagonalManifold) TangentSize() int { return 1 }

func (diagonalManifold) Plus(x, delta, xPlusDelta []float64) error {
	xPlusDelta[0] = x[0] + delta[0]
	xPlusDelta[1] = x[1] + delta[0]

	return nil
}

func (diagonalManifold) PlusJacobian(_ []float64) (*matrix.Dense, error) {
	return matrix.NewDenseOf(2, 1, []float64{1, 1})
}

// manifoldProduct is the expected local Jacobian: ambient × plus-Jacobian.
func manifoldProduct(ambient, plusJacobian *matrix.Dense) (*matrix.Dense, error) {
	return matrix.Mul(ambient, plusJacobian)
}

// addMatrices returns a + b elementwise (same shape assumed valid).
func addMatrices(a, b *matrix.Dense) (*matrix.Dense, error) {
	out, err := matrix.NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, err
	}
	var r, c int // loop iterators
	for r = 0; r < a.Rows(); r++ {
		for c = 0; c < a.Cols(); c++ {
			av, aerr := a.At(r, c)
			if aerr != nil {
				return nil, aerr
			}
			bv, berr := b.At(r, c)
			if berr != nil {
				return nil, berr
			}
			if err = out.Set(r, c, av+bv); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// mustDenseOf adopts a literal into a Dense or fails the test.
func mustDenseOf(t require.TestingT, rows, cols int, data ...float64) *matrix.Dense {
	m, err := matrix.NewDenseOf(rows, cols, data)
	require.NoError(t, err)

	return m
}

// maxRelClose asserts got ≈ want under the checker's own error metric,
// |got−want| / max(|want|, 1) per element, within bound.
func maxRelClose(t *testing.T, got, want *matrix.Dense, bound float64, msg string) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), msg)
	require.Equal(t, want.Cols(), got.Cols(), msg)

	var r, c int // loop iterators
	for r = 0; r < want.Rows(); r++ {
		for c = 0; c < want.Cols(); c++ {
			g, _ := got.At(r, c)
			w, _ := want.At(r, c)
			relErr := math.Abs(g-w) / math.Max(math.Abs(w), 1)
			if relErr > bound {
				t.Fatalf("%s: (%d,%d): got %v want %v (relative error %g > %g)", msg, r, c, g, w, relErr, bound)
			}
		}
	}
}

// checkDimensions asserts the Results invariant: one correctly shaped
// matrix per block in all four Jacobian families, residual length right.
func checkDimensions(t *testing.T, results *probe.Results, ambientSizes, tangentSizes []int, numResiduals int) {
	t.Helper()
	require.Len(t, results.Residuals, numResiduals)
	require.Len(t, results.AmbientJacobians, len(ambientSizes))
	require.Len(t, results.NumericAmbientJacobians, len(ambientSizes))
	require.Len(t, results.LocalJacobians, len(ambientSizes))
	require.Len(t, results.NumericLocalJacobians, len(ambientSizes))

	for i := range ambientSizes {
		for _, m := range []*matrix.Dense{results.AmbientJacobians[i], results.NumericAmbientJacobians[i]} {
			require.Equal(t, numResiduals, m.Rows())
			require.Equal(t, ambientSizes[i], m.Cols())
		}
		for _, m := range []*matrix.Dense{results.LocalJacobians[i], results.NumericLocalJacobians[i]} {
			require.Equal(t, numResiduals, m.Rows())
			require.Equal(t, tangentSizes[i], m.Cols())
		}
	}
}
