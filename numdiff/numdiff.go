// SPDX-License-Identifier: MIT
package numdiff

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gradcheck/manifold"
	"github.com/katalvlaran/gradcheck/matrix"
)

// Func evaluates residuals at the given parameter blocks.
// Implementations must fill residuals completely and return a non-nil
// error on failure; they must not retain or mutate the parameter slices.
type Func func(parameters [][]float64, residuals []float64) error

// Internal panic messages for caller-contract violations.
const (
	panicNilFunc      = "numdiff: Jacobian: nil residual function"
	panicNilManifold  = "numdiff: Jacobian: nil manifold"
	panicBlockIndex   = "numdiff: Jacobian: block index out of range"
	panicBlockSize    = "numdiff: Jacobian: block length != manifold AmbientSize"
	panicNumResiduals = "numdiff: Jacobian: numResiduals must be >= 1"
)

// wrapBadOption tags ErrBadOptions with the offending field name.
func wrapBadOption(field string) error {
	return fmt.Errorf("Options.Validate: %s: %w", field, ErrBadOptions)
}

// Jacobian — finite-difference estimation of one block's local Jacobian.
//
// Description:
//
//	Estimates d residuals / d delta for parameter block `block`, where
//	delta is a tangent perturbation mapped into ambient space by
//	m.Plus(x_block, delta). Because columns follow tangent coordinates,
//	the result is the local Jacobian (residuals × TangentSize); pass an
//	Identity manifold to obtain the ambient Jacobian instead.
//
// Algorithm Outline:
//  1. Validate options and the caller contract (sizes, block index).
//  2. Build private buffers: a copy of the outer parameter slice, a
//     perturbed-block buffer, and a zero tangent vector. The caller's
//     storage is never written.
//  3. Per-coordinate step: h_i = RelativeStep·s_i, where s_i = |x_i|
//     for an Identity manifold (tangent coordinate i is ambient
//     coordinate i) and s_i = max_j |x_j| over the block for any other
//     manifold (tangent deltas are centered at zero, so the block norm
//     supplies the scale). When the scaled step underflows MinStep —
//     the coordinate is zero or nearly so — RelativeStep itself serves
//     as the absolute step, keeping the quotient clear of cancellation.
//  4. For each tangent coordinate i, in order: set delta_i = ±h_i, map
//     through Plus, evaluate with every other block untouched, and fill
//     column i with the divided difference of the chosen Scheme.
//  5. Forward reuses a single base evaluation; Central evaluates at ±h;
//     Ridders extrapolates central differences across shrinking steps
//     (see riddersColumn).
//
// Errors:
//   - ErrBadOptions — invalid Options.
//   - ErrEvaluation — the residual function failed at any point; no
//     partial Jacobian is returned.
//
// Panics:
//   - On caller-contract violations (nil f/m, bad block index, block
//     length != AmbientSize, numResiduals < 1).
//
// Complexity: Forward O(T) evaluations, Central O(2T), Ridders up to
// O(2T·MaxRiddersExtrapolations), each evaluation costing one call to f.
func Jacobian(f Func, parameters [][]float64, block int, m manifold.Manifold, numResiduals int, opts Options) (*matrix.Dense, error) {
	if f == nil {
		panic(panicNilFunc)
	}
	if m == nil {
		panic(panicNilManifold)
	}
	if block < 0 || block >= len(parameters) {
		panic(panicBlockIndex)
	}
	if numResiduals < 1 {
		panic(panicNumResiduals)
	}
	xBlock := parameters[block]
	if len(xBlock) != m.AmbientSize() {
		panic(panicBlockSize)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tangent := m.TangentSize()
	jac, err := matrix.NewDense(numResiduals, tangent)
	if err != nil {
		return nil, err
	}
	// Zero tangent size: nothing to perturb, nothing to evaluate.
	if tangent == 0 {
		return jac, nil
	}

	// Private working set: the outer slice is copied so that swapping in
	// the perturbed block never touches caller storage.
	work := make([][]float64, len(parameters))
	copy(work, parameters)
	perturbed := make([]float64, len(xBlock))
	work[block] = perturbed

	est := &estimator{
		f:     f,
		work:  work,
		block: block,
		m:     m,
		x:     xBlock,
		delta: make([]float64, tangent),
		nRes:  numResiduals,
	}

	// Forward differences reuse the residual at the unperturbed point.
	var base []float64
	if opts.Scheme == Forward {
		base = make([]float64, numResiduals)
		if err = f(parameters, base); err != nil {
			return nil, fmt.Errorf("Jacobian: base point: %w (%v)", ErrEvaluation, err)
		}
	}

	_, identity := m.(manifold.Identity)
	blockScale := maxAbs(xBlock)

	var i, r int // loop iterators
	var h float64
	var column []float64
	for i = 0; i < tangent; i++ {
		// Step scale: per-component for identity, block norm otherwise.
		scale := blockScale
		if identity {
			scale = math.Abs(xBlock[i])
		}
		h = opts.RelativeStep * scale
		if h < opts.MinStep {
			// Zero or tiny coordinates: an |x|-scaled step lands in
			// cancellation territory, so use the relative step itself
			// as an absolute width.
			h = math.Max(opts.RelativeStep, opts.MinStep)
		}

		switch opts.Scheme {
		case Forward:
			column, err = est.forward(i, h, base)
		case Central:
			column, err = est.central(i, h)
		case Ridders:
			column, err = est.ridders(i, scale, opts)
		}
		if err != nil {
			return nil, fmt.Errorf("Jacobian: column %d: %w", i, err)
		}
		for r = 0; r < numResiduals; r++ {
			jac.RawData()[r*tangent+i] = column[r]
		}
	}

	return jac, nil
}

// estimator holds the private buffers for one Jacobian call.
type estimator struct {
	f     Func
	work  [][]float64 // parameters with work[block] swapped to a private buffer
	block int
	m     manifold.Manifold
	x     []float64 // unperturbed block (caller storage, read-only)
	delta []float64 // scratch tangent vector, zeroed between uses
	nRes  int
}

// evalAt evaluates the residuals with delta[i] = d, using a fresh
// residual buffer per call (no shared scratch across evaluations).
func (e *estimator) evalAt(i int, d float64) ([]float64, error) {
	e.delta[i] = d
	err := e.m.Plus(e.x, e.delta, e.work[e.block])
	e.delta[i] = 0 // restore the zero tangent vector
	if err != nil {
		return nil, fmt.Errorf("Plus: %w (%v)", ErrEvaluation, err)
	}

	residuals := make([]float64, e.nRes)
	if err = e.f(e.work, residuals); err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrEvaluation, err)
	}

	return residuals, nil
}

// forward computes (f(x⊞h) - f(x)) / h against the reused base residual.
func (e *estimator) forward(i int, h float64, base []float64) ([]float64, error) {
	plus, err := e.evalAt(i, h)
	if err != nil {
		return nil, err
	}
	for r := range plus {
		plus[r] = (plus[r] - base[r]) / h
	}

	return plus, nil
}

// central computes (f(x⊞h) - f(x⊟h)) / (2h).
func (e *estimator) central(i int, h float64) ([]float64, error) {
	plus, err := e.evalAt(i, h)
	if err != nil {
		return nil, err
	}
	minus, err := e.evalAt(i, -h)
	if err != nil {
		return nil, err
	}
	inv := 1 / (2 * h)
	for r := range plus {
		plus[r] = (plus[r] - minus[r]) * inv
	}

	return plus, nil
}

// ridders refines central differences by Richardson extrapolation.
//
// Neville-style tableau over steps h, h/s, h/s², ...: row k holds the
// central difference at the current step in column 0 and increasingly
// high-order extrapolants to the right. The candidate with the smallest
// estimated error wins; extrapolation stops early once that error drops
// below RiddersEpsilon, or when a new row is worse than twice the best
// error seen (the expansion has started to amplify roundoff).
func (e *estimator) ridders(i int, scale float64, opts Options) ([]float64, error) {
	// The first Ridders step is deliberately large; extrapolation works
	// from a step that over-smooths down toward truncation balance.
	h := opts.RiddersInitialRadius * math.Max(scale, 1)

	tableau := make([][][]float64, opts.MaxRiddersExtrapolations)
	for k := range tableau {
		tableau[k] = make([][]float64, k+1)
	}

	first, err := e.central(i, h)
	if err != nil {
		return nil, err
	}
	tableau[0][0] = first
	best := first
	bestErr := math.Inf(1)

	shrink2 := opts.RiddersShrinkFactor * opts.RiddersShrinkFactor
	var k, m, r int // loop iterators
	for k = 1; k < opts.MaxRiddersExtrapolations; k++ {
		h /= opts.RiddersShrinkFactor
		if tableau[k][0], err = e.central(i, h); err != nil {
			return nil, err
		}

		fac := shrink2
		for m = 1; m <= k; m++ {
			prev, diag := tableau[k][m-1], tableau[k-1][m-1]
			cur := make([]float64, e.nRes)
			for r = 0; r < e.nRes; r++ {
				cur[r] = (fac*prev[r] - diag[r]) / (fac - 1)
			}
			tableau[k][m] = cur
			fac *= shrink2

			// Error estimate: worst deviation from both parents.
			errEst := math.Max(maxAbsDiff(cur, prev), maxAbsDiff(cur, diag))
			if errEst <= bestErr {
				bestErr = errEst
				best = cur
				if errEst < opts.RiddersEpsilon {
					return best, nil // converged
				}
			}
		}

		// Abandon once the highest-order term degrades markedly.
		if maxAbsDiff(tableau[k][k], tableau[k-1][k-1]) >= 2*bestErr {
			break
		}
	}

	return best, nil
}

// maxAbs returns the infinity norm of v (0 for an empty slice).
func maxAbs(v []float64) float64 {
	norm := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > norm {
			norm = a
		}
	}

	return norm
}

// maxAbsDiff returns the infinity norm of a−b (lengths assumed equal).
func maxAbsDiff(a, b []float64) float64 {
	norm := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > norm {
			norm = d
		}
	}

	return norm
}
