// SPDX-License-Identifier: MIT
// Package probe: the Checker and its Probe orchestration.

package probe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/gradcheck/manifold"
	"github.com/katalvlaran/gradcheck/matrix"
	"github.com/katalvlaran/gradcheck/numdiff"
)

// Internal panic messages for caller-contract violations.
// The checker's construction-time contract (evaluator/manifold shapes)
// is a programming error when broken, never a runtime condition.
const (
	panicNilEvaluator   = "probe: New: nil evaluator"
	panicBlockSizes     = "probe: New: evaluator block sizes must be positive"
	panicNumResiduals   = "probe: New: evaluator must report >= 1 residuals"
	panicManifoldCount  = "probe: New: manifolds length != number of parameter blocks"
	panicManifoldSize   = "probe: New: manifold AmbientSize != evaluator block size"
	panicTangentSize    = "probe: New: manifold TangentSize not in [0, AmbientSize]"
	panicBadOptions     = "probe: New: invalid numdiff options"
	panicParamCount     = "probe: Probe: parameters length != number of parameter blocks"
	panicParamBlockSize = "probe: Probe: parameter block length != declared size"
	panicResultsShape   = "probe: Results: invalid recorded shape"
)

// errEvaluatorFailure marks an evaluator "false" return inside the
// numeric-differentiation callback.
var errEvaluatorFailure = errors.New("probe: evaluator reported failure")

// Checker verifies one evaluator's analytic Jacobians.
//
// It borrows the evaluator and manifolds for each Probe call; callers
// must keep them alive for the call's duration. A Checker is cheap and
// carries no per-probe state, so one instance may probe many points.
type Checker struct {
	ev           Evaluator
	manifolds    []manifold.Manifold // one per block, Identity where none was given
	opts         numdiff.Options
	blockSizes   []int
	tangentSizes []int
	numResiduals int
}

// New builds a Checker for the given evaluator.
//
// manifolds may be nil (no block has a manifold) or hold one slot per
// parameter block, where a nil slot means "no manifold for this block";
// both spellings resolve to the Identity manifold of the block's size.
// Heterogeneous manifold types across blocks are expected.
//
// Panics on any contract violation: nil evaluator, non-positive block
// sizes or residual count, manifold count or size mismatch, tangent
// size outside [0, ambient], or invalid options. These are programmer
// errors, mirroring the module-wide panic policy.
func New(ev Evaluator, manifolds []manifold.Manifold, opts numdiff.Options) *Checker {
	if ev == nil {
		panic(panicNilEvaluator)
	}
	blockSizes := ev.ParameterBlockSizes()
	numResiduals := ev.NumResiduals()
	if numResiduals < 1 {
		panic(panicNumResiduals)
	}
	if manifolds != nil && len(manifolds) != len(blockSizes) {
		panic(panicManifoldCount)
	}
	if err := opts.Validate(); err != nil {
		panic(panicBadOptions)
	}

	// Resolve one manifold per block, filling Identity where absent,
	// and validate declared sizes against the evaluator's.
	resolved := make([]manifold.Manifold, len(blockSizes))
	tangentSizes := make([]int, len(blockSizes))
	sizes := make([]int, len(blockSizes))
	for i, size := range blockSizes {
		if size <= 0 {
			panic(panicBlockSizes)
		}
		sizes[i] = size

		var m manifold.Manifold
		if manifolds != nil && manifolds[i] != nil {
			m = manifolds[i]
		} else {
			m = manifold.NewIdentity(size)
		}
		if m.AmbientSize() != size {
			panic(panicManifoldSize)
		}
		if m.TangentSize() < 0 || m.TangentSize() > m.AmbientSize() {
			panic(panicTangentSize)
		}
		resolved[i] = m
		tangentSizes[i] = m.TangentSize()
	}

	return &Checker{
		ev:           ev,
		manifolds:    resolved,
		opts:         opts,
		blockSizes:   sizes,
		tangentSizes: tangentSizes,
		numResiduals: numResiduals,
	}
}

// Probe checks the analytic Jacobians at one parameter point.
//
// It returns true iff the evaluator succeeded AND every block's local
// analytic Jacobian agrees with its finite-difference estimate within
// relativePrecision. results may be nil when only the boolean is
// wanted; comparison semantics are identical either way, only the
// matrix bookkeeping (including the numeric ambient Jacobians, which
// need an extra finite-difference pass) is skipped.
//
// parameters is read-only: perturbed evaluations run on private copies.
// Panics when parameters does not match the evaluator's declared block
// layout.
func (c *Checker) Probe(parameters [][]float64, relativePrecision float64, results *Results) bool {
	c.validateParameters(parameters)
	if results != nil {
		results.reset(c.blockSizes, c.tangentSizes, c.numResiduals)
	}

	// Step 1: one evaluation with residuals and all analytic Jacobians.
	numBlocks := len(c.blockSizes)
	residuals := make([]float64, c.numResiduals)
	analytic := make([]*matrix.Dense, numBlocks)
	for i, size := range c.blockSizes {
		jac, err := matrix.NewDense(c.numResiduals, size)
		if err != nil {
			panic(panicResultsShape) // sizes validated in New
		}
		analytic[i] = jac
	}
	if !c.ev.Evaluate(parameters, residuals, analytic) {
		return c.fail(results, "residual evaluation failed at the probe point; no Jacobians were checked\n")
	}

	fn := c.residualFunc()

	// Step 2: per block — project analytic, differentiate numerically,
	// record, compare. Blocks are independent; order is fixed for
	// reproducible logs.
	maxErr := 0.0
	var logs []string
	for i := 0; i < numBlocks; i++ {
		m := c.manifolds[i]

		local, err := manifold.Project(analytic[i], m, parameters[i])
		if err != nil {
			return c.fail(results, fmt.Sprintf("manifold Plus-Jacobian evaluation failed for block %d: %v\n", i, err))
		}

		numericLocal, err := numdiff.Jacobian(fn, parameters, i, m, c.numResiduals, c.opts)
		if err != nil {
			return c.fail(results, fmt.Sprintf("residual evaluation failed while differentiating block %d: %v\n", i, err))
		}

		if results != nil {
			// The ambient estimate is pure bookkeeping: differentiate
			// the same block through the identity manifold. The
			// comparison never reads it, and the verdict must not
			// depend on the sink being present — when an evaluator only
			// accepts points its manifold can reach, raw ambient
			// perturbations may fail; the entry then stays zero-filled.
			if numericAmbient, aerr := numdiff.Jacobian(fn, parameters, i, manifold.NewIdentity(c.blockSizes[i]), c.numResiduals, c.opts); aerr == nil {
				results.NumericAmbientJacobians[i] = numericAmbient
			}
			results.AmbientJacobians[i] = analytic[i]
			results.LocalJacobians[i] = local
			results.NumericLocalJacobians[i] = numericLocal
		}

		// Step 3 (incremental): aggregate across blocks by max error and
		// concatenated non-empty fragments.
		blockErr, fragment := compareBlock(local, numericLocal, i, relativePrecision)
		if blockErr > maxErr {
			maxErr = blockErr
		}
		if fragment != "" {
			logs = append(logs, fragment)
		}
	}

	if results != nil {
		results.Success = true
		copy(results.Residuals, residuals)
		results.MaximumRelativeError = maxErr
		results.DiagnosticLog = strings.Join(logs, "")
	}

	// Step 4: the boolean verdict. Evaluator success is already
	// established by reaching this point.
	return maxErr <= relativePrecision
}

// residualFunc adapts the borrowed evaluator to the numdiff callback
// (residuals only, no Jacobians).
func (c *Checker) residualFunc() numdiff.Func {
	return func(parameters [][]float64, residuals []float64) error {
		if !c.ev.Evaluate(parameters, residuals, nil) {
			return errEvaluatorFailure
		}

		return nil
	}
}

// fail reports an evaluation failure: results (when present) are reset
// to zero-filled, correctly shaped contents with the given log line.
// Always returns false.
func (c *Checker) fail(results *Results, logLine string) bool {
	if results != nil {
		// A mid-probe failure may have partially populated the record;
		// start over so every matrix is zero-filled per the invariant.
		results.reset(c.blockSizes, c.tangentSizes, c.numResiduals)
		results.DiagnosticLog = logLine
	}

	return false
}

// validateParameters panics unless parameters matches the evaluator's
// declared block layout (count and per-block ambient sizes).
func (c *Checker) validateParameters(parameters [][]float64) {
	if len(parameters) != len(c.blockSizes) {
		panic(panicParamCount)
	}
	for i, block := range parameters {
		if len(block) != c.blockSizes[i] {
			panic(panicParamBlockSize)
		}
	}
}
