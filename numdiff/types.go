// SPDX-License-Identifier: MIT
// Package numdiff: schemes, options, defaults and sentinel errors.

package numdiff

import "errors"

// Scheme selects the finite-difference rule used per tangent coordinate.
//
//   - Forward — (f(x⊞h) - f(x)) / h. One extra evaluation per coordinate;
//     the base residual is evaluated once and reused. First-order accurate.
//   - Central — (f(x⊞h) - f(x⊟h)) / (2h). Two evaluations per coordinate,
//     second-order accurate. The default.
//   - Ridders — central differences refined by Richardson extrapolation
//     across shrinking steps, keeping the candidate with the smallest
//     extrapolation error. Considerably more evaluations, considerably
//     more accurate near curvature changes.
type Scheme int

const (
	// Forward uses the first-order forward difference.
	Forward Scheme = iota

	// Central uses the second-order central difference.
	Central

	// Ridders uses Ridders' method: central differences with
	// Richardson extrapolation and per-column error control.
	Ridders
)

// String implements fmt.Stringer for diagnostics.
func (s Scheme) String() string {
	switch s {
	case Forward:
		return "Forward"
	case Central:
		return "Central"
	case Ridders:
		return "Ridders"
	default:
		return "Unknown"
	}
}

// DEFAULTS — single source of truth for zero-configuration behavior.
const (
	// DefaultRelativeStep scales the per-coordinate step by the local
	// magnitude of the point: step = RelativeStep·|x|, with RelativeStep
	// itself used as an absolute step when that product underflows
	// MinStep (coordinates at or near zero).
	DefaultRelativeStep = 1e-6

	// DefaultMinStep is the underflow threshold below which a scaled
	// step is considered degenerate: stepping by ~1e-12 would drown the
	// divided difference in cancellation.
	DefaultMinStep = 1e-12

	// DefaultRiddersInitialRadius is the relative half-width of the
	// first (largest) Ridders step.
	DefaultRiddersInitialRadius = 1e-2

	// DefaultRiddersShrinkFactor divides the step between successive
	// Ridders rows.
	DefaultRiddersShrinkFactor = 2.0

	// DefaultMaxRiddersExtrapolations bounds the extrapolation tableau.
	DefaultMaxRiddersExtrapolations = 10

	// DefaultRiddersEpsilon stops the extrapolation early once the
	// estimated error falls below it.
	DefaultRiddersEpsilon = 1e-12
)

// Options configures finite-difference estimation.
//
// Fields:
//   - Scheme       — Forward, Central or Ridders.
//   - RelativeStep — relative scale factor applied per coordinate; also
//     the absolute fallback step for zero-valued coordinates.
//   - MinStep      — threshold under which a scaled step counts as
//     degenerate and the fallback kicks in.
//   - RiddersInitialRadius, RiddersShrinkFactor,
//     MaxRiddersExtrapolations, RiddersEpsilon — Ridders-only knobs;
//     ignored by Forward/Central.
//
// Example:
//
//	opts := numdiff.DefaultOptions()
//	opts.Scheme = numdiff.Ridders
//	jac, err := numdiff.Jacobian(f, params, 0, m, nResiduals, opts)
type Options struct {
	Scheme                   Scheme
	RelativeStep             float64
	MinStep                  float64
	RiddersInitialRadius     float64
	RiddersShrinkFactor      float64
	MaxRiddersExtrapolations int
	RiddersEpsilon           float64
}

// DefaultOptions returns the documented defaults: Central differences
// with step = 1e-6·|x|, or an absolute 1e-6 at zero-valued coordinates.
func DefaultOptions() Options {
	return Options{
		Scheme:                   Central,
		RelativeStep:             DefaultRelativeStep,
		MinStep:                  DefaultMinStep,
		RiddersInitialRadius:     DefaultRiddersInitialRadius,
		RiddersShrinkFactor:      DefaultRiddersShrinkFactor,
		MaxRiddersExtrapolations: DefaultMaxRiddersExtrapolations,
		RiddersEpsilon:           DefaultRiddersEpsilon,
	}
}

var (
	// ErrBadOptions indicates a non-positive step, a shrink factor <= 1,
	// a non-positive extrapolation budget, or an unknown scheme.
	ErrBadOptions = errors.New("numdiff: invalid options")

	// ErrEvaluation indicates the residual function reported failure at
	// the base point or at a perturbed point; no partial Jacobian is
	// returned in that case.
	ErrEvaluation = errors.New("numdiff: residual evaluation failed")
)

// Validate checks the options for internal consistency.
// Returns ErrBadOptions (wrapped with the offending field) or nil.
func (o Options) Validate() error {
	if o.Scheme != Forward && o.Scheme != Central && o.Scheme != Ridders {
		return wrapBadOption("Scheme")
	}
	if o.RelativeStep <= 0 {
		return wrapBadOption("RelativeStep")
	}
	if o.MinStep <= 0 {
		return wrapBadOption("MinStep")
	}
	if o.Scheme == Ridders {
		if o.RiddersInitialRadius <= 0 {
			return wrapBadOption("RiddersInitialRadius")
		}
		if o.RiddersShrinkFactor <= 1 {
			return wrapBadOption("RiddersShrinkFactor")
		}
		if o.MaxRiddersExtrapolations < 1 {
			return wrapBadOption("MaxRiddersExtrapolations")
		}
		if o.RiddersEpsilon <= 0 {
			return wrapBadOption("RiddersEpsilon")
		}
	}

	return nil
}
