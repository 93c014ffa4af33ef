// Package numdiff estimates Jacobians of residual functions by finite
// differences, taking perturbations along tangent directions of a
// per-block manifold.
//
// The package provides:
//
//   - Scheme — the closed set of differentiation schemes: Forward,
//     Central, and Ridders (Richardson-extrapolated central differences).
//   - Options — the step-size policy record with documented defaults.
//   - Jacobian — the estimator for one parameter block: it perturbs the
//     block's tangent coordinates through Manifold.Plus, evaluates the
//     residual function with all other blocks untouched, and assembles a
//     residual×tangent local Jacobian column by column.
//
// Because perturbations are taken in tangent space, the estimate is a
// local Jacobian by construction: no separate projection is needed on
// the numeric side. Estimating an ambient Jacobian is the special case
// of an Identity manifold.
//
// The estimator never mutates the caller's parameter storage; perturbed
// blocks and residuals live in private buffers, one per evaluation.
package numdiff
