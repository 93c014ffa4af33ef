// Package gradcheck verifies analytic Jacobians of vector-valued residual
// functions against finite-difference estimates, with full support for
// per-block manifolds (local parameterizations).
//
// 🚀 What is gradcheck?
//
//	A small, deterministic library that answers one question: does the
//	Jacobian your evaluator reports agree with the one implied by its
//	residuals? It brings together:
//		• Dense primitives: a strict row-major float64 matrix core
//		• Manifolds: Plus / PlusJacobian update rules and tangent projection
//		• Numeric differentiation: forward, central and Ridders schemes
//		• Probing: per-block comparison, worst-case error, readable diagnostics
//
// ✨ Why choose gradcheck?
//
//   - Deterministic – fixed loop orders, no hidden randomness, no global state
//   - Honest failure modes – sentinel errors for runtime conditions,
//     panics only for broken caller contracts
//   - Pure Go – no cgo, no hidden deps
//   - Diagnostic-first – an empty log means "all good"; a non-empty log
//     localizes every offending Jacobian entry
//
// Under the hood, everything is organized under four subpackages:
//
//	matrix/   — dense row-major matrices, validators and kernels
//	manifold/ — the Manifold capability, identity manifold, tangent projection
//	numdiff/  — finite-difference Jacobian estimation along tangent directions
//	probe/    — the checker: evaluate, project, differentiate, compare, report
//
// A probe walks one way through the data:
//
//	evaluator ──residuals/Jacobians──▶ probe ──tangent steps──▶ numdiff
//	                                     │
//	                                     └──ambient×plus-Jacobian──▶ manifold
//
// Dive into the probe package examples for end-to-end usage.
//
//	go get github.com/katalvlaran/gradcheck
package gradcheck
