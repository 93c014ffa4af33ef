// Package probe verifies analytic Jacobians against finite-difference
// estimates, one probe per parameter point.
//
// A Checker borrows an Evaluator (the residual function under test) and
// an optional manifold per parameter block. Probe then:
//
//  1. evaluates residuals and all analytic ambient Jacobians once;
//  2. projects each analytic Jacobian into its block's tangent space;
//  3. estimates each block's local Jacobian numerically by perturbing
//     tangent coordinates through the manifold's Plus rule;
//  4. compares the two local Jacobians per element, using the relative
//     error |analytic−numeric| / max(|numeric|, 1);
//  5. reports the worst relative error and a diagnostic log that is
//     empty exactly when every block agrees within tolerance.
//
// The boolean returned by Probe is the pass/fail gate: true iff the
// evaluator succeeded and no element exceeded the given precision. The
// optional Results record carries residuals, all four Jacobian families
// (ambient/local × analytic/numeric), the worst error and the log; it is
// fully overwritten on every probe, so one record can be reused across
// calls. An external optimization driver is expected to call Probe once
// per suspect iteration and surface Results.DiagnosticLog on failure.
//
// Everything is synchronous and single-threaded; the checker never
// mutates the caller's parameter storage and never outlives a call's
// borrowed evaluator or manifolds.
package probe
