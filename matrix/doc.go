// Package matrix provides the dense linear-algebra substrate used by the
// derivative checker.
//
// The matrix package provides:
//
//   - Dense — a strict, row-major float64 matrix with O(1) element access
//     and flat backing storage for cache friendliness.
//   - Central validators (nil/shape checks) shared by every kernel, so
//     call sites never duplicate guard logic.
//   - A small set of kernels: Mul for Jacobian projection, MatVec for
//     building linear test fixtures, plus elementwise helpers.
//
// All kernels perform strict fail-fast validation and return package
// sentinel errors on dimension mismatches; callers match them with
// errors.Is. Loop orders are fixed, so results are bit-reproducible.
package matrix
