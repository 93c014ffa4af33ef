// Package manifold defines the local-parameterization capability consumed
// by the derivative checker.
//
// A Manifold relates a parameter block's ambient representation (how the
// evaluator stores it) to a possibly lower-dimensional tangent space used
// for perturbations:
//
//   - Plus(x, delta) maps a tangent perturbation onto the ambient point.
//   - PlusJacobian(x) is the derivative of Plus with respect to delta at
//     delta = 0, an ambient×tangent matrix.
//
// Identity is the trivial manifold (tangent == ambient, Plus is vector
// addition); it stands in for every parameter block that has no explicit
// manifold. Project folds an ambient Jacobian into tangent space by
// right-multiplying with PlusJacobian.
//
// Manifold values are borrowed: the checker never stores them past the
// call that received them, and callers must keep them alive for the
// call's duration only.
package manifold
