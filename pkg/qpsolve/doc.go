// Package qpsolve drives the convex QP [constraint.Problem] builds,
// using ADMM operator splitting: the class of solver spec.md §4.6
// explicitly allows ("any convex QP solver using operator splitting is
// suitable").
//
// No convex-QP library (OSQP, Clarabel, gonum/optimize) appears anywhere
// in the retrieval pack's example repos or their go.sum files, so this
// package is implemented directly against the sparse CSC form
// [constraint.Build] produces, in the plain iterative-loop numeric style
// the teacher uses for its own layout math (no matrix library, hand-written
// sparse matrix-vector products).
//
// The solver runs entirely in float64. spec.md's open question about a
// 32-bit-precision solver fork does not apply here: there is no forked
// low-precision solver anywhere in the corpus to port, and Go has no
// ambient 32-bit float build target the way the original's WASM target
// did, so a float32 path would have to be invented from nothing rather
// than grounded.
package qpsolve
