// Package constraint builds the sparse convex quadratic program that
// positions ranked, ordered actors horizontally.
//
// Variables are one per vertex (actor lanes, virtual chain links, and
// separator beams alike): its horizontal centerline x_i. Vertex widths and
// rank vertical centerlines are constants baked into the constraint
// coefficients and objective weights, not variables — the program only
// ever solves for the x_i.
//
// Build produces three pieces, in the sparse-CSC shape an operator-splitting
// solver expects (see [github.com/depictlang/depict/pkg/qpsolve]):
//
//   - P, the symmetric quadratic objective term, accumulated from edge
//     straightness, parent-child centering, and a weak anchor-pull term.
//   - A, L, U, the linear inequality constraints (left-to-right
//     separation, containment, margin) in l ≤ Ax ≤ u form.
//
// # Containment
//
// A vertex declared a child of a parent is constrained so its own box lies
// strictly inside the parent's box, padded by the configured gap. Nested
// containment (grandchild inside child inside parent) is enforced
// transitively through the chain of pairwise constraints rather than by
// computing an aggregate subtree bounding interval directly — the
// resulting feasible region is the same whenever every pairwise constraint
// in the chain holds, and avoids introducing extra aggregate variables for
// a subtree span that no other part of the program needs.
package constraint
