package transform

import "github.com/depictlang/depict/pkg/dag"

// Normalize runs the full normalization pipeline on g, in order: breaking
// cycles, assigning ranks, subdividing long edges, and resolving span
// overlaps. The result is ready for [order] and [constraint].
//
// Normalize mutates g in place and also returns it, so it can be chained.
func Normalize(g *dag.DAG) *dag.DAG {
	BreakCycles(g)
	AssignRanks(g)
	Subdivide(g)
	ResolveSpanOverlaps(g)
	return g
}
