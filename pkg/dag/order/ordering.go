// Package order arranges the nodes within each rank left-to-right to
// minimize edge crossings between adjacent ranks.
//
// # The Ordering Problem
//
// Once every actor and virtual node has a rank ([transform.AssignRanks],
// [transform.Subdivide]), edges only run between adjacent ranks. Finding
// the left-to-right sequence within each rank that minimizes crossings is
// NP-hard in general. This package offers two algorithms with different
// cost/quality trade-offs:
//
//   - [Barycentric]: a fast heuristic, good for interactive use
//   - [OptimalSearch]: an exhaustive search, exact for small ranks
//
// # Barycentric Heuristic
//
// [Barycentric] implements the classic Sugiyama barycenter method with
// transpose refinement: each node is positioned near the average
// index of its neighbors in the adjacent rank, then transpose passes swap
// adjacent nodes wherever doing so reduces crossings. Passes alternate
// top-down and bottom-up, stopping early after two passes in a row fail to
// improve the crossing count.
//
// # Optimal Search
//
// [OptimalSearch] enumerates every permutation of a rank (via
// [github.com/depictlang/depict/pkg/dag/order/perm]) using the Barycentric
// result as an initial upper bound, pruning any partial permutation whose
// crossing count already meets or exceeds the best found so far. Only
// ranks up to a configured width are searched exhaustively; wider ranks
// fall back to Barycentric.
package order

import (
	"context"

	"github.com/depictlang/depict/pkg/dag"
)

// Orderer determines a left-to-right sequence of node IDs for each rank of
// g, minimizing edge crossings between adjacent ranks.
type Orderer interface {
	OrderRanks(g *dag.DAG) map[int][]string
}

// ContextOrderer is an Orderer that honors cancellation and deadlines.
type ContextOrderer interface {
	Orderer
	OrderRanksContext(ctx context.Context, g *dag.DAG) map[int][]string
}

// Quality selects the ordering algorithm's speed/quality trade-off.
type Quality int

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityOptimal
)
