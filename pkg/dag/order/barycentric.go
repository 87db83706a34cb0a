package order

import (
	"cmp"
	"context"
	"slices"

	"github.com/depictlang/depict/pkg/dag"
)

// Barycentric orders ranks using the Sugiyama barycenter heuristic with
// transpose refinement; nodes with equal barycenters keep their previous
// relative order.
//
// Each pass sweeps every rank once, positioning nodes near the average
// index of their already-placed neighbors in the adjacent rank, then runs
// adjacent-swap transpose passes until no swap reduces crossings. Sweeps
// alternate top-down (barycenter over parents) and bottom-up (barycenter
// over children). Passes stop early once two in a row fail to improve the
// total crossing count, and the best ordering seen is returned.
//
// Nodes with no neighbors in the adjacent rank keep their current
// position, so isolated nodes don't drift on ties.
type Barycentric struct {
	// Passes caps the number of sweeps. Zero means one pass.
	Passes int
}

// OrderRanks runs OrderRanksContext with context.Background().
func (b Barycentric) OrderRanks(g *dag.DAG) map[int][]string {
	return b.OrderRanksContext(context.Background(), g)
}

// OrderRanksContext returns the best ordering found within ctx's deadline,
// or after Passes sweeps, whichever comes first.
func (b Barycentric) OrderRanksContext(ctx context.Context, g *dag.DAG) map[int][]string {
	ranks := g.RankIDs()
	order := initialOrder(g, ranks)
	if len(ranks) < 2 {
		return order
	}

	passes := b.Passes
	if passes <= 0 {
		passes = 1
	}

	best := cloneOrder(order)
	bestCrossings := dag.CountCrossings(g, order)
	stale := 0

	for pass := 0; pass < passes; pass++ {
		select {
		case <-ctx.Done():
			return best
		default:
		}

		if pass%2 == 0 {
			sweepDown(g, order, ranks)
		} else {
			sweepUp(g, order, ranks)
		}
		for transposePass(g, order, ranks) {
		}

		crossings := dag.CountCrossings(g, order)
		if crossings < bestCrossings {
			bestCrossings = crossings
			best = cloneOrder(order)
			stale = 0
			continue
		}
		stale++
		if stale >= 2 {
			break
		}
	}

	return best
}

// initialOrder seeds each rank's starting permutation left-to-right by
// declaration order (g.NodeOrder), not by g.NodesInRank, whose bucket order
// is undefined once ranks have been (re)assigned.
func initialOrder(g *dag.DAG, ranks []int) map[int][]string {
	order := make(map[int][]string, len(ranks))
	for _, r := range ranks {
		order[r] = make([]string, 0, len(g.NodesInRank(r)))
	}
	for _, id := range g.NodeOrder() {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		order[n.Rank] = append(order[n.Rank], id)
	}
	return order
}

func cloneOrder(order map[int][]string) map[int][]string {
	out := make(map[int][]string, len(order))
	for r, seq := range order {
		cp := make([]string, len(seq))
		copy(cp, seq)
		out[r] = cp
	}
	return out
}

func sweepDown(g *dag.DAG, order map[int][]string, ranks []int) {
	for i := 1; i < len(ranks); i++ {
		reorderByBarycenter(g, order, ranks[i], order[ranks[i-1]], true)
	}
}

func sweepUp(g *dag.DAG, order map[int][]string, ranks []int) {
	for i := len(ranks) - 2; i >= 0; i-- {
		reorderByBarycenter(g, order, ranks[i], order[ranks[i+1]], false)
	}
}

// reorderByBarycenter sorts order[rank] by each node's average position
// among its neighbors (parents if useParents, else children) in
// neighborOrder. Nodes without a neighbor there keep their current index
// as their sort key, so they stay put relative to their placed peers.
func reorderByBarycenter(g *dag.DAG, order map[int][]string, rank int, neighborOrder []string, useParents bool) {
	seq := order[rank]
	neighborPos := dag.PosMap(neighborOrder)

	type entry struct {
		id  string
		key float64
	}
	entries := make([]entry, len(seq))
	for i, id := range seq {
		var neighbors []string
		if useParents {
			neighbors = g.Parents(id)
		} else {
			neighbors = g.Children(id)
		}

		sum, count := 0, 0
		for _, n := range neighbors {
			if pos, ok := neighborPos[n]; ok {
				sum += pos
				count++
			}
		}
		key := float64(i)
		if count > 0 {
			key = float64(sum) / float64(count)
		}
		entries[i] = entry{id: id, key: key}
	}

	slices.SortStableFunc(entries, func(a, b entry) int { return cmp.Compare(a.key, b.key) })
	for i, e := range entries {
		seq[i] = e.id
	}
}

// transposePass tries every adjacent swap within every rank and applies
// it if it strictly reduces the swapped pair's crossings against both
// neighboring ranks. Returns whether any swap was applied.
func transposePass(g *dag.DAG, order map[int][]string, ranks []int) bool {
	changed := false
	for _, r := range ranks {
		seq := order[r]
		if len(seq) < 2 {
			continue
		}

		var abovePos, belowPos map[string]int
		if above, ok := order[r-1]; ok {
			abovePos = dag.PosMap(above)
		}
		if below, ok := order[r+1]; ok {
			belowPos = dag.PosMap(below)
		}

		for i := 0; i < len(seq)-1; i++ {
			a, b := seq[i], seq[i+1]
			before, after := 0, 0
			if abovePos != nil {
				before += dag.CountPairCrossingsWithPos(g, a, b, abovePos, true)
				after += dag.CountPairCrossingsWithPos(g, b, a, abovePos, true)
			}
			if belowPos != nil {
				before += dag.CountPairCrossingsWithPos(g, a, b, belowPos, false)
				after += dag.CountPairCrossingsWithPos(g, b, a, belowPos, false)
			}
			if after < before {
				seq[i], seq[i+1] = seq[i+1], seq[i]
				changed = true
			}
		}
	}
	return changed
}
