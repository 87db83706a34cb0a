package order

import (
	"context"
	"time"

	"github.com/depictlang/depict/pkg/dag"
	"github.com/depictlang/depict/pkg/dag/order/perm"
)

// OptimalSearch finds the true minimum-crossing ordering for ranks up to
// Threshold wide, and falls back to Barycentric for wider ones.
//
// It seeds every rank with Barycentric's result as an initial bound, then
// for each rank within Threshold, branch-and-bound search explores
// permutations of that rank against its fixed neighboring ranks, pruning
// any partial assignment whose crossing count already meets the best found
// so far. Because [perm.Factorial] grows explosively, Threshold should stay
// small — [github.com/depictlang/depict/internal/config.OptimalOrderingThreshold]
// is 10.
//
// Progress, if set, is called after each rank finishes searching with that
// rank's own counts (not running totals): complete permutations that
// improved on the bound, subtrees pruned, and the best crossing count found.
type OptimalSearch struct {
	// Threshold is the largest rank width searched exhaustively.
	Threshold int
	// Timeout bounds the whole search; zero means no timeout beyond ctx.
	Timeout time.Duration
	// Passes is forwarded to the Barycentric seed pass.
	Passes int
	// Progress reports search statistics per rank, if non-nil.
	Progress func(explored, pruned, best int)
}

// OrderRanks runs OrderRanksContext with context.Background(), applying
// Timeout if set.
func (o OptimalSearch) OrderRanks(g *dag.DAG) map[int][]string {
	ctx := context.Background()
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	return o.OrderRanksContext(ctx, g)
}

// OrderRanksContext searches until ctx is done or every eligible rank has
// been solved, returning the best ordering found for each rank.
func (o OptimalSearch) OrderRanksContext(ctx context.Context, g *dag.DAG) map[int][]string {
	threshold := o.Threshold
	if threshold <= 0 {
		threshold = 10
	}

	order := Barycentric{Passes: o.Passes}.OrderRanksContext(ctx, g)
	ranks := g.RankIDs()

	for _, r := range ranks {
		select {
		case <-ctx.Done():
			return order
		default:
		}

		seq := order[r]
		if len(seq) < 2 || len(seq) > threshold {
			continue
		}

		var abovePos, belowPos map[string]int
		if above, ok := order[r-1]; ok {
			abovePos = dag.PosMap(above)
		}
		if below, ok := order[r+1]; ok {
			belowPos = dag.PosMap(below)
		}
		if abovePos == nil && belowPos == nil {
			continue
		}

		best, explored, pruned, bestCost := branchAndBound(ctx, g, seq, abovePos, belowPos)
		order[r] = best
		if o.Progress != nil {
			o.Progress(explored, pruned, bestCost)
		}
	}

	return order
}

// branchAndBound finds the permutation of nodes minimizing pairwise
// crossings against the fixed abovePos/belowPos position maps, using
// nodes' current order as the initial upper bound. perm.Seq seeds the
// index space explored; the full n! space is never materialized, since a
// partial assignment is abandoned the moment its running cost meets the
// best complete solution found so far.
func branchAndBound(ctx context.Context, g *dag.DAG, nodes []string, abovePos, belowPos map[string]int) (best []string, explored, pruned, bestCost int) {
	n := len(nodes)
	indices := perm.Seq(n)

	best = append([]string(nil), nodes...)
	bestCost = pairwiseCost(g, nodes, abovePos, belowPos)

	used := make([]bool, n)
	current := make([]string, 0, n)

	var recurse func(cost int)
	recurse = func(cost int) {
		if cost >= bestCost {
			pruned++
			return
		}
		if len(current) == n {
			explored++
			bestCost = cost
			copy(best, current)
			return
		}
		if len(current)%4 == 0 {
			select {
			case <-ctx.Done():
				return
			default:
			}
		}

		for _, i := range indices {
			if used[i] {
				continue
			}
			candidate := nodes[i]
			added := 0
			if abovePos != nil {
				for _, placed := range current {
					added += dag.CountPairCrossingsWithPos(g, placed, candidate, abovePos, true)
				}
			}
			if belowPos != nil {
				for _, placed := range current {
					added += dag.CountPairCrossingsWithPos(g, placed, candidate, belowPos, false)
				}
			}

			used[i] = true
			current = append(current, candidate)
			recurse(cost + added)
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	recurse(0)

	return best, explored, pruned, bestCost
}

func pairwiseCost(g *dag.DAG, order []string, abovePos, belowPos map[string]int) int {
	cost := 0
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if abovePos != nil {
				cost += dag.CountPairCrossingsWithPos(g, order[i], order[j], abovePos, true)
			}
			if belowPos != nil {
				cost += dag.CountPairCrossingsWithPos(g, order[i], order[j], belowPos, false)
			}
		}
	}
	return cost
}
