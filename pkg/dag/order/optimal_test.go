package order

import (
	"testing"

	"github.com/depictlang/depict/pkg/dag"
)

func TestOptimalSearch_FindsCrossingFreeOrder(t *testing.T) {
	g := crossingGraph()

	order := OptimalSearch{Threshold: 10}.OrderRanks(g)
	if got := dag.CountCrossings(g, order); got != 0 {
		t.Errorf("OptimalSearch left %d crossings, want 0; order=%v", got, order)
	}
}

func TestOptimalSearch_FallsBackAboveThreshold(t *testing.T) {
	g := crossingGraph()

	// Threshold of 1 excludes both 2-wide ranks from exhaustive search;
	// OptimalSearch should still return a complete, valid ordering.
	order := OptimalSearch{Threshold: 1}.OrderRanks(g)
	if len(order[0]) != 2 || len(order[1]) != 2 {
		t.Fatalf("order = %v, want both ranks with 2 nodes", order)
	}
}

func TestOptimalSearch_ProgressReported(t *testing.T) {
	g := crossingGraph()

	var calls int
	OptimalSearch{
		Threshold: 10,
		Progress: func(explored, pruned, best int) {
			calls++
		},
	}.OrderRanks(g)

	if calls == 0 {
		t.Error("Progress callback was never called")
	}
}
