package constraint

import (
	"math"
	"testing"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/dag"
)

func twoNodeRank(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	if err := g.AddNode(dag.Node{ID: "a", Rank: 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(dag.Node{ID: "b", Rank: 0}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuild_SeparationConstraint(t *testing.T) {
	g := twoNodeRank(t)
	cfg := config.Default().Resolve()
	widths := map[string]float64{"a": 20, "b": 30}
	orders := map[int][]string{0: {"a", "b"}}

	p := Build(g, orders, nil, widths, cfg)

	// One separation row (a,b) and one margin row (a is leftmost).
	if got := len(p.L); got != 2 {
		t.Fatalf("constraint rows = %d, want 2", got)
	}

	dense := p.A.Dense()
	// Row 0: separation, x_b - x_a >= (20+30)/2 + Gap
	wantSep := (20.0+30.0)/2 + cfg.Gap
	if p.L[0] != wantSep {
		t.Errorf("separation bound = %v, want %v", p.L[0], wantSep)
	}
	if dense[0][p.VarIndex["b"]] != 1 || dense[0][p.VarIndex["a"]] != -1 {
		t.Errorf("separation row coefficients wrong: %v", dense[0])
	}

	wantMargin := 20.0/2 + cfg.Margin
	if p.L[1] != wantMargin {
		t.Errorf("margin bound = %v, want %v", p.L[1], wantMargin)
	}
}

func TestBuild_EdgeStraightnessPopulatesP(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "a", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "b", Rank: 1})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})

	cfg := config.Default().Resolve()
	orders := map[int][]string{0: {"a"}, 1: {"b"}}
	p := Build(g, orders, nil, map[string]float64{"a": 10, "b": 10}, cfg)

	dense := p.P.Dense()
	ai, bi := p.VarIndex["a"], p.VarIndex["b"]
	if dense[ai][bi] >= 0 || dense[bi][ai] >= 0 {
		t.Errorf("expected negative off-diagonal for straightness term, got P[a][b]=%v P[b][a]=%v", dense[ai][bi], dense[bi][ai])
	}
	if dense[ai][ai] <= 0 || dense[bi][bi] <= 0 {
		t.Errorf("expected positive diagonal entries, got P[a][a]=%v P[b][b]=%v", dense[ai][ai], dense[bi][bi])
	}
}

func TestBuild_ContainmentBounds(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "p", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "c", Rank: 1})

	cfg := config.Default().Resolve()
	orders := map[int][]string{0: {"p"}, 1: {"c"}}
	containment := map[string][]string{"p": {"c"}}
	widths := map[string]float64{"p": 40, "c": 10}

	p := Build(g, orders, containment, widths, cfg)

	var foundUpper bool
	for _, u := range p.U {
		if !math.IsInf(u, 1) {
			foundUpper = true
		}
	}
	if !foundUpper {
		t.Error("expected a finite upper bound from the containment right-edge row")
	}
}

func TestCSC_DenseRoundtrip(t *testing.T) {
	triplets := []Triplet{
		{Row: 0, Col: 0, Value: 2},
		{Row: 1, Col: 0, Value: 3},
		{Row: 0, Col: 0, Value: 1}, // duplicate, should sum to 3
	}
	m := NewCSC(2, 2, triplets)
	dense := m.Dense()
	if dense[0][0] != 3 {
		t.Errorf("dense[0][0] = %v, want 3 (summed duplicates)", dense[0][0])
	}
	if dense[1][0] != 3 {
		t.Errorf("dense[1][0] = %v, want 3", dense[1][0])
	}
}
