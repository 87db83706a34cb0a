package constraint

import (
	"math"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/dag"
)

// Problem is a sparse convex QP in the form the solver expects:
// minimize (1/2) x^T P x  subject to  L ≤ A x ≤ U.
type Problem struct {
	NumVars  int
	VarIndex map[string]int // node ID -> column index into P and A
	Widths   map[string]float64
	RankY    map[int]float64 // rank index -> vertical centerline

	P *CSC
	Q []float64 // linear term; always zero-valued, kept for solver generality

	A *CSC
	L []float64
	U []float64
}

// X returns the solved horizontal centerline for node id, given the
// solver's output vector. Panics if id has no variable — callers only ever
// look up nodes they themselves fed into Build.
func (p *Problem) X(id string, x []float64) float64 {
	i, ok := p.VarIndex[id]
	if !ok {
		panic("constraint: no variable for node " + id)
	}
	return x[i]
}

// quadAccum accumulates objective triplets (P) across the several
// objective terms before a single NewCSC pass converts them.
type quadAccum struct {
	triplets []Triplet
}

// addForm adds weight*(sum_i coeffs[i]*x_i)^2 to the objective, expanded
// into (1/2)x^T P x form: P_ij += 2*weight*coeffs[i]*coeffs[j] for every
// pair, including i == j.
func (qa *quadAccum) addForm(coeffs map[int]float64, weight float64) {
	if weight == 0 || len(coeffs) == 0 {
		return
	}
	for i, ci := range coeffs {
		for j, cj := range coeffs {
			v := 2 * weight * ci * cj
			if v == 0 {
				continue
			}
			qa.triplets = append(qa.triplets, Triplet{Row: i, Col: j, Value: v})
		}
	}
}

// Build compiles g (normalized and ranked) into a Problem, using orders
// (the per-rank left-to-right permutation the ordering stage produced) to
// generate separation and margin constraints. widths supplies each regular
// vertex's box width; virtual and auxiliary vertices are assumed width 0
// by the caller. containment maps a parent actor ID to the actor IDs
// declared beneath it.
func Build(g *dag.DAG, orders map[int][]string, containment map[string][]string, widths map[string]float64, cfg config.Config) *Problem {
	nodeOrder := g.NodeOrder()
	varIndex := make(map[string]int, len(nodeOrder))
	for i, id := range nodeOrder {
		varIndex[id] = i
	}
	n := len(nodeOrder)

	w := make(map[string]float64, n)
	for _, id := range nodeOrder {
		w[id] = widths[id]
	}

	rankY := make(map[int]float64)
	for _, r := range g.RankIDs() {
		rankY[r] = float64(r) * cfg.RowHeight
	}

	qa := &quadAccum{}
	addEdgeStraightness(g, varIndex, qa, cfg)
	addParentChildCentering(g, varIndex, qa, cfg)
	addAnchorPull(varIndex, qa, cfg)
	P := NewCSC(n, n, qa.triplets)

	var rows []Triplet
	var l, u []float64
	addSeparationRows(g, orders, varIndex, w, cfg, &rows, &l, &u)
	addMarginRows(g, orders, varIndex, w, cfg, &rows, &l, &u)
	addContainmentRows(containment, varIndex, w, cfg, &rows, &l, &u)
	A := NewCSC(len(l), n, rows)

	return &Problem{
		NumVars:  n,
		VarIndex: varIndex,
		Widths:   w,
		RankY:    rankY,
		P:        P,
		Q:        make([]float64, n),
		A:        A,
		L:        l,
		U:        u,
	}
}

// addSeparationRows enforces, for every pair of consecutive vertices in a
// rank's order, x_b - x_a ≥ (w_a + w_b)/2 + Gap.
func addSeparationRows(g *dag.DAG, orders map[int][]string, varIndex map[string]int, w map[string]float64, cfg config.Config, rows *[]Triplet, l, u *[]float64) {
	for _, r := range g.RankIDs() {
		seq := orders[r]
		for i := 0; i+1 < len(seq); i++ {
			a, b := seq[i], seq[i+1]
			row := len(*l)
			*rows = append(*rows,
				Triplet{Row: row, Col: varIndex[b], Value: 1},
				Triplet{Row: row, Col: varIndex[a], Value: -1},
			)
			*l = append(*l, (w[a]+w[b])/2+cfg.Gap)
			*u = append(*u, math.Inf(1))
		}
	}
}

// addMarginRows enforces, for the leftmost vertex on each rank,
// x_i ≥ w_i/2 + Margin.
func addMarginRows(g *dag.DAG, orders map[int][]string, varIndex map[string]int, w map[string]float64, cfg config.Config, rows *[]Triplet, l, u *[]float64) {
	for _, r := range g.RankIDs() {
		seq := orders[r]
		if len(seq) == 0 {
			continue
		}
		leftmost := seq[0]
		row := len(*l)
		*rows = append(*rows, Triplet{Row: row, Col: varIndex[leftmost], Value: 1})
		*l = append(*l, w[leftmost]/2+cfg.Margin)
		*u = append(*u, math.Inf(1))
	}
}

// addContainmentRows enforces, for every declared parent/child pair, that
// the child's box lies inside the parent's box padded by Gap on each side:
//
//	x_child - w_child/2 ≥ x_parent - w_parent/2 + Gap
//	x_child + w_child/2 ≤ x_parent + w_parent/2 - Gap
func addContainmentRows(containment map[string][]string, varIndex map[string]int, w map[string]float64, cfg config.Config, rows *[]Triplet, l, u *[]float64) {
	for parent, children := range containment {
		pi, ok := varIndex[parent]
		if !ok {
			continue
		}
		for _, child := range children {
			ci, ok := varIndex[child]
			if !ok || child == parent {
				continue
			}

			leftRow := len(*l)
			*rows = append(*rows,
				Triplet{Row: leftRow, Col: ci, Value: 1},
				Triplet{Row: leftRow, Col: pi, Value: -1},
			)
			*l = append(*l, (w[child]-w[parent])/2+cfg.Gap)
			*u = append(*u, math.Inf(1))

			rightRow := len(*l)
			*rows = append(*rows,
				Triplet{Row: rightRow, Col: ci, Value: 1},
				Triplet{Row: rightRow, Col: pi, Value: -1},
			)
			*l = append(*l, math.Inf(-1))
			*u = append(*u, (w[parent]-w[child])/2-cfg.Gap)
		}
	}
}

// addEdgeStraightness adds weight*(x_u - x_v)^2 per edge, weighted more
// heavily when both endpoints are virtual chain links so long multi-rank
// edges prefer to run straight down.
func addEdgeStraightness(g *dag.DAG, varIndex map[string]int, qa *quadAccum, cfg config.Config) {
	for _, e := range g.Edges() {
		ui, ok1 := varIndex[e.From]
		vi, ok2 := varIndex[e.To]
		if !ok1 || !ok2 {
			continue
		}
		weight := cfg.WStraight
		if isVirtual(g, e.From) && isVirtual(g, e.To) {
			weight = cfg.WStraightVirtual
		}
		qa.addForm(map[int]float64{ui: 1, vi: -1}, weight)
	}
}

func isVirtual(g *dag.DAG, id string) bool {
	n, ok := g.Node(id)
	return ok && n.IsVirtual()
}

// addParentChildCentering adds weight*(x_p - mean(x_children))^2 for every
// vertex with at least one child, pulling a parent toward the horizontal
// center of its children.
func addParentChildCentering(g *dag.DAG, varIndex map[string]int, qa *quadAccum, cfg config.Config) {
	for _, id := range g.NodeOrder() {
		children := g.Children(id)
		if len(children) == 0 {
			continue
		}
		pi, ok := varIndex[id]
		if !ok {
			continue
		}
		k := float64(len(children))
		coeffs := map[int]float64{pi: 1}
		for _, c := range children {
			if ci, ok := varIndex[c]; ok {
				coeffs[ci] += -1 / k
			}
		}
		qa.addForm(coeffs, cfg.WCenter)
	}
}

// addAnchorPull adds a weak eps*x_i^2 term per variable, keeping the
// system bounded when no other constraint pins a vertex's absolute
// position.
func addAnchorPull(varIndex map[string]int, qa *quadAccum, cfg config.Config) {
	for _, i := range varIndex {
		qa.addForm(map[int]float64{i: 1}, cfg.AnchorEpsilon)
	}
}
