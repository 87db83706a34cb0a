package transform

import (
	"fmt"

	"github.com/depictlang/depict/pkg/dag"
)

// Subdivide breaks edges that span multiple ranks into chains of
// single-rank edges through synthetic virtual nodes, so every edge in the
// graph connects consecutive ranks (parent.Rank + 1 == child.Rank):
//
//	Before: client (rank 0) → database (rank 3)
//	After:  client → client_v_1 → client_v_2 → database
//
// Each virtual node keeps a MasterID linking back to the actor lane it
// belongs to, so a chain renders as one continuous lane. Subdivide also
// extends every sink (out-degree 0) down to the bottom rank with a virtual
// chain, so the diagram has a flat baseline for its final row of actions.
//
// Virtual node IDs are "master_v_rank" ("client_v_1"), disambiguated with a
// numeric suffix on collision. Edge metadata is preserved only on the final
// edge of a subdivided chain, entering the original target.
//
// Panics if g is nil; returns immediately if g is empty.
func Subdivide(g *dag.DAG) {
	gen := newIDGen(g.Nodes())
	subdivideLongEdges(g, gen)
	extendSinksToBottom(g, gen)
}

func subdivideLongEdges(g *dag.DAG, gen *idGen) {
	var toRemove []dag.Edge
	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Rank <= src.Rank+1 {
			continue
		}

		toRemove = append(toRemove, e)
		prevID := src.ID
		for rank := src.Rank + 1; rank < dst.Rank; rank++ {
			prevID = addVirtual(g, gen, prevID, src.ID, rank)
		}
		if err := g.AddEdge(dag.Edge{From: prevID, To: dst.ID, Meta: e.Meta}); err != nil {
			panic(err)
		}
	}

	for _, e := range toRemove {
		g.RemoveEdge(e.From, e.To)
	}
}

func addVirtual(g *dag.DAG, gen *idGen, from, master string, rank int) string {
	id := gen.next(master, rank)
	if err := g.AddNode(dag.Node{
		ID:       id,
		Rank:     rank,
		Kind:     dag.NodeKindVirtual,
		MasterID: master,
	}); err != nil {
		panic(err)
	}
	if err := g.AddEdge(dag.Edge{From: from, To: id}); err != nil {
		panic(err)
	}
	return id
}

func extendSinksToBottom(g *dag.DAG, gen *idGen) {
	maxRank := g.MaxRank()
	for _, id := range g.NodeOrder() {
		n, ok := g.Node(id)
		if !ok || g.OutDegree(n.ID) > 0 || n.Rank >= maxRank {
			continue
		}
		prevID := n.ID
		for rank := n.Rank + 1; rank <= maxRank; rank++ {
			prevID = addVirtual(g, gen, prevID, n.EffectiveID(), rank)
		}
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, rank int) string {
	prefix := fmt.Sprintf("%s_v_%d", base, rank)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
