package transform

import "github.com/depictlang/depict/pkg/dag"

// MetaBackEdge marks an edge, in its Meta map, as a feedback arc BreakCycles
// reversed. The geometry assembler draws these top-to-bottom on the
// reversed direction and styles them distinctly (spec.md §4.8).
const MetaBackEdge = "back_edge"

// BreakCycles finds a small feedback arc set and reverses it so the graph
// becomes acyclic, using the Eades-Lin-Smyth greedy heuristic: repeatedly
// peel off sinks (appended to a right-hand sequence) and sources (appended
// to a left-hand sequence); when neither remains, remove the node with the
// largest out-degree minus in-degree and append it to the left-hand
// sequence. Edges that run backward in the resulting left+right order are
// the feedback set; each is removed and re-added in the opposite direction
// with [MetaBackEdge] set, so later stages still draw something for it
// instead of silently losing the action.
//
// A true self-loop (an edge from a vertex to itself) can't be fixed by
// reversal, since reversing it yields the same edge; these are dropped
// outright in a pre-pass.
//
// Ties in sink/source selection and in the out-minus-in-degree choice break
// on declaration order ([dag.DAG.NodeOrder]), so breaking the same cycle in
// the same source twice always reverses the same edges.
//
// Returns the number of edges removed or reversed.
func BreakCycles(g *dag.DAG) int {
	removed := 0
	for _, e := range g.Edges() {
		if e.From == e.To {
			g.RemoveEdge(e.From, e.To)
			removed++
		}
	}

	order := g.NodeOrder()

	out := make(map[string]map[string]int, len(order))
	in := make(map[string]map[string]int, len(order))
	outDeg := make(map[string]int, len(order))
	inDeg := make(map[string]int, len(order))
	remaining := make(map[string]bool, len(order))

	for _, id := range order {
		remaining[id] = true
		out[id] = make(map[string]int)
		in[id] = make(map[string]int)
	}
	for _, e := range g.Edges() {
		out[e.From][e.To]++
		in[e.To][e.From]++
		outDeg[e.From]++
		inDeg[e.To]++
	}

	remove := func(id string) {
		for child, n := range out[id] {
			inDeg[child] -= n
			delete(in[child], id)
		}
		for parent, n := range in[id] {
			outDeg[parent] -= n
			delete(out[parent], id)
		}
		delete(remaining, id)
	}

	var left, right []string

	for len(remaining) > 0 {
		for peeledSink := true; peeledSink; {
			peeledSink = false
			for _, id := range order {
				if remaining[id] && outDeg[id] == 0 {
					right = append([]string{id}, right...)
					remove(id)
					peeledSink = true
				}
			}
		}
		for peeledSource := true; peeledSource; {
			peeledSource = false
			for _, id := range order {
				if remaining[id] && inDeg[id] == 0 {
					left = append(left, id)
					remove(id)
					peeledSource = true
				}
			}
		}
		if len(remaining) == 0 {
			break
		}

		best, bestDelta, haveBest := "", 0, false
		for _, id := range order {
			if !remaining[id] {
				continue
			}
			delta := outDeg[id] - inDeg[id]
			if !haveBest || delta > bestDelta {
				best, bestDelta, haveBest = id, delta, true
			}
		}
		left = append(left, best)
		remove(best)
	}

	final := append(left, right...)
	pos := make(map[string]int, len(final))
	for i, id := range final {
		pos[id] = i
	}

	var feedback []dag.Edge
	for _, e := range g.Edges() {
		if pos[e.From] > pos[e.To] {
			feedback = append(feedback, e)
		}
	}
	for _, e := range feedback {
		g.RemoveEdge(e.From, e.To)
		meta := dag.Metadata{}
		for k, v := range e.Meta {
			meta[k] = v
		}
		meta[MetaBackEdge] = true
		_ = g.AddEdge(dag.Edge{From: e.To, To: e.From, Meta: meta})
	}
	return removed + len(feedback)
}
