package transform

import "github.com/depictlang/depict/pkg/dag"

// AssignRanks assigns nodes to horizontal ranks by depth, using a
// longest-path topological traversal (Kahn's algorithm): each node lands at
// one plus the maximum rank of its parents, so source nodes settle at rank
// 0 and every parent ends up strictly above its children.
//
// AssignRanks assumes the graph is acyclic — run [BreakCycles] first. Nodes
// caught in an undetected cycle never reach zero in-degree: they stay at
// rank 0 unless a parent that was processed raised them.
//
// Existing rank assignments are overwritten. Panics if g is nil.
func AssignRanks(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, id := range g.NodeOrder() {
		degree := g.InDegree(id)
		inDegree[id] = degree
		ranks[id] = 0
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRanks(ranks)
}
