// Package transform prepares a parsed actor/action graph for ordering and
// layout.
//
// # Overview
//
// A graph fresh out of the builder has every node at rank 0, possibly with
// cycles (an actor calling back into an earlier step) and
// edges spanning more than one rank. This package normalizes that into the
// form [order] and [constraint] expect:
//
//   - Cycles are broken by reversing a greedily chosen feedback arc set
//   - Nodes are assigned ranks based on longest path from the sources
//   - Edges spanning multiple ranks are subdivided into virtual-node chains
//   - Unavoidable crossing tangles are resolved with separator beams
//
// [Normalize] runs the full pipeline in the correct order.
//
// # Cycle Breaking
//
// [BreakCycles] reverses a small set of edges to make the graph acyclic,
// marking each with MetaBackEdge. The set comes from the Eades-Lin-Smyth
// greedy heuristic and is not guaranteed to be minimal: repeatedly
// peel off sinks and sources, and when neither remains, remove the node
// with the largest out-degree minus in-degree. Ties break on declaration
// order, so cycle breaking is deterministic across otherwise-identical
// diagrams.
//
// # Rank Assignment
//
// [AssignRanks] computes each node's rank as one more than the maximum rank
// of its parents, via a topological (Kahn's algorithm) traversal. Source
// nodes land on rank 0.
//
// # Edge Subdivision
//
// [Subdivide] breaks edges spanning multiple ranks into chains of
// single-rank hops through virtual nodes, and extends sinks down to the
// bottom rank so the diagram has a flat baseline. Virtual nodes carry a
// MasterID back to their originating actor.
//
// # Span Overlap Resolution
//
// [ResolveSpanOverlaps] detects tangle motifs — such as a complete
// bipartite K(2,2) subgraph — where every ordering of a rank guarantees a
// crossing, and inserts an auxiliary separator node that routes the shared
// edges through one point instead.
//
// [order]: github.com/depictlang/depict/pkg/dag/order
// [constraint]: github.com/depictlang/depict/pkg/constraint
package transform
