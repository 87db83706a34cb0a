// Package graph translates a parsed Depict DSL program into a typed
// directed multigraph ready for ranking and ordering.
//
// # Actors and Actions
//
// [Build] walks a [github.com/depictlang/depict/pkg/dsl.Program]'s
// statements in order. Each actor name is declared once, the first time it
// appears; two statements naming the same actor refer to the same node.
// An actor-sequence with N ≥ 2 actors and an action list yields one edge
// per consecutive pair per action: "A B C: x, y" produces A→B and B→C
// both labeled x, then A→B and B→C both labeled y, matching declaration
// order. A response annotation ("x/reply") attaches the reply label to
// that same edge rather than creating a second one; it is drawn on the
// return arrow during geometry assembly.
//
// A single-actor statement ("A: note") has no receiver to draw an edge
// to; its actions are collected as self-notes on the actor instead (see
// [Graph.Notes]), rendered beside the actor's lane rather than as a loop
// edge.
//
// # Containment
//
// Hierarchy markers (indentation, `|`) nest one statement under another.
// [Build] treats the enclosing statement's first actor as the parent of
// every actor introduced in the nested statement, recorded in
// [Graph.Containment]. The constraint builder uses this to keep a nested
// call's horizontal span inside its parent's.
//
// # Parallel Edges and Determinism
//
// Multiple actions between the same ordered pair of actors are preserved
// as separate parallel edges, in declaration order — [dag.DAG] never
// deduplicates edges. That insertion order is the tiebreak later stages
// (ranking, ordering) use to stay deterministic.
package graph
