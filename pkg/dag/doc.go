// Package dag provides a directed acyclic graph optimized for rank-based
// layered layouts, the structure the rendering pipeline assigns actors and
// actions into between parsing and geometry assembly.
//
// # Overview
//
// Every statement in a diagram connects actors that live on horizontal
// ranks — one rank per step of the interaction — with edges only ever
// connecting nodes in consecutive ranks once [transform.Subdivide] has run.
// This constraint is what lets the ordering and constraint-building stages
// reason about the diagram one rank-pair at a time.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Edges require both endpoints to already exist:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "client", Rank: 0})
//	g.AddNode(dag.Node{ID: "server", Rank: 1})
//	g.AddEdge(dag.Edge{From: "client", To: "server"})
//
// Query structure with [DAG.Children], [DAG.Parents], [DAG.NodesInRank], and
// related methods. [DAG.Validate] checks rank-consecutiveness and acyclicity
// before the pipeline proceeds to constraint building.
//
// # Node Kinds
//
//   - [NodeKindRegular]: an actor lane declared in the source
//   - [NodeKindVirtual]: a synthetic node subdividing an edge across ranks
//   - [NodeKindAuxiliary]: a separator beam resolving an unavoidable tangle
//
// Virtual nodes carry a [Node.MasterID] back to the actor lane they belong
// to, so a chain of them renders as one continuous vertical line.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings with a Fenwick
// tree in O(E log V) time, fast enough to evaluate many candidate orderings
// during the barycenter sweep or branch-and-bound search in [order].
//
// # Related Packages
//
// [transform] provides cycle breaking, rank assignment, edge subdivision,
// and span-overlap resolution. [order] provides crossing-minimizing
// left-to-right ordering within each rank.
//
// [transform]: github.com/depictlang/depict/pkg/dag/transform
// [order]: github.com/depictlang/depict/pkg/dag/order
package dag
