package dag_test

import (
	"fmt"

	"github.com/depictlang/depict/pkg/dag"
)

func ExampleDAG_basic() {
	// A three-step call chain: client → server → database
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "client", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "server", Rank: 1})
	_ = g.AddNode(dag.Node{ID: "database", Rank: 2})
	_ = g.AddEdge(dag.Edge{From: "client", To: "server"})
	_ = g.AddEdge(dag.Edge{From: "server", To: "database"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Ranks:", g.RankCount())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Ranks: 3
}

func ExampleDAG_traversal() {
	// client calls both auth and cache
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "client", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "auth", Rank: 1})
	_ = g.AddNode(dag.Node{ID: "cache", Rank: 1})
	_ = g.AddEdge(dag.Edge{From: "client", To: "auth"})
	_ = g.AddEdge(dag.Edge{From: "client", To: "cache"})

	fmt.Println("Children of client:", g.Children("client"))
	fmt.Println("Parents of auth:", g.Parents("auth"))
	fmt.Println("Out-degree of client:", g.OutDegree("client"))
	// Output:
	// Children of client: [auth cache]
	// Parents of auth: [client]
	// Out-degree of client: 2
}

func ExampleDAG_Sources() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "web", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "mobile", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "api", Rank: 1})
	_ = g.AddEdge(dag.Edge{From: "web", To: "api"})
	_ = g.AddEdge(dag.Edge{From: "mobile", To: "api"})

	sources := g.Sources()
	fmt.Println("Source count:", len(sources))
	// Output:
	// Source count: 2
}

func ExampleDAG_metadata() {
	g := dag.New(dag.Metadata{"title": "checkout flow"})
	_ = g.AddNode(dag.Node{
		ID:   "api",
		Rank: 0,
		Meta: dag.Metadata{"class": "service"},
	})

	node, _ := g.Node("api")
	fmt.Println("Node:", node.ID)
	fmt.Println("Class:", node.Meta["class"])
	// Output:
	// Node: api
	// Class: service
}

func ExampleNode_synthetic() {
	regular := dag.Node{ID: "api", Kind: dag.NodeKindRegular}
	virtual := dag.Node{ID: "api_v_1", Kind: dag.NodeKindVirtual, MasterID: "api"}
	auxiliary := dag.Node{ID: "Sep_1_a_b", Kind: dag.NodeKindAuxiliary}

	fmt.Println("Regular is synthetic:", regular.IsSynthetic())
	fmt.Println("Virtual is synthetic:", virtual.IsSynthetic())
	fmt.Println("Virtual effective ID:", virtual.EffectiveID())
	fmt.Println("Auxiliary is synthetic:", auxiliary.IsSynthetic())
	// Output:
	// Regular is synthetic: false
	// Virtual is synthetic: true
	// Virtual effective ID: api
	// Auxiliary is synthetic: true
}

func ExampleCountLayerCrossings() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "a", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "b", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "x", Rank: 1})
	_ = g.AddNode(dag.Node{ID: "y", Rank: 1})

	// a→y, b→x cross when a is left of b
	_ = g.AddEdge(dag.Edge{From: "a", To: "y"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "x"})

	upper := []string{"a", "b"}
	lower := []string{"x", "y"}
	fmt.Println("Crossings:", dag.CountLayerCrossings(g, upper, lower))

	upper = []string{"b", "a"}
	fmt.Println("After reorder:", dag.CountLayerCrossings(g, upper, lower))
	// Output:
	// Crossings: 1
	// After reorder: 0
}
