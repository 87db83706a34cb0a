package geometry_test

import (
	"fmt"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/constraint"
	"github.com/depictlang/depict/pkg/dag"
	"github.com/depictlang/depict/pkg/dag/order"
	"github.com/depictlang/depict/pkg/dag/transform"
	"github.com/depictlang/depict/pkg/geometry"
	"github.com/depictlang/depict/pkg/graph"
	"github.com/depictlang/depict/pkg/qpsolve"
)

func ExampleAssemble() {
	cfg := config.Default().Resolve()

	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "browser"})
	_ = g.AddNode(dag.Node{ID: "server"})
	_ = g.AddEdge(dag.Edge{From: "browser", To: "server", Meta: dag.Metadata{graph.MetaLabel: "GET /"}})

	transform.Normalize(g)
	orders := order.Barycentric{Passes: cfg.Sweeps}.OrderRanks(g)

	widths := map[string]float64{
		"browser": constraint.NodeWidth("browser", cfg),
		"server":  constraint.NodeWidth("server", cfg),
	}
	problem := constraint.Build(g, orders, nil, widths, cfg)
	result, err := qpsolve.Solve(problem, cfg)
	if err != nil {
		fmt.Println("solve error:", err)
		return
	}

	geo, err := geometry.Assemble(g, nil, problem, result, cfg)
	if err != nil {
		fmt.Println("assemble error:", err)
		return
	}

	fmt.Println("Nodes:", len(geo.Nodes))
	fmt.Println("Edges:", len(geo.Edges))
	fmt.Println("Labels:", len(geo.Labels))
	// Output:
	// Nodes: 2
	// Edges: 1
	// Labels: 1
}
