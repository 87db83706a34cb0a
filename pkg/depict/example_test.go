package depict_test

import (
	"fmt"

	"github.com/depictlang/depict/pkg/depict"
)

func ExampleRender() {
	result, err := depict.Render("Client Server: request/response\n", depict.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("has svg root:", len(result.SVG) > 0)
	// Output:
	// has svg root: true
}

func ExampleRender_geometry() {
	opts := depict.DefaultOptions()
	opts.Emit = depict.EmitGeometry

	result, err := depict.Render("Browser Server: GET index\n", opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("nodes:", len(result.Geometry.Nodes))
	fmt.Println("edges:", len(result.Geometry.Edges))
	// Output:
	// nodes: 2
	// edges: 1
}
