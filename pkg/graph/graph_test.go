package graph

import (
	"testing"

	"github.com/depictlang/depict/pkg/dsl"
)

func ident(name string) dsl.Ident { return dsl.Ident{Name: name} }

func TestBuild_DeclaresActorsOnce(t *testing.T) {
	prog := &dsl.Program{Statements: []dsl.Statement{
		{Actors: []dsl.Ident{ident("A"), ident("B")}, Actions: []dsl.Action{{Label: "x"}}, Parent: -1},
		{Actors: []dsl.Ident{ident("B"), ident("A")}, Actions: []dsl.Action{{Label: "y"}}, Parent: -1},
	}}

	g, err := Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.DAG.NodeCount(); got != 2 {
		t.Errorf("NodeIDs = %d, want 2 (A declared once, B declared once)", got)
	}
}

func TestBuild_ChainEdgesPerAction(t *testing.T) {
	prog := &dsl.Program{Statements: []dsl.Statement{
		{
			Actors:  []dsl.Ident{ident("A"), ident("B"), ident("C")},
			Actions: []dsl.Action{{Label: "x"}, {Label: "y"}},
			Parent:  -1,
		},
	}}

	g, err := Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := len(g.DAG.Edges()); got != 4 {
		t.Fatalf("Edges = %d, want 4 (A→B, B→C for each of x, y)", got)
	}
	for _, e := range g.DAG.Edges() {
		if e.From == "A" && e.To != "B" || e.From == "B" && e.To != "C" {
			t.Errorf("unexpected edge %s→%s", e.From, e.To)
		}
	}
}

func TestBuild_ResponseAttachesToSameEdge(t *testing.T) {
	prog := &dsl.Program{Statements: []dsl.Statement{
		{
			Actors:  []dsl.Ident{ident("A"), ident("B")},
			Actions: []dsl.Action{{Label: "req", Response: "ok", HasResponse: true}},
			Parent:  -1,
		},
	}}

	g, err := Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	edges := g.DAG.Edges()
	if len(edges) != 1 {
		t.Fatalf("Edges = %d, want 1", len(edges))
	}
	if resp, _ := edges[0].Meta[MetaResponse].(string); resp != "ok" {
		t.Errorf("Meta[%q] = %q, want %q", MetaResponse, resp, "ok")
	}
}

func TestBuild_SingleActorStatementBecomesNote(t *testing.T) {
	prog := &dsl.Program{Statements: []dsl.Statement{
		{Actors: []dsl.Ident{ident("A")}, Actions: []dsl.Action{{Label: "cleans up"}}, Parent: -1},
	}}

	g, err := Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.DAG.Edges()) != 0 {
		t.Errorf("Edges = %d, want 0 (single-actor statements never produce edges)", len(g.DAG.Edges()))
	}
	notes := g.Notes["A"]
	if len(notes) != 1 || notes[0].Label != "cleans up" {
		t.Errorf("Notes[A] = %v, want one note %q", notes, "cleans up")
	}
}

func TestBuild_Containment(t *testing.T) {
	prog := &dsl.Program{Statements: []dsl.Statement{
		{Actors: []dsl.Ident{ident("A"), ident("B")}, Actions: []dsl.Action{{Label: "call"}}, Parent: -1},
		{Actors: []dsl.Ident{ident("B"), ident("C")}, Actions: []dsl.Action{{Label: "nested"}}, Level: 1, Parent: 0},
	}}

	g, err := Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	children := g.Containment["A"]
	if len(children) != 2 {
		t.Fatalf("Containment[A] = %v, want [B C]", children)
	}
}

func TestBuild_UnknownParentIsIgnored(t *testing.T) {
	prog := &dsl.Program{Statements: []dsl.Statement{
		{Actors: []dsl.Ident{ident("A"), ident("B")}, Actions: []dsl.Action{{Label: "call"}}, Parent: 5},
	}}

	g, err := Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Containment) != 0 {
		t.Errorf("Containment = %v, want empty for an out-of-range parent", g.Containment)
	}
}

func TestBuild_EmptyProgram(t *testing.T) {
	g, err := Build(&dsl.Program{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.DAG.NodeCount() != 0 || len(g.DAG.Edges()) != 0 {
		t.Errorf("expected empty graph, got %d nodes, %d edges", g.DAG.NodeCount(), len(g.DAG.Edges()))
	}
}
