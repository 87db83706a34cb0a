package geometry

import (
	"slices"
	"testing"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/constraint"
	"github.com/depictlang/depict/pkg/dag"
	"github.com/depictlang/depict/pkg/dag/order"
	"github.com/depictlang/depict/pkg/dag/transform"
	"github.com/depictlang/depict/pkg/graph"
	"github.com/depictlang/depict/pkg/qpsolve"
)

// buildChainGeometry lays out client -> api -> db, solves it, and returns
// the assembled scene, for tests that only care about shape rather than
// exact pixel values.
func buildChainGeometry(t *testing.T) (*dag.DAG, *Geometry) {
	t.Helper()
	cfg := config.Default().Resolve()

	g := dag.New(nil)
	must(t, g.AddNode(dag.Node{ID: "client"}))
	must(t, g.AddNode(dag.Node{ID: "api"}))
	must(t, g.AddNode(dag.Node{ID: "db"}))
	must(t, g.AddEdge(dag.Edge{From: "client", To: "api", Meta: dag.Metadata{graph.MetaLabel: "request"}}))
	must(t, g.AddEdge(dag.Edge{From: "api", To: "db", Meta: dag.Metadata{graph.MetaLabel: "query", graph.MetaResponse: "rows", graph.MetaHasResponse: true}}))

	transform.Normalize(g)

	orders := order.Barycentric{Passes: cfg.Sweeps}.OrderRanks(g)

	widths := make(map[string]float64)
	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		if !n.IsSynthetic() {
			widths[id] = constraint.NodeWidth(id, cfg)
		}
	}

	problem := constraint.Build(g, orders, nil, widths, cfg)
	result, err := qpsolve.Solve(problem, cfg)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	geo, err := Assemble(g, nil, problem, result, cfg)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return g, geo
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssemble_OneBoxPerRealActor(t *testing.T) {
	_, geo := buildChainGeometry(t)
	if len(geo.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(geo.Nodes))
	}
	seen := make(map[string]bool)
	for _, n := range geo.Nodes {
		seen[n.ID] = true
	}
	for _, want := range []string{"client", "api", "db"} {
		if !seen[want] {
			t.Errorf("missing node box for %q", want)
		}
	}
}

func TestAssemble_EdgeCountMatchesActions(t *testing.T) {
	_, geo := buildChainGeometry(t)
	// client->api, api->db, plus one reverse arrow for api->db's "rows" response.
	if len(geo.Edges) != 3 {
		t.Fatalf("len(Edges) = %d, want 3", len(geo.Edges))
	}
}

func TestAssemble_EdgePathEndpointsMatchNodeBoxes(t *testing.T) {
	cfg := config.Default().Resolve()
	_, geo := buildChainGeometry(t)
	boxes := make(map[string]Box)
	for _, n := range geo.Nodes {
		boxes[n.ID] = n.Box
	}
	responseClass := cfg.Class("response")
	for _, e := range geo.Edges {
		if slices.Contains(e.Classes, responseClass) {
			continue // a response arrow runs physically backward, checked separately below
		}
		if e.From != "client" && e.From != "api" {
			t.Errorf("edge From = %q, want client or api", e.From)
		}
		start := e.Points[0]
		srcBox := boxes[e.From]
		if start.Y != srcBox.Bottom {
			t.Errorf("edge %s->%s starts at Y=%v, want source box bottom %v", e.From, e.To, start.Y, srcBox.Bottom)
		}
		end := e.Points[len(e.Points)-1]
		dstBox := boxes[e.To]
		if end.Y != dstBox.Top {
			t.Errorf("edge %s->%s ends at Y=%v, want destination box top %v", e.From, e.To, end.Y, dstBox.Top)
		}
	}
}

func TestAssemble_ResponseEmitsReverseArrow(t *testing.T) {
	cfg := config.Default().Resolve()
	_, geo := buildChainGeometry(t)
	responseClass := cfg.Class("response")

	var resp *EdgePath
	for i := range geo.Edges {
		if slices.Contains(geo.Edges[i].Classes, responseClass) {
			resp = &geo.Edges[i]
		}
	}
	if resp == nil {
		t.Fatal("expected a reverse arrow for the response-bearing action")
	}
	if resp.From != "db" || resp.To != "api" {
		t.Errorf("response edge direction = %s->%s, want db->api", resp.From, resp.To)
	}
	if !resp.ArrowAtSource {
		t.Error("response edge should draw its arrowhead at the physical start")
	}
}

func TestAssemble_LabelsIncludeActionAndResponse(t *testing.T) {
	_, geo := buildChainGeometry(t)
	var texts []string
	for _, l := range geo.Labels {
		texts = append(texts, l.Text)
	}
	wantAll := map[string]bool{"request": false, "query": false, "rows": false}
	for _, text := range texts {
		if _, ok := wantAll[text]; ok {
			wantAll[text] = true
		}
	}
	for text, found := range wantAll {
		if !found {
			t.Errorf("missing label %q among %v", text, texts)
		}
	}
}

func TestAssemble_BackEdgeFlipsArrowToSource(t *testing.T) {
	cfg := config.Default().Resolve()

	g := dag.New(nil)
	must(t, g.AddNode(dag.Node{ID: "a"}))
	must(t, g.AddNode(dag.Node{ID: "b"}))
	must(t, g.AddEdge(dag.Edge{From: "a", To: "b", Meta: dag.Metadata{graph.MetaLabel: "call"}}))
	must(t, g.AddEdge(dag.Edge{From: "b", To: "a", Meta: dag.Metadata{graph.MetaLabel: "callback"}}))

	transform.Normalize(g)
	orders := order.Barycentric{Passes: cfg.Sweeps}.OrderRanks(g)

	widths := make(map[string]float64)
	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		if !n.IsSynthetic() {
			widths[id] = constraint.NodeWidth(id, cfg)
		}
	}
	problem := constraint.Build(g, orders, nil, widths, cfg)
	result, err := qpsolve.Solve(problem, cfg)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	geo, err := Assemble(g, nil, problem, result, cfg)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	var sawBackEdge bool
	for _, e := range geo.Edges {
		if e.ArrowAtSource {
			sawBackEdge = true
			if e.From != "b" || e.To != "a" {
				t.Errorf("back-edge logical direction = %s->%s, want b->a", e.From, e.To)
			}
		}
	}
	if !sawBackEdge {
		t.Error("expected one back-edge with ArrowAtSource set")
	}
}

func TestAssemble_NotesPlacedBesideActorBox(t *testing.T) {
	cfg := config.Default().Resolve()

	g := dag.New(nil)
	must(t, g.AddNode(dag.Node{ID: "worker"}))
	transform.Normalize(g)
	orders := order.Barycentric{Passes: cfg.Sweeps}.OrderRanks(g)
	widths := map[string]float64{"worker": constraint.NodeWidth("worker", cfg)}
	problem := constraint.Build(g, orders, nil, widths, cfg)
	result, err := qpsolve.Solve(problem, cfg)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	notes := map[string][]graph.Note{
		"worker": {{Label: "polling queue"}},
	}
	geo, err := Assemble(g, notes, problem, result, cfg)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(geo.Labels) != 1 {
		t.Fatalf("len(Labels) = %d, want 1", len(geo.Labels))
	}
	if geo.Labels[0].Text != "polling queue" {
		t.Errorf("Labels[0].Text = %q, want %q", geo.Labels[0].Text, "polling queue")
	}
}
