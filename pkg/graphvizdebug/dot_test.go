package graphvizdebug

import (
	"strings"
	"testing"

	"github.com/depictlang/depict/pkg/dag"
)

func buildTestDAG(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	if err := g.AddNode(dag.Node{ID: "Client", Rank: 0, Meta: dag.Metadata{"label": "browser"}}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(dag.Node{ID: "Server", Rank: 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(dag.Node{ID: "v1", Rank: 1, Kind: dag.NodeKindVirtual, MasterID: "Client"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(dag.Edge{From: "Client", To: "v1", Meta: dag.Metadata{"label": "request"}}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(dag.Edge{From: "v1", To: "Server"}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOTIncludesNodesAndEdges(t *testing.T) {
	g := buildTestDAG(t)
	dot := ToDOT(g, Options{})

	for _, want := range []string{"digraph G", `"Client"`, `"Server"`, `"Client" -> "v1"`, `"v1" -> "Server"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in output:\n%s", want, dot)
		}
	}
}

func TestToDOTMarksVirtualNodesDashed(t *testing.T) {
	g := buildTestDAG(t)
	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() should mark virtual nodes with a dashed style")
	}
}

func TestToDOTDetailedIncludesRankAndMeta(t *testing.T) {
	g := buildTestDAG(t)
	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, "rank: 0") {
		t.Error("ToDOT(Detailed) should include rank numbers in labels")
	}
	if !strings.Contains(dot, "label: browser") {
		t.Error("ToDOT(Detailed) should include node metadata in labels")
	}
}

func TestNormalizeViewBoxRewritesDimensions(t *testing.T) {
	svg := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 200.00">`)
	got := normalizeViewBox(svg)

	if !strings.Contains(string(got), `viewBox="0 0 100.00 200.00"`) {
		t.Errorf("normalizeViewBox() = %s, want a normalized viewBox", got)
	}
	if !strings.Contains(string(got), `width="100"`) || !strings.Contains(string(got), `height="200"`) {
		t.Errorf("normalizeViewBox() = %s, want width/height attributes matching the viewBox", got)
	}
}

func TestNormalizeViewBoxLeavesUnmatchedInputAlone(t *testing.T) {
	svg := []byte(`<svg>no viewbox here</svg>`)
	got := normalizeViewBox(svg)
	if string(got) != string(svg) {
		t.Errorf("normalizeViewBox() = %s, want input unchanged", got)
	}
}
