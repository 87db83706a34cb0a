// Package graphvizdebug renders the internal actor/action DAG to Graphviz
// DOT and SVG, independent of the sparse QP solver and SVG emitter. It
// exists to inspect rank assignment without running the solver at all.
// The DOT output carries no within-rank order; Graphviz arranges each rank
// with its own layout.
package graphvizdebug

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/depictlang/depict/pkg/dag"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes rank numbers and metadata in node labels. When
	// false, only the node ID (or EffectiveID for virtual nodes) is shown.
	Detailed bool
}

// ToDOT converts a DAG to Graphviz DOT, one subgraph rank per cluster so
// Graphviz's own layout roughly tracks the rank assignment produced by
// pkg/dag/transform. Virtual nodes (edge subdivision waypoints) are drawn
// dashed and grey; auxiliary nodes (separator beams) are drawn dotted.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n\n")

	for rank := 0; rank <= g.MaxRank(); rank++ {
		nodes := g.NodesInRank(rank)
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph rank_%d {\n    rank=same;\n", rank)
		for _, n := range nodes {
			label := fmtLabel(*n, opts.Detailed)
			attrs := fmtAttrs(*n, label)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.EffectiveID()
	}

	parts := []string{fmt.Sprintf("rank: %d", n.Rank)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.IsVirtual():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case n.IsAuxiliary():
		attrs = append(attrs, "style=\"rounded,filled,dotted\"", "fillcolor=lightyellow", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz's own layout engine.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
