package svgsink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/geometry"
)

// Render writes geo as a single SVG document, viewBox padded by cfg.Margin
// on every side. Elements are emitted in z-order: node boxes, then edge
// polylines, then arrowheads, then labels.
func Render(geo *geometry.Geometry, cfg config.Config) []byte {
	margin := cfg.Margin
	width := geo.Width + 2*margin
	height := geo.Height + 2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	renderDefs(&buf, cfg)

	fmt.Fprintf(&buf, `<g transform="translate(%.1f %.1f)">`+"\n", margin, margin)
	for _, n := range geo.Nodes {
		renderNode(&buf, n, cfg)
	}
	for _, e := range geo.Edges {
		renderEdge(&buf, e, cfg)
	}
	for _, e := range geo.Edges {
		renderArrowhead(&buf, e, cfg)
	}
	for _, l := range geo.Labels {
		renderLabel(&buf, l, cfg)
	}
	buf.WriteString("</g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, cfg config.Config) {
	buf.WriteString("<defs>\n")
	fmt.Fprintf(buf, "  <style>.%s { font-size: %.1fpx; font-family: sans-serif; }</style>\n",
		cfg.Class("label"), cfg.FontSize)
	buf.WriteString("</defs>\n")
}

func renderNode(buf *bytes.Buffer, n geometry.NodeBox, cfg config.Config) {
	fmt.Fprintf(buf, `<rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" class="%s %s"></rect>`+"\n",
		escape(n.ID), n.Box.Left, n.Box.Top, n.Box.Width(), n.Box.Height(),
		cfg.Class("actor"), strings.Join(n.Classes, " "))
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" class="%s">%s</text>`+"\n",
		n.Box.CenterX(), n.Box.CenterY(), cfg.Class("node-label"), escape(n.Label))
}

func renderEdge(buf *bytes.Buffer, e geometry.EdgePath, cfg config.Config) {
	if len(e.Points) == 0 {
		return
	}
	var path strings.Builder
	fmt.Fprintf(&path, "M %.1f %.1f", e.Points[0].X, e.Points[0].Y)
	for _, p := range e.Points[1:] {
		fmt.Fprintf(&path, " L %.1f %.1f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `<path d="%s" fill="none" class="%s %s"></path>`+"\n",
		path.String(), cfg.Class("edge"), strings.Join(e.Classes, " "))
}

// renderArrowhead draws a triangle marker at the logical target end of the
// edge: the last point, unless ArrowAtSource flips it to the first (a
// reversed back-edge).
func renderArrowhead(buf *bytes.Buffer, e geometry.EdgePath, cfg config.Config) {
	if len(e.Points) < 2 {
		return
	}
	tip, from := e.Points[len(e.Points)-1], e.Points[len(e.Points)-2]
	if e.ArrowAtSource {
		tip, from = e.Points[0], e.Points[1]
	}

	dx, dy := tip.X-from.X, tip.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	size := cfg.Arrow
	// Perpendicular unit vector, for the base corners of the triangle.
	px, py := -uy, ux

	baseX, baseY := tip.X-ux*size, tip.Y-uy*size
	leftX, leftY := baseX+px*size/2, baseY+py*size/2
	rightX, rightY := baseX-px*size/2, baseY-py*size/2

	fmt.Fprintf(buf, `<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" class="%s %s"></polygon>`+"\n",
		tip.X, tip.Y, leftX, leftY, rightX, rightY,
		cfg.Class("arrowhead"), strings.Join(e.Classes, " "))
}

func renderLabel(buf *bytes.Buffer, l geometry.LabelBox, cfg config.Config) {
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="%s" dominant-baseline="middle" class="%s %s">%s</text>`+"\n",
		l.X, l.Y, l.Anchor, cfg.Class("label"), strings.Join(l.Classes, " "), escape(l.Text))
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
