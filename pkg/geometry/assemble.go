package geometry

import (
	"fmt"
	"sort"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/constraint"
	"github.com/depictlang/depict/pkg/dag"
	"github.com/depictlang/depict/pkg/dag/transform"
	"github.com/depictlang/depict/pkg/graph"
	"github.com/depictlang/depict/pkg/qpsolve"
)

// Assemble turns a ranked, ordered, and solved graph into concrete shapes.
// g must have already gone through transform.Normalize (cycles broken,
// ranks assigned, long edges subdivided) and p/result must be the Problem
// and Result Build/Solve produced for it. notes carries the self-directed
// actions a graph.Build call collected, keyed by actor ID; pass nil if
// there are none.
func Assemble(g *dag.DAG, notes map[string][]graph.Note, p *constraint.Problem, result *qpsolve.Result, cfg config.Config) (*Geometry, error) {
	geo := &Geometry{}

	for _, id := range g.NodeOrder() {
		n, _ := g.Node(id)
		if n.IsSynthetic() {
			continue
		}
		box := nodeBoxFor(g, p, result, cfg, id)
		geo.Nodes = append(geo.Nodes, NodeBox{
			ID:      id,
			Label:   id,
			Box:     box,
			Classes: []string{cfg.Class("actor")},
		})
	}

	boxByID := make(map[string]Box, len(geo.Nodes))
	for _, nb := range geo.Nodes {
		boxByID[nb.ID] = nb.Box
	}

	for _, e := range g.Edges() {
		if _, ok := e.Meta[graph.MetaLabel]; !ok {
			continue
		}
		path, err := tracePath(g, p, result, cfg, e, boxByID)
		if err != nil {
			return nil, err
		}
		geo.Edges = append(geo.Edges, path)

		if lbl := labelFor(path, e, graph.MetaLabel, cfg.Class("edge-label"), false, cfg); lbl != nil {
			geo.Labels = append(geo.Labels, *lbl)
		}
		if responseText, _ := e.Meta[graph.MetaResponse].(string); responseText != "" {
			respPath := responsePath(path, cfg)
			geo.Edges = append(geo.Edges, respPath)
			if lbl := labelFor(respPath, e, graph.MetaResponse, cfg.Class("response"), true, cfg); lbl != nil {
				geo.Labels = append(geo.Labels, *lbl)
			}
		}
	}

	appendNotes(geo, boxByID, g.NodeOrder(), notes, cfg)
	nudgeOverlappingLabels(geo.Labels, cfg.LabelGap)

	geo.Width, geo.Height = bounds(geo)
	return geo, nil
}

func nodeBoxFor(g *dag.DAG, p *constraint.Problem, result *qpsolve.Result, cfg config.Config, id string) Box {
	n, _ := g.Node(id)
	x := p.X(id, result.X)
	y := p.RankY[n.Rank]
	width := p.Widths[id]
	height := constraint.NodeHeight(cfg)
	return Box{
		Left:   x - width/2,
		Right:  x + width/2,
		Top:    y - height/2,
		Bottom: y + height/2,
	}
}

// tracePath reconstructs the full polyline for a logical action from its
// chain-terminus edge e, walking backward through any virtual vertices
// Subdivide inserted. The physical edge direction always runs from lower
// rank to higher rank (even for a reversed back-edge); ArrowAtSource flips
// the arrowhead to the physical start for those.
func tracePath(g *dag.DAG, p *constraint.Problem, result *qpsolve.Result, cfg config.Config, e dag.Edge, boxByID map[string]Box) (EdgePath, error) {
	chain := []string{e.From}
	cur := e.From
	for {
		n, ok := g.Node(cur)
		if !ok || !n.IsVirtual() {
			break
		}
		parents := g.Parents(cur)
		if len(parents) == 0 {
			return EdgePath{}, fmt.Errorf("trace edge to %s: virtual node %s has no parent", e.To, cur)
		}
		cur = parents[0]
		chain = append(chain, cur)
	}
	reverse(chain)
	chain = append(chain, e.To)

	points := make([]Point, len(chain))
	for i, id := range chain {
		n, _ := g.Node(id)
		x := p.X(id, result.X)
		y := p.RankY[n.Rank]
		points[i] = Point{X: x, Y: y}
	}
	if box, ok := boxByID[chain[0]]; ok {
		points[0] = Point{X: box.CenterX(), Y: box.Bottom}
	}
	if box, ok := boxByID[chain[len(chain)-1]]; ok {
		points[len(points)-1] = Point{X: box.CenterX(), Y: box.Top}
	}

	backEdge, _ := e.Meta[transform.MetaBackEdge].(bool)
	from, to := chain[0], chain[len(chain)-1]
	if backEdge {
		from, to = to, from
	}

	classes := []string{cfg.Class("edge")}
	if backEdge {
		classes = append(classes, cfg.Class("back-edge"))
	}

	return EdgePath{
		From:          from,
		To:            to,
		Points:        points,
		ArrowAtSource: backEdge,
		Classes:       classes,
	}, nil
}

// responsePath builds the reverse arrow for a response: a real arrow drawn
// back along the same physical line, not just a label. It reuses the
// action path's points, reversed, and flips ArrowAtSource so the arrowhead
// lands at the opposite end from the action's own arrow.
func responsePath(path EdgePath, cfg config.Config) EdgePath {
	points := make([]Point, len(path.Points))
	for i, p := range path.Points {
		points[len(points)-1-i] = p
	}
	classes := append([]string{cfg.Class("response")}, path.Classes...)
	return EdgePath{
		From:          path.To,
		To:            path.From,
		Points:        points,
		ArrowAtSource: !path.ArrowAtSource,
		Classes:       classes,
	}
}

func reverse(ids []string) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// labelFor places a text label at the midpoint of path's longest vertical
// segment, offset horizontally by cfg.LabelPad so it clears the polyline.
// A response label sits on the opposite side from its action label.
func labelFor(path EdgePath, e dag.Edge, metaKey, class string, oppositeSide bool, cfg config.Config) *LabelBox {
	text, _ := e.Meta[metaKey].(string)
	if text == "" {
		return nil
	}

	bestIdx, bestLen := 0, -1.0
	for i := 0; i+1 < len(path.Points); i++ {
		d := path.Points[i+1].Y - path.Points[i].Y
		if d < 0 {
			d = -d
		}
		if d > bestLen {
			bestLen, bestIdx = d, i
		}
	}
	a, b := path.Points[bestIdx], path.Points[bestIdx+1]
	midX := (a.X + b.X) / 2
	midY := (a.Y + b.Y) / 2

	width := constraint.NodeWidth(text, cfg)
	height := constraint.NodeHeight(cfg)

	anchor := "start"
	x := midX + cfg.LabelPad
	left := x
	if oppositeSide {
		anchor = "end"
		x = midX - cfg.LabelPad
		left = x - width
	}

	return &LabelBox{
		Text:   text,
		X:      x,
		Y:      midY,
		Anchor: anchor,
		Rect: Box{
			Left:   left,
			Right:  left + width,
			Top:    midY - height/2,
			Bottom: midY + height/2,
		},
		Classes: []string{class},
	}
}

// appendNotes places one label per self-directed action beside its actor's
// box, stacked top to bottom.
func appendNotes(geo *Geometry, boxByID map[string]Box, order []string, notes map[string][]graph.Note, cfg config.Config) {
	if len(notes) == 0 {
		return
	}
	lineHeight := constraint.NodeHeight(cfg)
	for _, id := range order {
		box, ok := boxByID[id]
		if !ok {
			continue
		}
		for i, note := range notes[id] {
			text := note.Label
			if note.HasResponse {
				text = note.Label + " / " + note.Response
			}
			if text == "" {
				continue
			}
			width := constraint.NodeWidth(text, cfg)
			y := box.CenterY() + float64(i)*lineHeight
			x := box.Right + cfg.LabelPad
			geo.Labels = append(geo.Labels, LabelBox{
				Text:   text,
				X:      x,
				Y:      y,
				Anchor: "start",
				Rect: Box{
					Left:   x,
					Right:  x + width,
					Top:    y - lineHeight/2,
					Bottom: y + lineHeight/2,
				},
				Classes: []string{cfg.Class("label")},
			})
		}
	}
}

// nudgeOverlappingLabels pushes horizontally overlapping labels on the same
// rank apart by at least gap, sweeping left to right.
func nudgeOverlappingLabels(labels []LabelBox, gap float64) {
	byRow := make(map[float64][]int)
	for i, l := range labels {
		byRow[l.Y] = append(byRow[l.Y], i)
	}
	for _, idxs := range byRow {
		sort.Slice(idxs, func(a, b int) bool { return labels[idxs[a]].Rect.Left < labels[idxs[b]].Rect.Left })
		for k := 1; k < len(idxs); k++ {
			prev := &labels[idxs[k-1]]
			cur := &labels[idxs[k]]
			minLeft := prev.Rect.Right + gap
			if cur.Rect.Left < minLeft {
				shift := minLeft - cur.Rect.Left
				cur.X += shift
				cur.Rect.Left += shift
				cur.Rect.Right += shift
			}
		}
	}
}

func bounds(geo *Geometry) (width, height float64) {
	for _, n := range geo.Nodes {
		width = max(width, n.Box.Right)
		height = max(height, n.Box.Bottom)
	}
	for _, l := range geo.Labels {
		width = max(width, l.Rect.Right)
		height = max(height, l.Rect.Bottom)
	}
	return width, height
}
