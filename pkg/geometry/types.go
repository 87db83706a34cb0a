package geometry

// Box is an axis-aligned rectangle in SVG coordinates: Top < Bottom (y
// grows downward), Left < Right.
type Box struct {
	Left, Right float64
	Top, Bottom float64
}

func (b Box) Width() float64   { return b.Right - b.Left }
func (b Box) Height() float64  { return b.Bottom - b.Top }
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Point is a single vertex of an edge polyline.
type Point struct{ X, Y float64 }

// NodeBox is a real actor lane's rendered box.
type NodeBox struct {
	ID      string
	Label   string
	Box     Box
	Classes []string
}

// EdgePath is one rendered action, routed through any virtual waypoints
// the edge was subdivided into.
type EdgePath struct {
	From, To string // original actor endpoints, in the action's own direction
	Points   []Point

	// ArrowAtSource is set for back-edges: the arrowhead is drawn at
	// Points[0] instead of the last point, since the path itself always
	// runs from the lower rank to the higher rank regardless of which
	// direction the action's arrow points.
	ArrowAtSource bool

	Classes []string
}

// LabelBox is one placed text label (an action label, a response label,
// or a self-note), with the rectangle it occupies for overlap detection.
type LabelBox struct {
	Text    string
	X, Y    float64
	Anchor  string // "start", "middle", or "end" — text-anchor value
	Rect    Box
	Classes []string
}

// Geometry is the complete assembled scene, ready for the SVG emitter.
type Geometry struct {
	Width, Height float64
	Nodes         []NodeBox
	Edges         []EdgePath
	Labels        []LabelBox
}
