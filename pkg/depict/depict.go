// Package depict is the engine's single public entry point: it turns
// Depict DSL source text into a rendered diagram, wiring the lexer/parser,
// graph builder, hierarchy/ranking transforms, ordering, constraint
// builder, QP solver, and geometry assembler into one pure call.
package depict

import (
	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/constraint"
	"github.com/depictlang/depict/pkg/dag/order"
	"github.com/depictlang/depict/pkg/dag/transform"
	"github.com/depictlang/depict/pkg/depicterrors"
	"github.com/depictlang/depict/pkg/dsl"
	"github.com/depictlang/depict/pkg/geometry"
	"github.com/depictlang/depict/pkg/graph"
	"github.com/depictlang/depict/pkg/qpsolve"
	"github.com/depictlang/depict/pkg/svgsink"
)

// Emit selects what Render produces.
type Emit int

const (
	// EmitSVG returns a rendered SVG document (the default).
	EmitSVG Emit = iota
	// EmitGeometry skips SVG serialization and returns the assembled
	// geometry.Geometry directly, for callers that render natively.
	EmitGeometry
)

// Options configures a Render call. The zero value is not meaningful; use
// [DefaultOptions].
type Options struct {
	FontSize  float64
	RowHeight float64
	ClassMap  map[string]string
	Emit      Emit
}

// DefaultOptions returns font_size=14, row_height derived as font_size*3,
// no class overrides, emitting SVG.
func DefaultOptions() Options {
	d := config.Default()
	return Options{
		FontSize: d.FontSize,
		Emit:     EmitSVG,
	}
}

// Result is the outcome of a successful Render call. Exactly one of SVG or
// Geometry is populated, depending on Options.Emit.
type Result struct {
	SVG      []byte
	Geometry *geometry.Geometry
}

// Render compiles source into a diagram. It is a pure function of its
// inputs: no I/O, no shared state, safe to call concurrently from multiple
// goroutines provided each call owns its own Options value.
//
// On failure the returned error is always a [depicterrors.RenderError]:
// a [depicterrors.ParseError] for malformed source, a
// [depicterrors.LayoutError] if the constraint system is infeasible or the
// solver fails to converge, or a [depicterrors.InternalError] for a
// precondition violation in the pipeline itself.
func Render(source string, opts Options) (*Result, error) {
	cfg := toConfig(opts)

	prog, err := dsl.Parse(source)
	if err != nil {
		return nil, err
	}

	g, err := graph.Build(prog)
	if err != nil {
		return nil, depicterrors.NewInternal("graph-build", "building graph from parsed program: %v", err)
	}

	transform.Normalize(g.DAG)

	orderer := ordererFor(cfg)
	orders := orderer.OrderRanks(g.DAG)

	widths := make(map[string]float64, g.DAG.NodeCount())
	for _, id := range g.DAG.NodeOrder() {
		n, _ := g.DAG.Node(id)
		if n.IsSynthetic() {
			continue
		}
		widths[id] = constraint.NodeWidth(id, cfg)
	}

	problem := constraint.Build(g.DAG, orders, g.Containment, widths, cfg)

	solved, err := qpsolve.Solve(problem, cfg)
	if err != nil {
		return nil, err
	}

	geo, err := geometry.Assemble(g.DAG, g.Notes, problem, solved, cfg)
	if err != nil {
		return nil, depicterrors.NewInternal("geometry-assemble", "assembling geometry: %v", err)
	}

	if opts.Emit == EmitGeometry {
		return &Result{Geometry: geo}, nil
	}
	return &Result{SVG: svgsink.Render(geo, cfg)}, nil
}

func toConfig(opts Options) config.Config {
	cfg := config.Default()
	if opts.FontSize > 0 {
		cfg.FontSize = opts.FontSize
	}
	if opts.RowHeight > 0 {
		cfg.RowHeight = opts.RowHeight
	}
	for tag, class := range opts.ClassMap {
		cfg.ClassMap[tag] = class
	}
	return cfg.Resolve()
}

func ordererFor(cfg config.Config) order.Orderer {
	switch cfg.OrderingQuality {
	case config.OrderingFast:
		return order.Barycentric{Passes: 1}
	case config.OrderingOptimal:
		return order.OptimalSearch{Threshold: config.OptimalOrderingThreshold, Passes: cfg.Sweeps}
	default:
		return order.Barycentric{Passes: cfg.Sweeps}
	}
}
