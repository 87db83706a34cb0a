package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/constraint"
	"github.com/depictlang/depict/pkg/dag/order"
	"github.com/depictlang/depict/pkg/dag/transform"
	"github.com/depictlang/depict/pkg/depict"
	"github.com/depictlang/depict/pkg/depicterrors"
	"github.com/depictlang/depict/pkg/dsl"
	"github.com/depictlang/depict/pkg/geometry"
	"github.com/depictlang/depict/pkg/graph"
	"github.com/depictlang/depict/pkg/observability"
	"github.com/depictlang/depict/pkg/qpsolve"
	"github.com/depictlang/depict/pkg/svgsink"
)

// Runner executes the rendering pipeline with logging, correlation IDs, and
// observability hooks layered around it. The Runner is stateless aside from
// its logger, so the same Runner can serve concurrent Execute calls.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner with the given logger. If logger is nil, a
// logger that discards output is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete parse → rank → order → solve → render pipeline.
// Every call is tagged with a fresh correlation ID, attached to log lines and
// passed to every observability hook so concurrent calls can be told apart.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Source == "" {
		return nil, fmt.Errorf("pipeline: source is required")
	}
	corrID := uuid.NewString()
	logger := r.Logger.With("correlation_id", corrID)
	hooks := observability.Pipeline()

	result := &Result{CorrelationID: corrID}
	cfg := opts.toDepictOptions()
	resolved := toConfig(cfg)

	// Stage 1: Parse
	hooks.OnParseStart(ctx, corrID)
	parseStart := time.Now()
	prog, err := dsl.Parse(opts.Source)
	if err != nil {
		result.Stats.ParseTime = time.Since(parseStart)
		hooks.OnParseComplete(ctx, corrID, 0, result.Stats.ParseTime, err)
		return nil, err
	}
	g, err := graph.Build(prog)
	if err != nil {
		wrapped := depicterrors.NewInternal("graph-build", "building graph from parsed program: %v", err)
		result.Stats.ParseTime = time.Since(parseStart)
		hooks.OnParseComplete(ctx, corrID, 0, result.Stats.ParseTime, wrapped)
		return nil, wrapped
	}
	result.Stats.NodeCount = g.DAG.NodeCount()
	result.Stats.ParseTime = time.Since(parseStart)
	hooks.OnParseComplete(ctx, corrID, result.Stats.NodeCount, result.Stats.ParseTime, nil)
	logger.Debug("parsed source", "nodes", result.Stats.NodeCount, "duration", result.Stats.ParseTime)

	// Stage 2: Rank
	hooks.OnRankStart(ctx, corrID, result.Stats.NodeCount)
	rankStart := time.Now()
	transform.Normalize(g.DAG)
	result.Stats.RankCount = g.DAG.MaxRank() + 1
	result.Stats.RankTime = time.Since(rankStart)
	hooks.OnRankComplete(ctx, corrID, result.Stats.RankCount, result.Stats.RankTime, nil)
	logger.Debug("assigned ranks", "ranks", result.Stats.RankCount, "duration", result.Stats.RankTime)

	// Stage 3: Order
	hooks.OnOrderStart(ctx, corrID)
	orderStart := time.Now()
	orders := ordererFor(resolved).OrderRanks(g.DAG)
	result.Stats.OrderTime = time.Since(orderStart)
	hooks.OnOrderComplete(ctx, corrID, result.Stats.OrderTime, nil)
	logger.Debug("ordered ranks", "duration", result.Stats.OrderTime)

	// Stage 4: Solve
	hooks.OnSolveStart(ctx, corrID)
	solveStart := time.Now()
	widths := make(map[string]float64, g.DAG.NodeCount())
	for _, id := range g.DAG.NodeOrder() {
		n, _ := g.DAG.Node(id)
		if n.IsSynthetic() {
			continue
		}
		widths[id] = constraint.NodeWidth(id, resolved)
	}
	problem := constraint.Build(g.DAG, orders, g.Containment, widths, resolved)
	solved, err := qpsolve.Solve(problem, resolved)
	result.Stats.SolveTime = time.Since(solveStart)
	if err != nil {
		hooks.OnSolveComplete(ctx, corrID, 0, result.Stats.SolveTime, err)
		return nil, err
	}
	result.Stats.Iterations = solved.Iterations
	hooks.OnSolveComplete(ctx, corrID, solved.Iterations, result.Stats.SolveTime, nil)
	logger.Debug("solved constraints", "iterations", solved.Iterations, "duration", result.Stats.SolveTime)

	// Stage 5: Render
	hooks.OnRenderStart(ctx, corrID)
	renderStart := time.Now()
	geo, err := geometry.Assemble(g.DAG, g.Notes, problem, solved, resolved)
	if err != nil {
		wrapped := depicterrors.NewInternal("geometry-assemble", "assembling geometry: %v", err)
		result.Stats.RenderTime = time.Since(renderStart)
		hooks.OnRenderComplete(ctx, corrID, 0, result.Stats.RenderTime, wrapped)
		return nil, wrapped
	}

	byteCount := 0
	if opts.Emit == depict.EmitGeometry {
		result.Geometry = geo
	} else {
		result.SVG = svgsink.Render(geo, resolved)
		byteCount = len(result.SVG)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, corrID, byteCount, result.Stats.RenderTime, nil)
	logger.Info("rendered diagram",
		"nodes", result.Stats.NodeCount,
		"bytes", byteCount,
		"total_duration", result.Stats.ParseTime+result.Stats.RankTime+result.Stats.OrderTime+result.Stats.SolveTime+result.Stats.RenderTime)

	return result, nil
}

// toConfig mirrors pkg/depict's unexported option merge so the pipeline can
// share cfg.OrderingQuality and friends without depict exposing its
// resolved config publicly.
func toConfig(opts depict.Options) config.Config {
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
