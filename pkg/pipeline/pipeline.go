// Package pipeline wraps the pure rendering engine in pkg/depict with the
// ambient concerns an embedding application needs: structured logging, a
// correlation ID per call, and observability hooks fired around each stage.
//
// # Architecture
//
// The pipeline runs the same five stages pkg/depict.Render runs internally,
// but calls into the underlying packages directly so it can time each one
// and fire a start/complete hook pair around it:
//
//  1. Parse:  lex/parse source, build the actor/action graph
//  2. Rank:   break cycles, assign ranks, subdivide long edges
//  3. Order:  minimize crossings within each rank
//  4. Solve:  build the constraint system and solve it
//  5. Render: assemble geometry, optionally emit SVG
//
// # Usage
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Source: src})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.SVG
package pipeline

import (
	"time"

	"github.com/depictlang/depict/pkg/depict"
	"github.com/depictlang/depict/pkg/geometry"
)

// Options configures a pipeline run. Source is required; the rest mirror
// depict.Options and carry the same defaults when left zero.
type Options struct {
	Source    string            `json:"source"`
	FontSize  float64           `json:"font_size,omitempty"`
	RowHeight float64           `json:"row_height,omitempty"`
	ClassMap  map[string]string `json:"class_map,omitempty"`
	Emit      depict.Emit       `json:"-"`
}

func (o Options) toDepictOptions() depict.Options {
	opts := depict.DefaultOptions()
	opts.Emit = o.Emit
	if o.FontSize > 0 {
		opts.FontSize = o.FontSize
	}
	if o.RowHeight > 0 {
		opts.RowHeight = o.RowHeight
	}
	if o.ClassMap != nil {
		opts.ClassMap = o.ClassMap
	}
	return opts
}

// Result is the outcome of a pipeline run.
type Result struct {
	SVG           []byte
	Geometry      *geometry.Geometry
	CorrelationID string
	Stats         Stats
}

// Stats carries per-stage timing and size information for one run.
type Stats struct {
	NodeCount  int
	RankCount  int
	Iterations int
	ParseTime  time.Duration
	RankTime   time.Duration
	OrderTime  time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}
