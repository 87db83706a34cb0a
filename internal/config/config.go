// Package config holds every tunable constant the depict engine uses.
//
// Following the teacher pipeline's "Default Values - Single Source of
// Truth" convention, every stage of the rendering pipeline takes a Config
// value instead of reading package-level constants, so the engine carries
// no global state (spec.md §9 "Global state").
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config bundles every constant that affects layout or rendering geometry.
// The zero value is not meaningful — use Default to obtain a usable Config.
type Config struct {
	// FontSize is the base text size, in CSS pixels.
	FontSize float64
	// RowHeight is the vertical distance between adjacent ranks. When zero,
	// Resolve derives it as FontSize * RowHeightFactor.
	RowHeight float64
	// RowHeightFactor derives RowHeight from FontSize when RowHeight is unset.
	RowHeightFactor float64
	// Gap is the minimum horizontal gutter between adjacent vertices in a rank.
	Gap float64
	// Margin is the minimum distance from the leftmost/topmost vertex to the
	// viewBox edge.
	Margin float64
	// Arrow is the arrowhead marker size, in CSS pixels.
	Arrow float64
	// LabelPad is the horizontal offset between an edge polyline and its label.
	LabelPad float64
	// LabelGap is the minimum horizontal gap enforced between overlapping
	// same-rank labels after a nudge.
	LabelGap float64
	// Sweeps is the maximum number of barycenter passes the ordering stage runs.
	Sweeps int

	// WStraight weights the edge-straightness quadratic term.
	WStraight float64
	// WStraightVirtual weights straightness between two virtual vertices,
	// larger than WStraight so long edges prefer vertical runs.
	WStraightVirtual float64
	// WCenter weights the parent-child centering quadratic term.
	WCenter float64
	// AnchorEpsilon weights the weak anchor-pull term that keeps the QP bounded.
	AnchorEpsilon float64

	// SolverTolerance is the primal/dual convergence tolerance for the QP solver.
	SolverTolerance float64
	// SolverMaxIterations caps the number of ADMM iterations.
	SolverMaxIterations int
	// SolverRho is the ADMM penalty parameter.
	SolverRho float64
	// CoordinateRounding is the pixel increment coordinates are rounded to
	// after solving (spec.md §4.7: "0.5 pixel increments").
	CoordinateRounding float64

	// EnableSeparators names beam-node insertion for unavoidable tangles
	// (ResolveSpanOverlaps). Nothing reads it: transform.Normalize always
	// runs ResolveSpanOverlaps, whatever its value.
	EnableSeparators bool
	// OrderingQuality selects the ordering algorithm's speed/quality trade-off.
	OrderingQuality OrderingQuality

	// ClassMap maps semantic style tags to CSS class names emitted in the SVG.
	ClassMap map[string]string
}

// OrderingQuality controls the ordering stage's algorithm choice.
type OrderingQuality int

const (
	// OrderingFast runs a single barycenter pass.
	OrderingFast OrderingQuality = iota
	// OrderingBalanced runs the full barycenter sweep schedule (default).
	OrderingBalanced
	// OrderingOptimal branch-and-bounds over permutations for small rows,
	// falling back to the barycenter heuristic above the exhaustive threshold.
	OrderingOptimal
)

// OptimalOrderingThreshold is the largest row width OrderingOptimal will
// search exhaustively; larger rows fall back to the barycenter heuristic.
const OptimalOrderingThreshold = 10

// Default returns the engine's default configuration. font_size defaults to
// 14 per spec.md §4.10; row_height defaults to font_size * 3.
func Default() Config {
	c := Config{
		FontSize:        14,
		RowHeightFactor: 3,
		Gap:             24,
		Margin:          16,
		Arrow:           7,
		LabelPad:        6,
		LabelGap:        8,
		Sweeps:          24,

		WStraight:        1.0,
		WStraightVirtual: 8.0,
		WCenter:          0.5,
		AnchorEpsilon:    1e-4,

		SolverTolerance:     1e-4,
		SolverMaxIterations: 4000,
		SolverRho:           1.0,
		CoordinateRounding:  0.5,

		EnableSeparators: true,
		OrderingQuality:  OrderingBalanced,

		ClassMap: map[string]string{
			"actor":       "actor",
			"edge":        "edge",
			"back-edge":   "back-edge",
			"label":       "label",
			"response":    "response",
			"virtual":     "virtual",
			"auxiliary":   "auxiliary",
			"arrowhead":   "arrowhead",
			"node-label":  "node-label",
			"edge-label":  "edge-label",
		},
	}
	return c
}

// Resolve fills in derived fields (RowHeight from FontSize) and returns a
// config safe to pass through the pipeline. It does not mutate c.
func (c Config) Resolve() Config {
	if c.RowHeight <= 0 {
		factor := c.RowHeightFactor
		if factor <= 0 {
			factor = 3
		}
		c.RowHeight = c.FontSize * factor
	}
	if c.ClassMap == nil {
		c.ClassMap = Default().ClassMap
	}
	return c
}

// Class returns the CSS class name for a semantic style tag, falling back
// to the tag itself when no override is configured.
func (c Config) Class(tag string) string {
	if name, ok := c.ClassMap[tag]; ok && name != "" {
		return name
	}
	return tag
}

// fileConfig mirrors Config's overridable fields for TOML decoding. Only a
// subset of Config is meant to be end-user configurable via file; solver
// internals stay code-only.
type fileConfig struct {
	FontSize  *float64          `toml:"font_size"`
	RowHeight *float64          `toml:"row_height"`
	Gap       *float64          `toml:"gap"`
	Margin    *float64          `toml:"margin"`
	ClassMap  map[string]string `toml:"class_map"`
}

// LoadConfigFile reads a TOML file overriding a subset of the default
// Config, following the shape of spec.md §4.10's `class_map` option. Missing
// fields keep their Default() value.
func LoadConfigFile(path string) (Config, error) {
	base := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.FontSize != nil {
		base.FontSize = *fc.FontSize
	}
	if fc.RowHeight != nil {
		base.RowHeight = *fc.RowHeight
	}
	if fc.Gap != nil {
		base.Gap = *fc.Gap
	}
	if fc.Margin != nil {
		base.Margin = *fc.Margin
	}
	for tag, class := range fc.ClassMap {
		base.ClassMap[tag] = class
	}

	return base.Resolve(), nil
}
