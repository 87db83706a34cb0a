// Package pkg provides the core libraries behind depict, a compact
// actor/action DSL compiled into layered, orthogonally-routed SVG sequence
// diagrams.
//
// # Overview
//
// The rendering engine is a pipeline of independent stages:
//
//	source text
//	     ↓
//	[dsl] Parse (lex + parse into a Program)
//	     ↓
//	[graph] Build (actor/action graph → *dag.DAG)
//	     ↓
//	[dag/transform] Normalize (break cycles, assign ranks, subdivide edges)
//	     ↓
//	[dag/order] OrderRanks (minimize crossings within each rank)
//	     ↓
//	[constraint] Build (assemble a sparse quadratic program)
//	     ↓
//	[qpsolve] Solve (ADMM QP solver)
//	     ↓
//	[geometry] Assemble (node boxes, edge polylines, label placement)
//	     ↓
//	[svgsink] Render (SVG serialization)
//
// [depict.Render] composes the whole pipeline as one pure function of its
// inputs. [pipeline.Runner] wraps the same stages with per-stage timing,
// structured logging, and observability hooks for embedding applications.
//
// # Ambient packages
//
// [depicterrors] defines the three error categories the pipeline can
// return (parse, layout, internal) and maps them to process exit codes.
// [observability] is a hooks registry for metrics/tracing backends.
// [buildinfo] holds ldflags-injected version metadata for the CLI.
//
// # Domain-stack packages
//
// [graphvizdebug] renders the ranked, pre-solve DAG as a Graphviz SVG, for
// inspecting rank assignment independently of the QP solver.
// [rendercache] is a content-addressed cache over rendered output, backed
// by Redis. [httpapi] exposes the pipeline as an HTTP render service.
//
// [depict.Render]: https://pkg.go.dev/github.com/depictlang/depict/pkg/depict
// [pipeline.Runner]: https://pkg.go.dev/github.com/depictlang/depict/pkg/pipeline
// [dsl]: https://pkg.go.dev/github.com/depictlang/depict/pkg/dsl
// [graph]: https://pkg.go.dev/github.com/depictlang/depict/pkg/graph
// [dag/transform]: https://pkg.go.dev/github.com/depictlang/depict/pkg/dag/transform
// [dag/order]: https://pkg.go.dev/github.com/depictlang/depict/pkg/dag/order
// [constraint]: https://pkg.go.dev/github.com/depictlang/depict/pkg/constraint
// [qpsolve]: https://pkg.go.dev/github.com/depictlang/depict/pkg/qpsolve
// [geometry]: https://pkg.go.dev/github.com/depictlang/depict/pkg/geometry
// [svgsink]: https://pkg.go.dev/github.com/depictlang/depict/pkg/svgsink
// [depicterrors]: https://pkg.go.dev/github.com/depictlang/depict/pkg/depicterrors
// [observability]: https://pkg.go.dev/github.com/depictlang/depict/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/depictlang/depict/pkg/buildinfo
// [graphvizdebug]: https://pkg.go.dev/github.com/depictlang/depict/pkg/graphvizdebug
// [rendercache]: https://pkg.go.dev/github.com/depictlang/depict/pkg/rendercache
// [httpapi]: https://pkg.go.dev/github.com/depictlang/depict/pkg/httpapi
package pkg
