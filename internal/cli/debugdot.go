package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depictlang/depict/pkg/dag/transform"
	"github.com/depictlang/depict/pkg/depicterrors"
	"github.com/depictlang/depict/pkg/dsl"
	"github.com/depictlang/depict/pkg/graph"
	"github.com/depictlang/depict/pkg/graphvizdebug"
)

// debugDotOpts holds the command-line flags for the debug-dot command.
type debugDotOpts struct {
	output   string
	detailed bool
	svg      bool
}

// debugDotCommand creates the debug-dot command for inspecting the ranked,
// pre-solve graph independently of the QP solver.
func (c *CLI) debugDotCommand() *cobra.Command {
	opts := debugDotOpts{}

	cmd := &cobra.Command{
		Use:   "debug-dot [file]",
		Short: "Emit the ranked actor/action graph as Graphviz DOT or SVG",
		Long:  `debug-dot parses source and runs rank assignment and edge subdivision, then emits the resulting graph as Graphviz DOT. Pass --svg to render it through Graphviz instead. This skips crossing-minimizing ordering and the QP solver entirely, so it's useful for diagnosing a ranking problem before the solver ever runs.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runDebugDot(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include rank and metadata in node labels")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render through Graphviz to SVG instead of emitting DOT")

	return cmd
}

func (c *CLI) runDebugDot(_ context.Context, input string, opts *debugDotOpts) error {
	source, err := readSource(input)
	if err != nil {
		return err
	}

	prog, err := dsl.Parse(source)
	if err != nil {
		printRenderError(err)
		return err
	}
	g, err := graph.Build(prog)
	if err != nil {
		wrapped := depicterrors.NewInternal("graph-build", "building graph from parsed program: %v", err)
		printRenderError(wrapped)
		return wrapped
	}
	transform.Normalize(g.DAG)

	dot := graphvizdebug.ToDOT(g.DAG, graphvizdebug.Options{Detailed: opts.detailed})
	if !opts.svg {
		return writeOutput(opts.output, []byte(dot))
	}

	svg, err := graphvizdebug.RenderSVG(dot)
	if err != nil {
		return fmt.Errorf("render dot to svg: %w", err)
	}
	return writeOutput(opts.output, svg)
}
