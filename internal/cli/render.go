package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depictlang/depict/pkg/depict"
	"github.com/depictlang/depict/pkg/depicterrors"
	"github.com/depictlang/depict/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path, or "-"/empty for stdout
	emit      string  // "svg" (default) or "geometry"
	fontSize  float64 // overrides the default font size
	rowHeight float64 // overrides the default row height
	classes   []string
}

// renderCommand creates the render command for compiling Depict DSL source.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{emit: "svg"}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render Depict DSL source into an SVG diagram",
		Long:  `Render compiles Depict DSL source into an SVG sequence diagram, or into structured geometry JSON with --emit geometry. Pass "-" or omit the file to read from stdin.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.emit, "emit", opts.emit, "what to emit: svg (default) or geometry")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "override the label font size")
	cmd.Flags().Float64Var(&opts.rowHeight, "row-height", 0, "override the row height")
	cmd.Flags().StringSliceVar(&opts.classes, "class", nil, "override a CSS class, as tag=class (repeatable)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	source, err := readSource(input)
	if err != nil {
		return err
	}

	classMap, err := parseClassOverrides(opts.classes)
	if err != nil {
		return err
	}

	runner := c.newRunner()
	pipeOpts := pipeline.Options{
		Source:    source,
		FontSize:  opts.fontSize,
		RowHeight: opts.rowHeight,
		ClassMap:  classMap,
	}
	if opts.emit == "geometry" {
		pipeOpts.Emit = depict.EmitGeometry
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		printRenderError(err)
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("rendered %d nodes", result.Stats.NodeCount))

	var data []byte
	if opts.emit == "geometry" {
		data, err = json.MarshalIndent(result.Geometry, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal geometry: %w", err)
		}
	} else {
		data = result.SVG
	}

	return writeOutput(opts.output, data)
}

// readSource reads DSL source from path, or from stdin if path is "" or "-".
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or stdout if path is "" or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// parseClassOverrides parses "tag=class" pairs from --class flags.
func parseClassOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		tag, class, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --class %q: expected tag=class", p)
		}
		out[tag] = class
	}
	return out, nil
}

// printRenderError writes a styled diagnostic for a depicterrors.RenderError:
// a source excerpt with a caret for a ParseError, or invariant counters for
// a LayoutError.
func printRenderError(err error) {
	if pe, ok := depicterrors.AsParseError(err); ok {
		printError("%s", pe.Error())
		fmt.Println(styleExcerptCaret(pe.Excerpt()))
		return
	}
	if le, ok := depicterrors.AsLayoutError(err); ok {
		printError("%s", le.Error())
		printDetail("ranks=%d variables=%d constraints=%d", le.RankCount, le.VariableCount, le.ConstraintCount)
		return
	}
	printError("%s", err.Error())
}

// styleExcerptCaret applies StyleValue to the source line and StyleCaret to
// the caret line of a two-line ParseError excerpt.
func styleExcerptCaret(excerpt string) string {
	lines := strings.SplitN(excerpt, "\n", 2)
	if len(lines) != 2 {
		return excerpt
	}
	return StyleValue.Render(lines[0]) + "\n" + StyleCaret.Render(lines[1])
}
