package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/depictlang/depict/pkg/depict"
	"github.com/depictlang/depict/pkg/geometry"
	"github.com/depictlang/depict/pkg/pipeline"
)

const (
	previewCols = 100
	previewRows = 30
)

// previewCommand creates the preview command: render source and show the
// resulting box layout as an ASCII grid instead of writing SVG.
func (c *CLI) previewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render and preview the box layout as ASCII art",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPreview(cmd.Context(), input)
		},
	}
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string) error {
	source, err := readSource(input)
	if err != nil {
		return err
	}

	runner := c.newRunner()
	result, err := runner.Execute(ctx, pipeline.Options{Source: source, Emit: depict.EmitGeometry})
	if err != nil {
		printRenderError(err)
		return err
	}

	m := newPreviewModel(result.Geometry)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

// previewModel is a bubbletea model that draws a geometry.Geometry as a grid
// of ASCII boxes, scaled to fit the terminal.
type previewModel struct {
	geo *geometry.Geometry
}

func newPreviewModel(geo *geometry.Geometry) previewModel {
	return previewModel{geo: geo}
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	grid := renderGrid(m.geo, previewCols, previewRows)
	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("depict preview — %d nodes, %d edges", len(m.geo.Nodes), len(m.geo.Edges))))
	b.WriteString("\n\n")
	b.WriteString(grid)
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("q to quit"))
	return b.String()
}

// renderGrid scales geo's node boxes into a cols×rows character grid and
// draws each box outline with its label centered inside.
func renderGrid(geo *geometry.Geometry, cols, rows int) string {
	if geo.Width == 0 || geo.Height == 0 {
		return StyleDim.Render("(empty layout)")
	}
	scaleX := float64(cols-1) / geo.Width
	scaleY := float64(rows-1) / geo.Height

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, n := range geo.Nodes {
		x0 := int(n.Box.Left * scaleX)
		x1 := int(n.Box.Right * scaleX)
		y0 := int(n.Box.Top * scaleY)
		y1 := int(n.Box.Bottom * scaleY)
		drawBox(grid, x0, y0, x1, y1)
		placeLabel(grid, n.Label, (x0+x1)/2, (y0+y1)/2)
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return lipgloss.NewStyle().Render(strings.TrimRight(b.String(), "\n"))
}

func drawBox(grid [][]rune, x0, y0, x1, y1 int) {
	rows, cols := len(grid), len(grid[0])
	set := func(x, y int, r rune) {
		if y >= 0 && y < rows && x >= 0 && x < cols {
			grid[y][x] = r
		}
	}
	for x := x0; x <= x1; x++ {
		set(x, y0, '-')
		set(x, y1, '-')
	}
	for y := y0; y <= y1; y++ {
		set(x0, y, '|')
		set(x1, y, '|')
	}
	set(x0, y0, '+')
	set(x1, y0, '+')
	set(x0, y1, '+')
	set(x1, y1, '+')
}

func placeLabel(grid [][]rune, label string, cx, cy int) {
	rows, cols := len(grid), len(grid[0])
	if cy < 0 || cy >= rows {
		return
	}
	start := cx - len(label)/2
	for i, r := range label {
		x := start + i
		if x >= 0 && x < cols {
			grid[cy][x] = r
		}
	}
}
