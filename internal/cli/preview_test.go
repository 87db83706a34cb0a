package cli

import (
	"strings"
	"testing"

	"github.com/depictlang/depict/pkg/geometry"
)

func TestRenderGridDrawsNodeBoxes(t *testing.T) {
	geo := &geometry.Geometry{
		Width:  100,
		Height: 50,
		Nodes: []geometry.NodeBox{
			{ID: "a", Label: "A", Box: geometry.Box{Left: 0, Right: 20, Top: 0, Bottom: 10}},
			{ID: "b", Label: "B", Box: geometry.Box{Left: 60, Right: 80, Top: 30, Bottom: 40}},
		},
	}

	grid := renderGrid(geo, previewCols, previewRows)
	if !strings.Contains(grid, "A") || !strings.Contains(grid, "B") {
		t.Errorf("renderGrid() output missing node labels: %q", grid)
	}
	if !strings.Contains(grid, "+") {
		t.Error("renderGrid() output should contain box corners")
	}
}

func TestRenderGridEmptyLayout(t *testing.T) {
	geo := &geometry.Geometry{}
	got := renderGrid(geo, previewCols, previewRows)
	if got == "" {
		t.Error("renderGrid() on an empty layout should still return a message")
	}
}

func TestPreviewModelQuits(t *testing.T) {
	geo := &geometry.Geometry{Width: 10, Height: 10}
	m := newPreviewModel(geo)

	view := m.View()
	if view == "" {
		t.Error("View() should not be empty")
	}
}
