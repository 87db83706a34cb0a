package constraint

import "github.com/depictlang/depict/internal/config"

// Font metrics ratios, adapted from the teacher's block-fitting heuristic
// (character width as a fraction of font size) but run in the opposite
// direction: sizing a box to fit a fixed-size label instead of shrinking a
// label to fit a fixed-size box.
const (
	charWidthRatio  = 0.6
	boxPadding      = 12.0
	lineHeightRatio = 1.6
)

// NodeWidth estimates the horizontal box width needed to fit label at
// FontSize, including padding. An empty label (virtual and auxiliary
// vertices have none) has zero width.
func NodeWidth(label string, cfg config.Config) float64 {
	if label == "" {
		return 0
	}
	return float64(len(label))*cfg.FontSize*charWidthRatio + boxPadding
}

// NodeHeight estimates the vertical box height needed for a single line of
// label text at FontSize.
func NodeHeight(cfg config.Config) float64 {
	return cfg.FontSize*lineHeightRatio + boxPadding/2
}
