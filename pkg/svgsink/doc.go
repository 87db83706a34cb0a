// Package svgsink writes a geometry.Geometry as a single SVG document,
// grounded on the teacher's sink/svg.go emission order and
// styles/style.go's Style interface: background rects, then edges, then
// arrowheads, then labels on top, so later elements never sit under an
// earlier one's stroke.
package svgsink
