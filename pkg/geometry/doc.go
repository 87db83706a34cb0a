// Package geometry turns a solved layout (ranked, ordered, positioned
// vertices) into the concrete shapes an SVG emitter draws: node boxes,
// edge polylines with arrowheads, and placed labels.
//
// Grounded on the teacher's tower layout geometry (pkg/render/tower/block.go's
// Block type and pkg/render/tower/render.go's block/edge assembly), adapted
// from a single-rank "stack of blocks" model to ranked actor lanes
// connected by routed polylines.
package geometry
