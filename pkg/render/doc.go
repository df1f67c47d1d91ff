// Package render groups chart output sinks for computed layouts.
//
// # Overview
//
// Rendering is split from layout computation so the same grid can be
// serialized to multiple formats:
//
//   - [chart] renders SVG charts and JSON layout documents
//
// # Chart Output
//
// The [chart] subpackage draws one cell per instruction, colored by the
// instruction's declared color, with the first row at the bottom of the
// image the way knitters read charts.
//
//	grid, _ := layout.NewGridLayout(pattern)
//	svg := chart.RenderSVG(grid, chart.WithLabels())
//	doc, err := chart.RenderJSON(grid)
//
// [chart]: github.com/knitgrid/knitgrid/pkg/render/chart
package render
