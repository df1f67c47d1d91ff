// Package chart renders computed grid layouts as knitting charts.
//
// A chart sink transforms a [layout.GridLayout] into a final output
// format. Two sinks are provided:
//
//   - SVG: a scalable chart with one cell per mesh, colored by
//     instruction, with optional labels and connection lines
//   - JSON: the raw placement data for external tools and caching
//
// Charts are drawn the way knitters read them, with the first row at
// the bottom. Grid y therefore increases upwards while SVG y grows
// downwards; the sinks flip the axis.
//
// Basic usage:
//
//	svg := chart.RenderSVG(grid,
//	    chart.WithCellSize(30),
//	    chart.WithLabels(),
//	)
//
// [layout.GridLayout]: github.com/knitgrid/knitgrid/pkg/layout.GridLayout
package chart
