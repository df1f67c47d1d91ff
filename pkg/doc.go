// Package pkg provides the core libraries for knitgrid chart generation.
//
// # Overview
//
// Knitgrid turns knitting pattern files into 2D grid charts. Rows of
// instructions consume and produce meshes; connections between rows
// link produced meshes to consumed ones, and the layout engine places
// every instruction on an integer grid.
//
// # Architecture
//
// The typical data flow through knitgrid:
//
//	Pattern file (JSON)
//	         ↓
//	    [io] package (decode the envelope)
//	         ↓
//	    [pattern] package (rows, instructions, mesh resolution)
//	         ↓
//	    [layout] package (grid placement)
//	         ↓
//	    [render/chart] package (SVG/JSON output)
//
// # Quick Start
//
// Parse a pattern file and render a chart:
//
//	import (
//	    "github.com/knitgrid/knitgrid/pkg/io"
//	    "github.com/knitgrid/knitgrid/pkg/layout"
//	    "github.com/knitgrid/knitgrid/pkg/render/chart"
//	)
//
//	// 1. Parse and resolve the pattern set
//	set, _ := io.ImportJSON("swatch.json")
//
//	// 2. Compute the grid layout
//	grid, _ := layout.NewGridLayout(set.Patterns()[0])
//
//	// 3. Render to SVG
//	svg := chart.RenderSVG(grid)
//
// # Main Packages
//
// [pattern] - The domain model: pattern sets, patterns, rows,
// instructions, and meshes. Rows are connected by linking produced
// meshes to consumed meshes; the package keeps both views consistent.
//
// [pattern/parse] - Decodes pattern descriptors into the domain model
// and resolves the declared connections between rows.
//
// [pattern/library] - The built-in instruction library (knit, purl,
// yarn over, decreases) loaded from embedded TOML.
//
// [layout] - Places rows and instructions on an integer grid. Rows
// whose producers are all placed get the next line; instruction x
// positions accumulate widths across each row.
//
// [render/chart] - Chart output sinks. SVG for viewing, JSON for
// embedding applications.
//
// [io] - Import and export of the pattern file format.
//
// [pipeline] - Complete chart pipeline (parse → layout → render) used
// by the CLI and embedding applications. Ensures consistent behavior
// across all entry points.
//
// [cache] - Content-addressed caching of parsed pattern sets and
// rendered artifacts with file and Redis backends.
//
// [errors] - Structured error codes shared by all packages.
//
// [observability] - Hook interfaces for pipeline and cache
// instrumentation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Specific package
//
// [pattern]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/pattern
// [pattern/parse]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/pattern/parse
// [pattern/library]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/pattern/library
// [layout]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/layout
// [render/chart]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/render/chart
// [io]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/knitgrid/knitgrid/pkg/observability
package pkg
