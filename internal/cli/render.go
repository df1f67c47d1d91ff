package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knitgrid/knitgrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// These options control chart appearance, output formats, and caching.
type renderOpts struct {
	output      string   // output file path (or base path for multiple formats)
	pattern     string   // pattern id, defaults to the set's first pattern
	formats     []string // output formats: "svg", "json"
	cellSize    float64  // pixel size of one grid cell
	labels      bool     // draw instruction labels inside cells
	connections bool     // draw lines for connections that skip rows
	refresh     bool     // bypass the parse cache
	cache       cacheOpts
}

// newRenderCmd creates the render command for generating charts.
// It supports SVG and JSON output formats.
//
// Default settings:
//   - format: svg
//   - cell size: 25px
//   - caching: file cache in the user cache dir
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{cellSize: pipeline.DefaultCellSize}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a pattern file as chart(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "pattern id (defaults to the first pattern in the set)")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", opts.cellSize, "pixel size of one grid cell")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw instruction labels inside cells")
	cmd.Flags().BoolVar(&opts.connections, "connections", false, "draw lines for connections that skip rows")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	registerCacheFlags(cmd, &opts.cache)

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .json), it strips that extension.
// This is used when generating multiple files (e.g., swatch.svg, swatch.json).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file path for one rendered format.
// A single requested format honors --output verbatim; multiple formats
// share a base path and differ by extension.
func outputPath(opts *renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

// runRender executes the chart pipeline for input and writes one file
// per requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Infof("Rendering %s", input)

	runner := pipeline.NewRunner(openCache(ctx, &opts.cache), nil, logger)
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Source:      input,
		Pattern:     opts.pattern,
		Refresh:     opts.refresh,
		Formats:     opts.formats,
		CellSize:    opts.cellSize,
		Labels:      opts.labels,
		Connections: opts.connections,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s artifact", format)
		}
		path := outputPath(opts, input, format)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d chart(s)", len(opts.formats)))
	printStats(result.Stats.RowCount, result.Stats.InstructionCount, result.CacheInfo.RenderHit)
	return nil
}

// writeOutput writes one rendered artifact. The path "-" selects
// standard output.
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
