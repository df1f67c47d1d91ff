package pipeline

import (
	"github.com/knitgrid/knitgrid/pkg/cache"
	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/layout"
	"github.com/knitgrid/knitgrid/pkg/render/chart"
)

// renderArtifacts generates all requested output formats from one
// layout.
func renderArtifacts(grid *layout.GridLayout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = chart.RenderSVG(grid, svgOptions(opts)...)
		case FormatJSON:
			data, err = chart.RenderJSON(grid)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// svgOptions translates pipeline options to chart SVG options.
func svgOptions(opts Options) []chart.SVGOption {
	svgOpts := []chart.SVGOption{chart.WithCellSize(opts.CellSize)}
	if opts.Labels {
		svgOpts = append(svgOpts, chart.WithLabels())
	}
	if opts.Connections {
		svgOpts = append(svgOpts, chart.WithConnections())
	}
	return svgOpts
}

// layoutHash fingerprints a computed layout through its canonical JSON
// document, so identical layouts share artifact cache entries.
func layoutHash(grid *layout.GridLayout) (string, error) {
	data, err := chart.RenderJSON(grid, chart.WithJSONCompact())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	return cache.Hash(data), nil
}

// artifactKeyOpts derives the cache key options for one format.
func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		CellSize:    o.CellSize,
		Labels:      o.Labels,
		Connections: o.Connections,
	}
}
