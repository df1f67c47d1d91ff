// Package pipeline provides the core chart pipeline for knitgrid.
//
// This package implements the complete parse → layout → render pipeline
// that can be used by CLI and embedding applications. By centralizing
// this logic, we ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode a pattern-set document and resolve all mesh links
//  2. Layout: Place the pattern's instructions on the 2D grid
//  3. Render: Generate chart output in various formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "swatch.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	stdio "io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/layout"
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

const (
	// DefaultCellSize is the default pixel size of one grid cell in SVG
	// output.
	DefaultCellSize = 25.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for embedding applications.
type Options struct {
	// Parse options
	Source   string `json:"source,omitempty"`   // path of the pattern-set file
	Document string `json:"document,omitempty"` // inline document, used instead of Source when set
	Pattern  string `json:"pattern,omitempty"`  // pattern id, defaults to the set's first pattern
	Refresh  bool   `json:"refresh,omitempty"`  // bypass the parse cache

	// Render options
	Formats     []string `json:"formats,omitempty"`
	CellSize    float64  `json:"cell_size,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	Connections bool     `json:"connections,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Set is the resolved pattern set.
	Set *pattern.Set

	// SetHash is the content hash of the source document.
	SetHash string

	// Layout is the computed placement of the selected pattern.
	Layout *layout.GridLayout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PatternCount     int
	RowCount         int
	InstructionCount int
	ParseTime        time.Duration
	LayoutTime       time.Duration
	RenderTime       time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the resolved set came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" && o.Document == "" {
		return errors.New(errors.ErrCodeInvalidPatternSet, "source or document is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
