package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knitgrid/knitgrid/pkg/pipeline"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	pattern string // pattern id, defaults to the set's first pattern
}

// newValidateCmd creates the validate command. It parses a pattern
// file, resolves all mesh connections, and computes the grid layout
// without writing any output. A pattern that passes is guaranteed to
// render.
func newValidateCmd() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a pattern file parses and lays out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "pattern id (defaults to the first pattern in the set)")

	return cmd
}

// runValidate parses and lays out the pattern, then prints a summary.
func runValidate(ctx context.Context, input string, opts *validateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := pipeline.NewRunner(nil, nil, logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Source:  input,
		Pattern: opts.pattern,
		Formats: []string{pipeline.FormatJSON},
		Logger:  logger,
	})
	if err != nil {
		printError("Pattern is invalid")
		return err
	}

	b := result.Layout.BoundingBox()
	printSuccess("Pattern is valid")
	printKeyValue("patterns", fmt.Sprintf("%d", result.Stats.PatternCount))
	printKeyValue("rows", fmt.Sprintf("%d", result.Stats.RowCount))
	printKeyValue("instructions", fmt.Sprintf("%d", result.Stats.InstructionCount))
	printKeyValue("grid", fmt.Sprintf("%dx%d at (%d, %d)", b.Width(), b.Height(), b.MinX, b.MinY))
	prog.done("Validated")
	return nil
}
