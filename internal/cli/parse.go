package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knitgrid/knitgrid/pkg/io"
	"github.com/knitgrid/knitgrid/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output  string // output file path (stdout if empty)
	refresh bool   // bypass the parse cache
	cache   cacheOpts
}

// newParseCmd creates the parse command. It decodes a pattern file,
// resolves all mesh connections, and writes the normalized document.
// Useful for checking what a hand-written file actually declares:
// defaulted connection ranges and inherited rows come out explicit.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a pattern file and write the normalized document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	registerCacheFlags(cmd, &opts.cache)

	return cmd
}

// runParse resolves the pattern set and exports it.
func runParse(ctx context.Context, input string, opts *parseOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Infof("Parsing %s", input)

	runner := pipeline.NewRunner(openCache(ctx, &opts.cache), nil, logger)
	defer runner.Close()

	set, err := runner.Parse(ctx, pipeline.Options{
		Source:  input,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		if err := io.WriteJSON(set, os.Stdout); err != nil {
			return err
		}
	} else {
		if err := io.ExportJSON(set, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}

	prog.done(fmt.Sprintf("Parsed %d pattern(s)", len(set.Patterns())))
	return nil
}
