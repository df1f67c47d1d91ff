package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/knitgrid/knitgrid/pkg/cache"
)

// cacheOpts holds the cache-related flags shared by commands that run
// the pipeline.
type cacheOpts struct {
	dir     string // file cache directory, defaults to the user cache dir
	redis   string // redis address, takes precedence over the file cache
	noCache bool   // disable caching entirely
}

// registerCacheFlags adds the shared cache flags to a command.
func registerCacheFlags(cmd *cobra.Command, opts *cacheOpts) {
	cmd.Flags().StringVar(&opts.dir, "cache-dir", "", "chart cache directory (defaults to the user cache dir)")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for the chart cache (overrides --cache-dir)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the chart cache")
}

// openCache builds the cache backend selected by the flags.
// If the file cache directory cannot be created, caching is disabled
// with a warning instead of failing the command.
func openCache(ctx context.Context, opts *cacheOpts) cache.Cache {
	logger := loggerFromContext(ctx)

	if opts.noCache {
		return cache.NewNullCache()
	}
	if opts.redis != "" {
		logger.Debugf("Using redis cache at %s", opts.redis)
		return cache.NewRedisCache(opts.redis, "", 0)
	}

	dir := opts.dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			logger.Warnf("Cache disabled: %v", err)
			return cache.NewNullCache()
		}
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warnf("Cache disabled: %v", err)
		return cache.NewNullCache()
	}
	logger.Debugf("Using file cache at %s", dir)
	return c
}

// cacheDir returns the default chart cache directory.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get user cache dir: %w", err)
	}
	return filepath.Join(base, "knitgrid"), nil
}

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the chart artifact cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached charts and pattern sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count := 0
			err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return nil // Skip errors, continue walking
				}
				if path == dir {
					return nil
				}
				if !info.IsDir() {
					if err := os.Remove(path); err == nil {
						count++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Clean up empty subdirectories
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if info.IsDir() {
					os.Remove(path)
				}
				return nil
			})

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
