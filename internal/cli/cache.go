package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var expired bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached artifacts and fetched trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context(), expired)
		},
	}
	cmd.Flags().BoolVar(&expired, "expired", false, "only remove entries past their TTL")
	return cmd
}

func (c *CLI) runCacheClear(ctx context.Context, expired bool) error {
	cfg, err := c.config().CacheConfig()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	switch cfg.Backend {
	case cache.BackendFile:
	case cache.BackendNone, cache.BackendMemory:
		printInfo("Backend %q keeps nothing between runs", cfg.Backend)
		return nil
	default:
		printWarning("Backend %q is not cleared locally; expire its keys on the server", cfg.Backend)
		return nil
	}

	if _, err := os.Stat(cfg.Dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		return err
	}
	defer fc.Close()

	remove, what := fc.Clear, "cached"
	if expired {
		remove, what = fc.Prune, "expired"
	}
	count, err := remove()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	log.FromContext(ctx).Debug("cache cleared", "dir", cfg.Dir, "entries", count, "expired_only", expired)

	printSuccess("Cleared %d %s entries", count, what)
	printDetail("Directory: %s", cfg.Dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config().CacheConfig()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			dir := cfg.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}
