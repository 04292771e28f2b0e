package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/server"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr    string
	watch   string
	noCache bool
}

// serveCommand creates the serve command for the interactive HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive charts over HTTP",
		Long: `Serve interactive charts over HTTP.

Clients create a chart by posting tree JSON to /api/charts and then send
clicks and hovers to /api/charts/{id}. With --watch, a chart created without
a body uses the watched file, and such charts reload whenever it changes.

Settings come from the [server] and [chart] sections of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	cmd.Flags().StringVar(&opts.watch, "watch", "", "tree file to serve and reload on change")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg := c.config()
	scfg := cfg.ServerConfig()
	if opts.addr != "" {
		scfg.Addr = opts.addr
	}
	watchPath := opts.watch
	if watchPath == "" {
		watchPath = cfg.Server.Watch
	}

	logHooks := observability.NewLogHooks(c.Logger)
	stats := &observability.Counters{}
	observability.SetChartHooks(observability.ChartFanout(logHooks, stats))
	observability.SetCacheHooks(observability.CacheFanout(logHooks, stats))
	observability.SetHTTPHooks(observability.HTTPFanout(logHooks, stats))
	defer observability.Reset()
	scfg.Stats = stats

	cc, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, "serve:"), c.Logger)
	runner.TTL = cfg.Cache.TTL
	defer runner.Close()

	srv, err := server.New(scfg, runner, c.Logger)
	if err != nil {
		return fmt.Errorf("configure server: %w", err)
	}
	if watchPath != "" {
		if err := srv.Watch(ctx, watchPath); err != nil {
			return fmt.Errorf("watch %s: %w", watchPath, err)
		}
	}

	return srv.Run(ctx)
}
