package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// layoutCommand creates the layout command for exporting the partition.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Export the partition layout as JSON",
		Long: `Export the partition layout as JSON.

Every node gets its depth, aggregated weight and rectangle in partition
coordinates (x in radians, y in rings), rescaled relative to --focus when one
is given. The document can be drawn by any client without re-running the
layout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.Focus, "focus", "", "node the layout is relative to, as a/b/c")

	return cmd
}

// runLayout builds the chart and writes the layout document.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, err := readTree(input)
	if err != nil {
		return fmt.Errorf("read tree %s: %w", input, err)
	}

	opts.Logger = c.Logger
	chart, err := runner.Build(ctx, data)
	if err != nil {
		return fmt.Errorf("build %s: %w", input, err)
	}

	doc, cacheHit, err := runner.LayoutWithCacheInfo(ctx, chart, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := writeFile(outputPath, doc); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(chart.Partition.Len(), chart.Partition.Height(), cacheHit)
	printNewline()
	printNextStep("Render", "sunburst render "+input)

	return nil
}
