package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// framesCommand creates the frames command for recording zoom transitions.
func (c *CLI) framesCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "frames [tree.json]",
		Short: "Record the scenes of a click path as JSON",
		Long: `Record the scenes of a click path as JSON.

Each --click names a node as a/b/c; an empty value clicks the centre circle
and zooms back out. Clicks are played in order on a simulated clock and every
transition is sampled at --fps until it settles.

Easings: ` + strings.Join(zoom.Easings(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.config().ApplyChart(&opts)
			if err := opts.Validate(); err != nil {
				return err
			}
			return c.runFrames(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.frames.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringArrayVar(&opts.Clicks, "click", nil, "node to click, as a/b/c (repeatable)")
	cmd.Flags().IntVar(&opts.FPS, "fps", pipeline.DefaultFPS, "frames per second")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "transition length (default 750ms)")
	cmd.Flags().StringVar(&opts.Easing, "easing", "", "transition easing (default cubic-in-out)")
	cmd.Flags().Float64Var(&opts.Size, "size", 0, "viewport side in pixels (default 932)")
	cmd.Flags().IntVar(&opts.MaxLabelLength, "max-label", 0, "truncate labels to this many characters")

	return cmd
}

// runFrames plays the click path and writes the frame sequence.
func (c *CLI) runFrames(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := startSpinner(ctx, fmt.Sprintf("Playing %d clicks...", len(opts.Clicks)))

	seq, cacheHit, err := runner.FramesWithCacheInfo(ctx, chart, opts)
	if err != nil {
		spinner.Fail("Playback failed")
		return fmt.Errorf("record frames: %w", err)
	}
	spinner.Stop()
	if spinner.Interrupted() {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".frames.json"
	}
	if err := writeFile(outputPath, seq); err != nil {
		return err
	}

	printSuccess("Frames recorded")
	printFile(outputPath)
	printStats(chart.Partition.Len(), chart.Partition.Height(), cacheHit)
	return nil
}
