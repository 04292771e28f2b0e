package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// exploreCommand creates the explore command, a terminal zoom browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var fieldsStr string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [tree.json]",
		Short: "Browse a tree interactively in the terminal",
		Long: `Browse a tree interactively in the terminal.

The screen lists the innermost ring of the chart with bars for each arc's
angle. Selecting a branch zooms into it with the configured transition;
backspace zooms back out to the whole tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fieldsStr != "" {
				opts.Fields = strings.Split(fieldsStr, ",")
			}
			c.config().ApplyChart(&opts)
			if err := opts.Validate(); err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "transition length (default 750ms)")
	cmd.Flags().StringVar(&opts.Easing, "easing", "", "transition easing (default cubic-in-out)")
	cmd.Flags().IntVar(&opts.MaxLabelLength, "max-label", 0, "truncate labels to this many characters")
	cmd.Flags().StringVar(&fieldsStr, "fields", "", "detail fields (comma-separated, default all non-empty)")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, opts pipeline.Options) error {
	data, err := readTree(input)
	if err != nil {
		return fmt.Errorf("read tree %s: %w", input, err)
	}
	tree, _, err := pipeline.Parse(data)
	if err != nil {
		return err
	}
	p, err := hierarchy.Build(tree)
	if err != nil {
		return fmt.Errorf("build %s: %w", input, err)
	}
	zoomOpts, err := opts.ZoomOptions()
	if err != nil {
		return err
	}
	c.Logger.Debug("exploring", "file", input, "nodes", p.Len())

	m := NewExploreModel(ctx, p, opts.RenderOptions(), zoomOpts...)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("explore: %w", err)
	}
	return ctx.Err()
}
