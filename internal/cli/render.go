package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// renderCommand creates the render command for producing static charts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		fieldsStr  string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Tooltips: true}

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a tree to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a tree to one or more output formats.

The chart is drawn settled on --focus (slash-separated names below the root,
empty for the whole tree). With several formats, -o is a base path and each
file gets its format's extension.

Node-link diagrams (-t nodelink) are laid out by Graphviz and also support
the dot format.

Results are cached; see 'sunburst cache'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if fieldsStr != "" {
				opts.Fields = strings.Split(fieldsStr, ",")
			}
			c.config().ApplyChart(&opts)
			if err := opts.Validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	// Chart flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: sunburst, nodelink")
	cmd.Flags().Float64Var(&opts.Size, "size", 0, "viewport side in pixels (default 932)")
	cmd.Flags().StringVar(&opts.Focus, "focus", "", "node to zoom to, as a/b/c")
	cmd.Flags().IntVar(&opts.MaxLabelLength, "max-label", 0, "truncate labels to this many characters")
	cmd.Flags().BoolVar(&opts.Tooltips, "tooltips", opts.Tooltips, "embed hover tooltips (svg)")
	cmd.Flags().StringVar(&fieldsStr, "fields", "", "tooltip fields (comma-separated, default all non-empty)")

	// Node-link flags
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show weights and metadata (nodelink)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "limit tree depth (nodelink)")

	return cmd
}

// runRender builds the chart from input and writes every requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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
	sw := newStopwatch(c.Logger)
	chart, err := runner.Build(ctx, data)
	if err != nil {
		return fmt.Errorf("build %s: %w", input, err)
	}
	sw.lap("Built partition", "nodes", chart.Partition.Len())

	spinner := startSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, chart, opts)
	if err != nil {
		spinner.Fail("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	sw.lap("Rendered", "formats", len(artifacts), "cached", cacheHit)

	if spinner.Interrupted() {
		return ctx.Err()
	}

	paths := outputPaths(input, output, opts.Formats)
	sizes := make(map[string]int, len(artifacts))
	for format, path := range paths {
		if err := writeFile(path, artifacts[format]); err != nil {
			return err
		}
		sizes[format] = len(artifacts[format])
	}

	printSuccess("Render complete")
	fmt.Fprintln(out, artifactTable(paths, sizes))
	printStats(chart.Partition.Len(), chart.Partition.Height(), cacheHit)
	printNewline()
	printNextStep("Explore", "sunburst explore "+input)

	return nil
}

// outputPaths maps each format to its file. A single format honours output
// as given; several formats treat it as a base path.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + extension(f)
	}
	return paths
}

// extension returns the file suffix of a format. JSON scenes get a
// qualified suffix so they never overwrite the tree they came from.
func extension(format string) string {
	if format == pipeline.FormatJSON {
		return ".chart.json"
	}
	return "." + format
}

// basePath derives the base output path from the output and input paths,
// stripping any known format extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
