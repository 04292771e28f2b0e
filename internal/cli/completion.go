package cli

import (
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sunburst.

  bash:        source <(sunburst completion bash)
  zsh:         sunburst completion zsh > "${fpath[1]}/_sunburst"
  fish:        sunburst completion fish | source
  powershell:  sunburst completion powershell | Out-String | Invoke-Expression

Besides commands and flags, the scripts complete --format, --type and
--easing values, and --focus and --click paths from the tree file on the
command line.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			default:
				return root.GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// registerCompletions attaches value completion to whichever of the chart
// flags cmd defines.
func registerCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"format": slices.Sorted(maps.Keys(pipeline.ValidFormats)),
		"type":   slices.Sorted(maps.Keys(pipeline.ValidVizTypes)),
		"easing": zoom.Easings(),
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
	for _, name := range []string{"focus", "click"} {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, completeNodePaths)
		}
	}
}

// completeNodePaths offers the slash paths of every branch in the tree
// file given as the first argument. Remote trees are not fetched.
func completeNodePaths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tree, _, err := pipeline.Parse(data)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := hierarchy.Build(tree)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return branchPaths(p, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func branchPaths(p *hierarchy.Partition, prefix string) []string {
	var out []string
	p.Walk(func(n *hierarchy.Node) bool {
		if n.ID == hierarchy.RootID || n.IsLeaf() {
			return true
		}
		if path := strings.Join(p.Path(n.ID), "/"); strings.HasPrefix(path, prefix) {
			out = append(out, path)
		}
		return true
	})
	return out
}
