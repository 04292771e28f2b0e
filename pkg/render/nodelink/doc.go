// Package nodelink draws a partitioned hierarchy as a node-link tree.
//
// The sunburst shows proportions; a node-link diagram shows structure.
// [ToDOT] emits the hierarchy as a Graphviz digraph, one box per node and
// one arrow per parent-child link, coloured by top-level branch like the
// sunburst. [SVG] lays it out in process with
// [github.com/goccy/go-graphviz]:
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
//	svg, err := nodelink.SVG(ctx, dot)
//
// PNG and PDF go through [render.Rasterize] like every other SVG.
//
// Leaves with zero weight are drawn dashed, since they have no arc in the
// sunburst.
//
// [render.Rasterize]: github.com/matzehuels/sunburst/pkg/render.Rasterize
package nodelink
