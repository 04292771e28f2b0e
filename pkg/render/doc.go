// Package render turns a zoom frame into drawable output.
//
// # Overview
//
// A [Scene] is the complete, resolution-specific description of one frame
// of a sunburst chart: arc paths with fill colour and opacity, rotated
// labels, and the central reset circle. Every output format is produced
// from a Scene:
//
//   - [RenderSVG] writes a standalone SVG, optionally with hover tooltips
//   - [RenderJSON] writes the scene as JSON for browser clients
//   - [Rasterize] converts SVG to PNG or PDF through rsvg-convert
//
// The [nodelink] subpackage draws the same hierarchy as a Graphviz tree.
//
// # Colours
//
// Each top-level branch gets one colour from a rainbow palette split into
// len(root.Children)+1 stops; every descendant inherits its branch colour.
// See [NewPalette].
//
// # Tooltips
//
// [NewTooltip] collects a node's metadata as ordered [Field] values, and
// [Hover] tracks a tooltip that follows the pointer at a fixed offset.
// [Options.FieldFilter] decides which fields are shown; the default keeps
// the non-empty ones.
//
// [nodelink]: github.com/matzehuels/sunburst/pkg/render/nodelink
package render
