// Package geometry maps partition coordinates to renderable arcs.
//
// A node's position in a sunburst is a [Rect] in angle × band space: X0..X1
// is the angular span in radians (clockwise from 12 o'clock) and Y0..Y1 is
// the radial band, one unit per depth level. Everything in this package is a
// pure function of a Rect and a radius unit, so callers recompute geometry on
// every animation frame instead of caching it.
//
// # Visibility
//
// Only three rings are drawn at a time. [ArcVisible] accepts bands in
// [1, MaxVisibleDepth] with a non-zero span; [LabelVisible] additionally
// requires the arc's angle × band area to exceed [MinLabelArea], so every
// label-visible node is also arc-visible.
//
// # Arc paths
//
// [ArcShape.Path] produces SVG path data with padding between neighbouring
// arcs. The padding is applied as a constant linear gap at PadRadius, which
// means very thin inner edges collapse to a point instead of overlapping.
package geometry
