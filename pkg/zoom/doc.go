// Package zoom animates a partitioned sunburst between zoom states.
//
// A zoom state is a [Layout]: one [geometry.Rect] per node, indexed by
// [hierarchy.NodeID]. [Target] computes the layout that makes a node's
// subtree fill the circle, and [Interpolate] blends two layouts. Both are
// pure; the [Controller] strings them together over time.
//
// # Transitions
//
// Clicking a node starts a transition from whatever is on screen to the
// node's target layout:
//
//	c := zoom.New(p)
//	c.Click(id, time.Now())
//	for !c.Done() {
//	    f := c.Frame(time.Now())
//	    draw(f)
//	}
//
// Clamping is always relative to the node just clicked, using its base
// partition span, so no focus stack is kept. Clicking the root (the central
// reset circle) restores the initial layout exactly.
//
// A click that arrives mid-transition starts from the current, partially
// interpolated coordinates; there is never a jump.
//
// A Controller is not safe for concurrent use.
package zoom
