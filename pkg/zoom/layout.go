package zoom

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Layout holds one rectangle per node, indexed by NodeID.
type Layout []geometry.Rect

// Rect returns the rectangle of id, or the zero Rect when id is out of range.
func (l Layout) Rect(id hierarchy.NodeID) geometry.Rect {
	if id < 0 || int(id) >= len(l) {
		return geometry.Rect{}
	}
	return l[id]
}

// Clone returns a copy of l.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Equal reports whether both layouts hold exactly the same coordinates.
func (l Layout) Equal(o Layout) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

// Initial returns the unzoomed layout of p.
func Initial(p *hierarchy.Partition) Layout {
	return Layout(p.Rects())
}

// Target returns the layout in which focus fills the full circle and sits in
// band 0. Nodes outside focus's span collapse to a zero-width sliver at 0 or
// 2π; ancestors of focus collapse onto band 0.
//
// An unknown focus yields the initial layout.
func Target(p *hierarchy.Partition, focus hierarchy.NodeID) Layout {
	f, ok := p.Node(focus)
	if !ok {
		return Initial(p)
	}
	f0, f1 := f.Fraction()
	span := f1 - f0
	shift := float64(f.Depth)

	out := make(Layout, p.Len())
	for _, n := range p.Nodes() {
		u0, u1 := n.Fraction()
		y := float64(n.Depth)
		out[n.ID] = geometry.Rect{
			X0: rescale(u0, f0, span) * geometry.FullCircle,
			X1: rescale(u1, f0, span) * geometry.FullCircle,
			Y0: math.Max(0, y-shift),
			Y1: math.Max(0, y+1-shift),
		}
	}
	return out
}

// rescale maps u into focus-relative units clamped to [0, 1]. A zero span
// turns into a step at f0.
func rescale(u, f0, span float64) float64 {
	if span <= 0 {
		if u > f0 {
			return 1
		}
		return 0
	}
	return clamp01((u - f0) / span)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Interpolate blends from and to coordinate by coordinate. t = 0 returns
// from and t ≥ 1 returns an exact copy of to. Layouts of different length
// yield a copy of to.
func Interpolate(from, to Layout, t float64) Layout {
	if t >= 1 || len(from) != len(to) {
		return to.Clone()
	}
	out := make(Layout, len(to))
	for i := range to {
		a, b := from[i], to[i]
		out[i] = geometry.Rect{
			X0: lerp(a.X0, b.X0, t),
			X1: lerp(a.X1, b.X1, t),
			Y0: lerp(a.Y0, b.Y0, t),
			Y1: lerp(a.Y1, b.Y1, t),
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
