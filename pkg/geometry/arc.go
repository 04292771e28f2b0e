package geometry

import (
	"math"
	"strconv"
	"strings"
)

const (
	// PadAngle caps the angular gap between neighbouring arcs.
	PadAngle = 0.005

	// PadRadiusFactor scales the radius unit to the radius at which the
	// pad gap is measured.
	PadRadiusFactor = 1.5

	epsilon = 1e-12
)

// ArcShape describes one annular sector ready to be drawn.
type ArcShape struct {
	StartAngle  float64 `json:"start_angle"`
	EndAngle    float64 `json:"end_angle"`
	InnerRadius float64 `json:"inner_radius"`
	OuterRadius float64 `json:"outer_radius"`
	PadAngle    float64 `json:"pad_angle"`
	PadRadius   float64 `json:"pad_radius"`
}

// Arc maps r to an arc shape with the given radius unit. The outer edge is
// pulled in by one pixel to leave a hairline between rings, but never below
// the inner edge.
func Arc(r Rect, radius float64) ArcShape {
	inner := r.Y0 * radius
	return ArcShape{
		StartAngle:  r.X0,
		EndAngle:    r.X1,
		InnerRadius: inner,
		OuterRadius: math.Max(inner, r.Y1*radius-1),
		PadAngle:    math.Min(r.Span()/2, PadAngle),
		PadRadius:   radius * PadRadiusFactor,
	}
}

// Path returns SVG path data for the arc centred on the origin.
func (a ArcShape) Path() string {
	var p pathBuilder

	r0, r1 := a.InnerRadius, a.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0 := a.StartAngle - math.Pi/2
	a1 := a.EndAngle - math.Pi/2
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	switch {
	case !(r1 > epsilon):
		p.moveTo(0, 0)

	case da > FullCircle-epsilon:
		p.moveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		p.arc(r1, a0, a1, !cw)
		if r0 > epsilon {
			p.moveTo(r0*math.Cos(a1), r0*math.Sin(a1))
			p.arc(r0, a1, a0, cw)
		}

	default:
		a01, a11, a00, a10 := a0, a1, a0, a1
		da0, da1 := da, da

		ap := a.PadAngle / 2
		if ap > epsilon && a.PadRadius > epsilon {
			rp := a.PadRadius
			p0 := math.Asin(rp / r0 * math.Sin(ap))
			p1 := math.Asin(rp / r1 * math.Sin(ap))
			if !cw {
				p0, p1 = -p0, -p1
			}
			if da0 -= 2 * math.Abs(p0); da0 > epsilon {
				a00 += p0
				a10 -= p0
			} else {
				da0 = 0
				a00 = (a0 + a1) / 2
				a10 = a00
			}
			if da1 -= 2 * math.Abs(p1); da1 > epsilon {
				a01 += p1
				a11 -= p1
			} else {
				da1 = 0
				a01 = (a0 + a1) / 2
				a11 = a01
			}
		}

		p.moveTo(r1*math.Cos(a01), r1*math.Sin(a01))
		if da1 > epsilon {
			p.arc(r1, a01, a11, !cw)
		}
		if !(r0 > epsilon) || !(da0 > epsilon) {
			p.lineTo(r0*math.Cos(a10), r0*math.Sin(a10))
		} else {
			p.arc(r0, a10, a00, cw)
		}
	}

	p.close()
	return p.String()
}

// pathBuilder accumulates SVG path commands and tracks the current point so
// arcs starting elsewhere get a connecting line.
type pathBuilder struct {
	b      strings.Builder
	x, y   float64
	hasPos bool
}

func (p *pathBuilder) moveTo(x, y float64) {
	p.b.WriteString("M")
	p.point(x, y)
	p.x, p.y, p.hasPos = x, y, true
}

func (p *pathBuilder) lineTo(x, y float64) {
	p.b.WriteString("L")
	p.point(x, y)
	p.x, p.y, p.hasPos = x, y, true
}

func (p *pathBuilder) close() { p.b.WriteString("Z") }

// arc draws a circular arc around the origin from angle a0 to a1,
// counter-clockwise when ccw is set.
func (p *pathBuilder) arc(r, a0, a1 float64, ccw bool) {
	x0, y0 := r*math.Cos(a0), r*math.Sin(a0)
	if !p.hasPos {
		p.moveTo(x0, y0)
	} else if math.Abs(p.x-x0) > 1e-6 || math.Abs(p.y-y0) > 1e-6 {
		p.lineTo(x0, y0)
	}
	if r == 0 {
		return
	}

	sweep := "1"
	da := a1 - a0
	if ccw {
		sweep = "0"
		da = a0 - a1
	}
	if da < 0 {
		da = math.Mod(da, FullCircle) + FullCircle
	}

	switch {
	case da > FullCircle-1e-6:
		p.arcTo(r, true, sweep, -x0, -y0)
		p.arcTo(r, true, sweep, x0, y0)
	case da > 1e-6:
		p.arcTo(r, da >= math.Pi, sweep, r*math.Cos(a1), r*math.Sin(a1))
	}
}

func (p *pathBuilder) arcTo(r float64, large bool, sweep string, x, y float64) {
	p.b.WriteString("A")
	p.b.WriteString(FormatNumber(r))
	p.b.WriteString(",")
	p.b.WriteString(FormatNumber(r))
	p.b.WriteString(",0,")
	if large {
		p.b.WriteString("1,")
	} else {
		p.b.WriteString("0,")
	}
	p.b.WriteString(sweep)
	p.b.WriteString(",")
	p.point(x, y)
	p.x, p.y, p.hasPos = x, y, true
}

func (p *pathBuilder) point(x, y float64) {
	p.b.WriteString(FormatNumber(x))
	p.b.WriteString(",")
	p.b.WriteString(FormatNumber(y))
}

func (p *pathBuilder) String() string { return p.b.String() }

// FormatNumber formats v with at most three decimals and without a negative zero.
func FormatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
