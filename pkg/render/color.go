package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Palette assigns a colour to every node by its top-level branch.
type Palette struct {
	p      *hierarchy.Partition
	byName map[string]string
}

// NewPalette splits the rainbow into len(root.Children)+1 stops and hands
// them out to the root's children in order. Children sharing a name share a
// colour.
func NewPalette(p *hierarchy.Partition) *Palette {
	kids := p.Root().Children
	stops := Quantize(Rainbow, len(kids)+1)

	pal := &Palette{p: p, byName: make(map[string]string, len(kids))}
	next := 0
	for _, id := range kids {
		n, _ := p.Node(id)
		if _, ok := pal.byName[n.Name()]; ok {
			continue
		}
		pal.byName[n.Name()] = stops[next%len(stops)].Hex()
		next++
	}
	return pal
}

// Color returns the fill colour of id as a hex string. The root and
// unknown nodes get the first stop.
func (pal *Palette) Color(id hierarchy.NodeID) string {
	top := pal.p.TopAncestor(id)
	if n, ok := pal.p.Node(top); ok {
		if c, ok := pal.byName[n.Name()]; ok {
			return c
		}
	}
	return Rainbow(0).Hex()
}

// Quantize samples fn at n evenly spaced points over [0, 1]. A single sample
// is taken at 0.
func Quantize(fn func(t float64) colorful.Color, n int) []colorful.Color {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []colorful.Color{fn(0)}
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = fn(float64(i) / float64(n-1))
	}
	return out
}

// Rainbow is the cyclical "less angry" rainbow: a cubehelix sweep whose
// hue turns once as t goes from 0 to 1. Values outside [0, 1] wrap.
func Rainbow(t float64) colorful.Color {
	if t < 0 || t > 1 {
		t -= math.Floor(t)
	}
	ts := math.Abs(t - 0.5)
	return cubehelix(360*t-100, 1.5-1.5*ts, 0.8-0.9*ts)
}

// Cubehelix basis constants (Green 2011).
const (
	chA = -0.14861
	chB = 1.78277
	chC = -0.29227
	chD = -0.90649
	chE = 1.97294
)

// cubehelix converts hue (degrees), saturation and lightness in the
// cubehelix space to a clamped sRGB colour.
func cubehelix(h, s, l float64) colorful.Color {
	rad := (h + 120) * math.Pi / 180
	a := s * l * (1 - l)
	cosh, sinh := math.Cos(rad), math.Sin(rad)
	return colorful.Color{
		R: l + a*(chA*cosh+chB*sinh),
		G: l + a*(chC*cosh+chD*sinh),
		B: l + a*(chE*cosh),
	}.Clamped()
}
