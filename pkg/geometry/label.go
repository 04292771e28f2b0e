package geometry

import (
	"fmt"
	"math"
)

// Transform places a label at the middle of its arc, rotated to follow the
// ring and flipped on the left half so text is never upside down.
type Transform struct {
	Rotate    float64 `json:"rotate"`
	Translate float64 `json:"translate"`
	Flip      bool    `json:"flip"`
}

// LabelTransform returns the label placement for a node at r.
func LabelTransform(r Rect, radius float64) Transform {
	deg := (r.X0 + r.X1) / 2 * 180 / math.Pi
	return Transform{
		Rotate:    deg - 90,
		Translate: (r.Y0 + r.Y1) / 2 * radius,
		Flip:      deg >= 180,
	}
}

// String renders the transform as an SVG transform attribute value.
func (t Transform) String() string {
	flip := 0
	if t.Flip {
		flip = 180
	}
	return fmt.Sprintf("rotate(%s) translate(%s,0) rotate(%d)", FormatNumber(t.Rotate), FormatNumber(t.Translate), flip)
}

// Truncate shortens s to at most max runes, marking the cut with "..".
// A max of zero or less disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 2 {
		return string(runes[:max])
	}
	return string(runes[:max-2]) + ".."
}
