package geometry

import "math"

const (
	// FullCircle is the angular extent of the whole chart.
	FullCircle = 2 * math.Pi

	// MaxVisibleDepth is the outermost band drawn: the focus's children
	// plus two more levels.
	MaxVisibleDepth = 3

	// MinLabelArea is the angle × band product a slice needs before its
	// label is shown.
	MinLabelArea = 0.03

	// ParentOpacity and LeafOpacity are the fill opacities of visible arcs.
	ParentOpacity = 0.6
	LeafOpacity   = 0.4
)

// Rect is a node's coordinates in angle × band space.
type Rect struct {
	X0 float64 `json:"x0" bson:"x0"`
	X1 float64 `json:"x1" bson:"x1"`
	Y0 float64 `json:"y0" bson:"y0"`
	Y1 float64 `json:"y1" bson:"y1"`
}

// Span returns the angular width in radians.
func (r Rect) Span() float64 { return r.X1 - r.X0 }

// Thickness returns the radial width in bands.
func (r Rect) Thickness() float64 { return r.Y1 - r.Y0 }

// Area returns the angle × band product used by the label threshold.
func (r Rect) Area() float64 { return r.Span() * r.Thickness() }

// Contains reports whether the point (angle, band) falls inside r.
// Both ranges are half-open.
func (r Rect) Contains(angle, band float64) bool {
	return angle >= r.X0 && angle < r.X1 && band >= r.Y0 && band < r.Y1
}

// ArcVisible reports whether an arc at r is drawn. The root band (Y0 < 1)
// is never drawn; it is covered by the reset circle instead.
func ArcVisible(r Rect) bool {
	return r.Y1 <= MaxVisibleDepth && r.Y0 >= 1 && r.X1 > r.X0
}

// LabelVisible reports whether the label for an arc at r is drawn.
func LabelVisible(r Rect) bool {
	return ArcVisible(r) && r.Area() > MinLabelArea
}

// FillOpacity returns the fill opacity of an arc at r. Invisible arcs are
// fully transparent.
func FillOpacity(r Rect, hasChildren bool) float64 {
	if !ArcVisible(r) {
		return 0
	}
	if hasChildren {
		return ParentOpacity
	}
	return LeafOpacity
}

// LabelOpacity returns 1 for visible labels and 0 otherwise.
func LabelOpacity(r Rect) float64 {
	if LabelVisible(r) {
		return 1
	}
	return 0
}

// Interactive reports whether an arc at r receives pointer events.
func Interactive(r Rect) bool { return ArcVisible(r) }

// Locate converts a point relative to the chart centre into angle × band
// coordinates. The angle is normalised to [0, 2π).
func Locate(x, y, radius float64) (angle, band float64) {
	angle = math.Atan2(x, -y)
	if angle < 0 {
		angle += FullCircle
	}
	if radius <= 0 {
		return angle, math.Inf(1)
	}
	return angle, math.Hypot(x, y) / radius
}
