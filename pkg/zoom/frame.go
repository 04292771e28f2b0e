package zoom

import (
	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Frame is one animation step: the arcs and labels to draw at a moment of a
// transition, or of the idle chart.
type Frame struct {
	Focus    hierarchy.NodeID `json:"focus"`
	Progress float64          `json:"progress"`
	Done     bool             `json:"done"`
	Layout   Layout           `json:"-"`
	Arcs     []ArcState       `json:"arcs"`
	Labels   []LabelState     `json:"labels"`
}

// ArcState is the drawing state of one arc in a frame.
type ArcState struct {
	ID          hierarchy.NodeID `json:"id"`
	Rect        geometry.Rect    `json:"rect"`
	FillOpacity float64          `json:"fill_opacity"`
	Interactive bool             `json:"interactive"`
}

// LabelState is the drawing state of one label in a frame.
type LabelState struct {
	ID      hierarchy.NodeID `json:"id"`
	Rect    geometry.Rect    `json:"rect"`
	Opacity float64          `json:"opacity"`
}
