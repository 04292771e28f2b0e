package render

import (
	"time"

	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// DefaultSize is the default side of the square viewport, in pixels.
const DefaultSize = 932

// fontScale is the label font size per pixel of viewport side.
const fontScale = 95.9 / 8500

// Options configures scene construction and every renderer built on it.
type Options struct {
	// Size is the side of the square viewport. Zero means DefaultSize.
	Size float64
	// MaxLabelLength truncates label text to that many characters. Zero
	// keeps full names.
	MaxLabelLength int
	// FieldFilter picks tooltip fields. Nil means NonEmpty.
	FieldFilter FieldFilter
	// Tooltips embeds hover tooltips and their script in SVG output.
	Tooltips bool
}

func (o Options) size() float64 {
	if o.Size <= 0 {
		return DefaultSize
	}
	return o.Size
}

// Radius returns the width of one ring: a sixth of the viewport side.
func (o Options) Radius() float64 { return o.size() / 6 }

// Scene is one drawable frame of a chart.
type Scene struct {
	Size     float64          `json:"size"`
	Radius   float64          `json:"radius"`
	FontSize float64          `json:"font_size"`
	Focus    hierarchy.NodeID `json:"focus"`
	Progress float64          `json:"progress"`
	Done     bool             `json:"done"`
	Arcs     []Arc            `json:"arcs"`
	Labels   []Label          `json:"labels"`
	Reset    ResetCircle      `json:"reset"`
}

// Arc is one drawn slice.
type Arc struct {
	ID          hierarchy.NodeID  `json:"id"`
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	Fill        string            `json:"fill"`
	FillOpacity float64           `json:"fill_opacity"`
	Interactive bool              `json:"interactive"`
	Clickable   bool              `json:"clickable"`
	Shape       geometry.ArcShape `json:"-"`
	Tooltip     *Tooltip          `json:"tooltip,omitempty"`
}

// Label is one drawn slice label.
type Label struct {
	ID        hierarchy.NodeID `json:"id"`
	Text      string           `json:"text"`
	Transform string           `json:"transform"`
	Opacity   float64          `json:"opacity"`
}

// ResetCircle is the central hit target that zooms back out. It is bound
// to the root.
type ResetCircle struct {
	Node   hierarchy.NodeID `json:"node"`
	Radius float64          `json:"radius"`
}

// NewScene resolves a zoom frame into pixel geometry.
func NewScene(p *hierarchy.Partition, f zoom.Frame, opts Options) Scene {
	radius := opts.Radius()
	pal := NewPalette(p)

	s := Scene{
		Size:     opts.size(),
		Radius:   radius,
		FontSize: opts.size() * fontScale,
		Focus:    f.Focus,
		Progress: f.Progress,
		Done:     f.Done,
		Arcs:     make([]Arc, 0, len(f.Arcs)),
		Labels:   make([]Label, 0, len(f.Labels)),
		Reset:    ResetCircle{Node: hierarchy.RootID, Radius: radius},
	}

	for _, a := range f.Arcs {
		n, ok := p.Node(a.ID)
		if !ok {
			continue
		}
		shape := geometry.Arc(a.Rect, radius)
		arc := Arc{
			ID:          a.ID,
			Name:        n.Name(),
			Path:        shape.Path(),
			Fill:        pal.Color(a.ID),
			FillOpacity: a.FillOpacity,
			Interactive: a.Interactive,
			Clickable:   a.Interactive && !n.IsLeaf(),
			Shape:       shape,
		}
		if opts.Tooltips && a.Interactive {
			if tip, ok := NewTooltip(p, a.ID, opts.FieldFilter); ok {
				arc.Tooltip = &tip
			}
		}
		s.Arcs = append(s.Arcs, arc)
	}

	for _, l := range f.Labels {
		n, ok := p.Node(l.ID)
		if !ok {
			continue
		}
		s.Labels = append(s.Labels, Label{
			ID:        l.ID,
			Text:      geometry.Truncate(n.Name(), opts.MaxLabelLength),
			Transform: geometry.LabelTransform(l.Rect, radius).String(),
			Opacity:   l.Opacity,
		})
	}
	return s
}

// Snapshot advances c to now and builds the scene of the resulting frame.
func Snapshot(c *zoom.Controller, now time.Time, opts Options) Scene {
	return NewScene(c.Partition(), c.Frame(now), opts)
}
