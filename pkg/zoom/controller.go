package zoom

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// DefaultDuration is the length of one zoom transition.
const DefaultDuration = 750 * time.Millisecond

// Option configures a Controller.
type Option func(*Controller)

// WithDuration sets the transition length. Non-positive durations make every
// click jump straight to its target.
func WithDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d < 0 {
			d = 0
		}
		c.duration = d
	}
}

// WithEasing sets the easing applied to the shared time cursor. A nil
// function keeps the default.
func WithEasing(fn ease.TweenFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.easing = fn
		}
	}
}

// Controller drives zoom transitions for one chart.
type Controller struct {
	p        *hierarchy.Partition
	duration time.Duration
	easing   ease.TweenFunc

	focus   hierarchy.NodeID
	current Layout

	// Transition state. from and to are immutable once a click starts.
	from, to Layout
	start    time.Time
	tween    *gween.Tween
	progress float64
	active   bool

	// Opacity of every arc and label when the transition began, and the
	// opacity each is heading to.
	arcFrom, arcTo     []float64
	labelFrom, labelTo []float64
	interactive        []bool
}

// New returns a Controller showing the full tree.
func New(p *hierarchy.Partition, opts ...Option) *Controller {
	c := &Controller{
		p:        p,
		duration: DefaultDuration,
		easing:   ease.InOutCubic,
		focus:    hierarchy.RootID,
		current:  Initial(p),
		progress: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.from = c.current
	c.to = c.current
	c.arcFrom, c.arcTo = c.arcOpacities(c.current), c.arcOpacities(c.current)
	c.labelFrom, c.labelTo = labelOpacities(c.current), labelOpacities(c.current)
	c.interactive = interactivity(c.current)
	return c
}

// Partition returns the partition being animated.
func (c *Controller) Partition() *hierarchy.Partition { return c.p }

// Focus returns the node most recently clicked, or the root.
func (c *Controller) Focus() hierarchy.NodeID { return c.focus }

// Current returns the layout as of the last Frame or Click. The result must
// not be modified.
func (c *Controller) Current() Layout { return c.current }

// Target returns the layout the running transition heads for, or the current
// layout when idle.
func (c *Controller) Target() Layout { return c.to }

// Done reports whether no transition is running.
func (c *Controller) Done() bool { return !c.active }

// Progress returns the eased position of the running transition in [0, 1].
// It is 1 when idle.
func (c *Controller) Progress() float64 { return c.progress }

// Duration returns the configured transition length.
func (c *Controller) Duration() time.Duration { return c.duration }

// Clickable reports whether a click on id would start a transition. The root
// is always clickable through the reset circle. Other nodes need children, a
// visible arc with non-zero span, and pointer events.
func (c *Controller) Clickable(id hierarchy.NodeID) bool {
	if id == hierarchy.RootID {
		return true
	}
	n, ok := c.p.Node(id)
	if !ok || n.IsLeaf() {
		return false
	}
	r := c.current.Rect(id)
	return r.Span() > 0 && geometry.ArcVisible(r) && c.interactive[id]
}

// Click starts a transition that zooms to id and reports whether it did.
// Clicks on nodes that are not [Controller.Clickable] are ignored. A running
// transition is abandoned; the new one starts from the coordinates on screen
// at now.
func (c *Controller) Click(id hierarchy.NodeID, now time.Time) bool {
	c.advance(now)
	if !c.Clickable(id) {
		return false
	}

	c.arcFrom = c.arcOpacityAt(c.progress)
	c.labelFrom = c.labelOpacityAt(c.progress)

	c.focus = id
	c.from = c.current
	c.to = Target(c.p, id)
	c.arcTo = c.arcOpacities(c.to)
	c.labelTo = labelOpacities(c.to)
	c.interactive = interactivity(c.to)

	c.start = now
	c.tween = gween.New(0, 1, float32(c.duration.Seconds()), c.easing)
	c.progress = 0
	c.active = true
	c.advance(now)
	return true
}

// Reset zooms back out to the full tree.
func (c *Controller) Reset(now time.Time) bool {
	return c.Click(hierarchy.RootID, now)
}

// advance moves the time cursor to now and updates the current layout.
func (c *Controller) advance(now time.Time) {
	if !c.active {
		return
	}
	elapsed := now.Sub(c.start).Seconds()
	t, finished := c.tween.Set(float32(elapsed))
	if finished {
		c.current = c.to
		c.progress = 1
		c.active = false
		return
	}
	c.progress = float64(t)
	c.current = Interpolate(c.from, c.to, c.progress)
}

// Frame advances the transition to now and returns what to redraw.
func (c *Controller) Frame(now time.Time) Frame {
	c.advance(now)

	f := Frame{
		Focus:    c.focus,
		Progress: c.progress,
		Done:     !c.active,
		Layout:   c.current,
	}
	arcOp := c.arcOpacityAt(c.progress)
	labelOp := c.labelOpacityAt(c.progress)
	for i := 1; i < len(c.current); i++ {
		id := hierarchy.NodeID(i)
		r := c.current[i]
		// An arc joins the transition when it was showing or will show.
		// Once idle only what is showing remains.
		if c.arcTo[i] > 0 || (c.active && c.arcFrom[i] > 0) {
			f.Arcs = append(f.Arcs, ArcState{
				ID:          id,
				Rect:        r,
				FillOpacity: arcOp[i],
				Interactive: c.interactive[i],
			})
		}
		if c.labelTo[i] > 0 || (c.active && c.labelFrom[i] > 0) {
			f.Labels = append(f.Labels, LabelState{
				ID:      id,
				Rect:    r,
				Opacity: labelOp[i],
			})
		}
	}
	return f
}

// HitTest returns the node under the point (x, y), measured from the chart
// centre, for a chart of the given radius. Points inside the reset circle hit
// the root. Only arcs that receive pointer events can be hit.
func (c *Controller) HitTest(x, y, radius float64) (hierarchy.NodeID, bool) {
	if radius <= 0 {
		return hierarchy.NoParent, false
	}
	angle, band := geometry.Locate(x, y, radius)
	if band < 1 {
		return hierarchy.RootID, true
	}
	for i := 1; i < len(c.current); i++ {
		if c.interactive[i] && c.current[i].Contains(angle, band) {
			return hierarchy.NodeID(i), true
		}
	}
	return hierarchy.NoParent, false
}

func (c *Controller) arcOpacityAt(t float64) []float64 {
	return blend(c.arcFrom, c.arcTo, t)
}

func (c *Controller) labelOpacityAt(t float64) []float64 {
	return blend(c.labelFrom, c.labelTo, t)
}

func (c *Controller) arcOpacities(l Layout) []float64 {
	out := make([]float64, len(l))
	for i := 1; i < len(l); i++ {
		n, _ := c.p.Node(hierarchy.NodeID(i))
		out[i] = geometry.FillOpacity(l[i], !n.IsLeaf())
	}
	return out
}

func labelOpacities(l Layout) []float64 {
	out := make([]float64, len(l))
	for i := 1; i < len(l); i++ {
		out[i] = geometry.LabelOpacity(l[i])
	}
	return out
}

func interactivity(l Layout) []bool {
	out := make([]bool, len(l))
	for i := 1; i < len(l); i++ {
		out[i] = geometry.Interactive(l[i])
	}
	return out
}

func blend(from, to []float64, t float64) []float64 {
	if t >= 1 {
		return to
	}
	out := make([]float64, len(to))
	for i := range to {
		out[i] = lerp(from[i], to[i], t)
	}
	return out
}
