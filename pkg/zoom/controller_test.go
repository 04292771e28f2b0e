package zoom

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestControllerInitial(t *testing.T) {
	p := mustBuild(t, nestedTree())
	c := New(p)

	if c.Focus() != hierarchy.RootID || !c.Done() || c.Progress() != 1 {
		t.Fatalf("unexpected initial state: focus=%d done=%v", c.Focus(), c.Done())
	}
	if c.Duration() != DefaultDuration {
		t.Errorf("Duration = %v", c.Duration())
	}
	if !c.Current().Equal(Initial(p)) {
		t.Error("initial layout mismatch")
	}

	f := c.Frame(t0)
	// Depth 1 and 2 are drawn; depth 3 is beyond the outer ring.
	if len(f.Arcs) != 5 {
		t.Errorf("initial frame has %d arcs, want 5", len(f.Arcs))
	}
	for _, a := range f.Arcs {
		n, _ := p.Node(a.ID)
		if n.Depth == 0 || n.Depth > 2 {
			t.Errorf("arc for depth %d node drawn", n.Depth)
		}
		want := geometry.LeafOpacity
		if !n.IsLeaf() {
			want = geometry.ParentOpacity
		}
		if a.FillOpacity != want || !a.Interactive {
			t.Errorf("arc %s: opacity %v interactive %v", n.Name(), a.FillOpacity, a.Interactive)
		}
	}
	for _, l := range f.Labels {
		if !geometry.LabelVisible(l.Rect) || l.Opacity != 1 {
			t.Errorf("label %d drawn with opacity %v", l.ID, l.Opacity)
		}
	}
}

func TestClickRules(t *testing.T) {
	p := mustBuild(t, nestedTree())
	b := mustFind(t, p, "B")
	a1 := mustFind(t, p, "A", "A1")

	tests := []struct {
		name string
		id   hierarchy.NodeID
		want bool
	}{
		{"leaf", mustFind(t, p, "B", "B2"), false},
		{"hidden leaf", mustFind(t, p, "B", "B1", "b11"), false},
		{"unknown", hierarchy.NodeID(p.Len()), false},
		{"branch", b, true},
		{"second ring branch", a1, true},
		{"root", hierarchy.RootID, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(p)
			if got := c.Click(tt.id, t0); got != tt.want {
				t.Errorf("Click = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClickCollapsedIsNoop(t *testing.T) {
	p := mustBuild(t, nestedTree())
	c := New(p)
	c.Click(mustFind(t, p, "B"), t0)
	c.Frame(t0.Add(time.Second))

	a1 := mustFind(t, p, "A", "A1")
	if c.Current().Rect(a1).Span() != 0 {
		t.Fatalf("A1 should be collapsed after zooming into B")
	}
	if c.Click(a1, t0.Add(2*time.Second)) {
		t.Error("click on collapsed node should be ignored")
	}
	if c.Focus() != mustFind(t, p, "B") {
		t.Error("ignored click must not change focus")
	}
}

func TestTransitionCompletesExactly(t *testing.T) {
	p := mustBuild(t, hierarchy.Branch("root",
		hierarchy.Branch("A", hierarchy.Leaf("a1", 30)),
		hierarchy.Branch("B", hierarchy.Leaf("b1", 50), hierarchy.Leaf("b2", 20)),
	))
	b := mustFind(t, p, "B")
	c := New(p)
	if !c.Click(b, t0) {
		t.Fatal("click on B refused")
	}
	if c.Done() {
		t.Fatal("transition should be running")
	}

	mid := c.Frame(t0.Add(DefaultDuration / 2))
	if mid.Done || mid.Progress <= 0 || mid.Progress >= 1 {
		t.Errorf("mid frame progress %v done %v", mid.Progress, mid.Done)
	}

	end := c.Frame(t0.Add(DefaultDuration))
	if !end.Done || !c.Done() {
		t.Fatal("transition should be done")
	}
	if !c.Current().Equal(Target(p, b)) {
		t.Error("current must equal target exactly on completion")
	}
	want := geometry.Rect{X0: 0, X1: geometry.FullCircle, Y0: 0, Y1: 1}
	if got := c.Current().Rect(b); got != want {
		t.Errorf("B = %+v, want %+v", got, want)
	}
}

func TestResetRestoresInitial(t *testing.T) {
	p := mustBuild(t, nestedTree())
	c := New(p)
	now := t0

	for _, path := range [][]string{{"B"}, {"B", "B1"}} {
		if !c.Click(mustFind(t, p, path...), now) {
			t.Fatalf("click %v refused", path)
		}
		now = now.Add(time.Second)
		c.Frame(now)
	}
	if !c.Reset(now) {
		t.Fatal("reset refused")
	}
	c.Frame(now.Add(time.Second))

	if c.Focus() != hierarchy.RootID {
		t.Errorf("focus = %d after reset", c.Focus())
	}
	if !c.Current().Equal(Initial(p)) {
		t.Error("reset must restore the initial layout bit for bit")
	}
}

func TestSupersedeIsContinuous(t *testing.T) {
	p := mustBuild(t, nestedTree())
	c := New(p)
	c.Click(mustFind(t, p, "B"), t0)

	now := t0.Add(DefaultDuration / 2)
	c.Frame(now)
	before := c.Current().Clone()

	b1 := mustFind(t, p, "B", "B1")
	if !c.Click(b1, now) {
		t.Fatal("mid-flight click on B1 refused")
	}
	if !c.Current().Equal(before) {
		t.Error("superseding click must start from the on-screen coordinates")
	}
	if c.Focus() != b1 {
		t.Errorf("focus = %d, want %d", c.Focus(), b1)
	}

	c.Frame(now.Add(DefaultDuration))
	if !c.Current().Equal(Target(p, b1)) {
		t.Error("superseding transition must end on its own target")
	}
}

func TestFrameTieBreak(t *testing.T) {
	p := mustBuild(t, nestedTree())
	a := mustFind(t, p, "A")
	a11 := mustFind(t, p, "A", "A1", "a11")
	b11 := mustFind(t, p, "B", "B1", "b11")

	c := New(p, WithEasing(ease.Linear), WithDuration(time.Second))
	c.Click(mustFind(t, p, "B"), t0)
	mid := c.Frame(t0.Add(500 * time.Millisecond))

	arcs := make(map[hierarchy.NodeID]ArcState)
	for _, s := range mid.Arcs {
		arcs[s.ID] = s
	}

	// A was showing, so it fades out and loses pointer events at once.
	if s, ok := arcs[a]; !ok {
		t.Error("fading arc A missing from mid frame")
	} else if s.FillOpacity != geometry.ParentOpacity/2 || s.Interactive {
		t.Errorf("A mid state = %+v", s)
	}
	// b11 will show, so it fades in.
	if s, ok := arcs[b11]; !ok {
		t.Error("appearing arc b11 missing from mid frame")
	} else if s.FillOpacity != geometry.LeafOpacity/2 || !s.Interactive {
		t.Errorf("b11 mid state = %+v", s)
	}
	// a11 is hidden at both ends.
	if _, ok := arcs[a11]; ok {
		t.Error("arc hidden at both ends must be omitted")
	}

	end := c.Frame(t0.Add(time.Second))
	for _, s := range end.Arcs {
		if s.ID == a {
			t.Error("faded arc should be gone once idle")
		}
		if s.FillOpacity == 0 {
			t.Errorf("idle frame holds invisible arc %d", s.ID)
		}
	}
}

func TestZeroDuration(t *testing.T) {
	p := mustBuild(t, nestedTree())
	b := mustFind(t, p, "B")
	c := New(p, WithDuration(0))
	c.Click(b, t0)
	if !c.Done() || !c.Current().Equal(Target(p, b)) {
		t.Error("zero duration click should land on target immediately")
	}
}

func TestLinearProgress(t *testing.T) {
	p := mustBuild(t, nestedTree())
	b := mustFind(t, p, "B")
	c := New(p, WithEasing(ease.Linear), WithDuration(time.Second))
	c.Click(b, t0)
	c.Frame(t0.Add(500 * time.Millisecond))

	want := Interpolate(Initial(p), Target(p, b), 0.5)
	if !c.Current().Equal(want) {
		t.Error("linear easing at half time should sit at the midpoint")
	}
}

func TestHitTest(t *testing.T) {
	p := mustBuild(t, nestedTree())
	c := New(p)
	const radius = 100

	tests := []struct {
		name   string
		x, y   float64
		want   string
		wantOK bool
	}{
		{"centre", 0, 0, "", true},
		{"inside reset circle", 0, -50, "", true},
		{"first ring at top", 1, -150, "B", true},
		{"second ring at top", 1, -250, "B1", true},
		{"beyond outer ring", 1, -350, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := c.HitTest(tt.x, tt.y, radius)
			if ok != tt.wantOK {
				t.Fatalf("HitTest ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			n, _ := p.Node(id)
			if n.Name() != tt.want && !(tt.want == "" && id == hierarchy.RootID) {
				t.Errorf("hit %q, want %q", n.Name(), tt.want)
			}
		})
	}

	if _, ok := c.HitTest(0, 0, 0); ok {
		t.Error("zero radius should never hit")
	}
}
