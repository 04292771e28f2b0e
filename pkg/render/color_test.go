package render

import (
	"testing"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

func TestRainbow(t *testing.T) {
	tests := []struct {
		t    float64
		want string
	}{
		{0, "#6e40aa"},
		{0.25, "#ff5e63"},
		{0.5, "#aff05b"},
		{1, "#6e40aa"},
		{1.5, "#aff05b"},
		{-0.5, "#aff05b"},
	}
	for _, tt := range tests {
		if got := Rainbow(tt.t).Hex(); got != tt.want {
			t.Errorf("Rainbow(%v) = %s, want %s", tt.t, got, tt.want)
		}
	}
}

func TestQuantize(t *testing.T) {
	if got := Quantize(Rainbow, 0); got != nil {
		t.Errorf("Quantize(0) = %v", got)
	}
	if got := Quantize(Rainbow, 1); len(got) != 1 || got[0].Hex() != "#6e40aa" {
		t.Errorf("Quantize(1) = %v", got)
	}
	got := Quantize(Rainbow, 3)
	if len(got) != 3 || got[1].Hex() != "#aff05b" || got[2].Hex() != got[0].Hex() {
		t.Errorf("Quantize(3) = %v", got)
	}
}

func TestPaletteByBranch(t *testing.T) {
	p, err := hierarchy.Build(hierarchy.Branch("root",
		hierarchy.Branch("A", hierarchy.Leaf("a1", 5), hierarchy.Branch("a2", hierarchy.Leaf("a21", 5))),
		hierarchy.Leaf("B", 3),
		hierarchy.Leaf("C", 1),
	))
	if err != nil {
		t.Fatal(err)
	}
	pal := NewPalette(p)
	find := func(path ...string) hierarchy.NodeID {
		id, err := p.Find(path...)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	a := pal.Color(find("A"))
	if a != "#6e40aa" {
		t.Errorf("first branch = %s, want first stop", a)
	}
	if got := pal.Color(find("A", "a2", "a21")); got != a {
		t.Errorf("descendant colour %s, want branch colour %s", got, a)
	}
	// Four stops over three branches: A, B, C get t = 0, 1/3, 2/3.
	if got := pal.Color(find("B")); got != "#ff8c38" {
		t.Errorf("B = %s", got)
	}
	if got := pal.Color(find("C")); got != "#28ea8d" {
		t.Errorf("C = %s", got)
	}
}
