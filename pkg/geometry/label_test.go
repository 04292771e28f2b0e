package geometry

import (
	"math"
	"testing"
)

func TestLabelTransform(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want string
	}{
		{"right half", Rect{0, math.Pi / 2, 1, 2}, "rotate(-45) translate(150,0) rotate(0)"},
		{"left half", Rect{math.Pi, 3 * math.Pi / 2, 1, 2}, "rotate(135) translate(150,0) rotate(180)"},
		{"second ring", Rect{0, math.Pi, 2, 3}, "rotate(0) translate(250,0) rotate(0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelTransform(tt.r, 100).String(); got != tt.want {
				t.Errorf("LabelTransform() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Hydrogen", 0, "Hydrogen"},
		{"Hydrogen", 20, "Hydrogen"},
		{"Hydrogen", 8, "Hydrogen"},
		{"Hydrogen", 6, "Hydr.."},
		{"Energía solar", 7, "Energ.."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
