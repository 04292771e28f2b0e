package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateSize(t *testing.T) {
	for _, size := range []float64{932, MinSize, MaxSize} {
		if err := ValidateSize(size); err != nil {
			t.Errorf("ValidateSize(%v) = %v", size, err)
		}
	}
	for _, size := range []float64{0, -500, 10, MaxSize + 1, math.NaN(), math.Inf(1)} {
		err := ValidateSize(size)
		if !Is(err, ErrCodeInvalidSize) {
			t.Errorf("ValidateSize(%v) = %v, want %s", size, err, ErrCodeInvalidSize)
		}
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name     string
		validate func(string) error
		input    string
		want     Code // empty when the input is accepted
	}{
		{"node accented", ValidateNodeName, "Energía", ""},
		{"node spaces", ValidateNodeName, "Hydrogen storage", ""},
		{"node empty", ValidateNodeName, "", ErrCodeInvalidInput},
		{"node slash", ValidateNodeName, "a/b", ErrCodeInvalidInput},
		{"node newline", ValidateNodeName, "foo\nbar", ErrCodeInvalidInput},
		{"node too long", ValidateNodeName, strings.Repeat("x", maxNameLen+1), ErrCodeInvalidInput},
		{"path relative", ValidatePath, "out/chart.svg", ""},
		{"path absolute", ValidatePath, "/tmp/chart.svg", ""},
		{"path slash allowed", ValidatePath, "a/b/c.png", ""},
		{"path empty", ValidatePath, "", ErrCodeInvalidPath},
		{"path null byte", ValidatePath, "chart\x00.svg", ErrCodeInvalidPath},
		{"path too long", ValidatePath, strings.Repeat("p", maxPathLen+1), ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate(tt.input)
			if tt.want == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if got := CodeOf(err); got != tt.want {
				t.Errorf("code = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}
