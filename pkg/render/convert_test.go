package render

import (
	"context"
	"errors"
	"testing"
)

func TestRasterizeMissingConverter(t *testing.T) {
	old := Converter
	Converter = "sunburst-no-such-converter"
	defer func() { Converter = old }()

	for _, format := range []string{"png", "pdf"} {
		_, err := Rasterize(context.Background(), []byte("<svg/>"), format, 2)
		if !errors.Is(err, ErrNoConverter) {
			t.Errorf("Rasterize(%s) error = %v, want ErrNoConverter", format, err)
		}
	}
}

func TestRasterizeUnsupportedFormat(t *testing.T) {
	_, err := Rasterize(context.Background(), []byte("<svg/>"), "gif", 1)
	if err == nil || errors.Is(err, ErrNoConverter) {
		t.Errorf("Rasterize(gif) error = %v, want unsupported format", err)
	}
}
