package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// Converter is the program Rasterize runs. It reads SVG on stdin and
// writes the converted document to stdout.
var Converter = "rsvg-convert"

// ErrNoConverter is returned when Converter is not installed.
var ErrNoConverter = errors.New("svg converter not found (install librsvg: brew install librsvg, apt install librsvg2-bin)")

// Rasterize converts an SVG document to "png" or "pdf". Scale multiplies
// the pixel size of PNG output and is ignored for PDF.
func Rasterize(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	args := []string{"-f", format}
	switch format {
	case "png":
		if scale <= 0 {
			scale = 1
		}
		args = append(args, "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	case "pdf":
	default:
		return nil, fmt.Errorf("rasterize: unsupported format %q", format)
	}

	bin, err := exec.LookPath(Converter)
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", format, ErrNoConverter)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", Converter, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}
