package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	pkgio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/render/nodelink"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, c *Chart, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, c, opts)
	}
	return renderSunburst(ctx, c, opts)
}

// Scene returns the settled scene of the chart zoomed to opts.Focus.
func Scene(c *Chart, opts Options) (render.Scene, error) {
	id, err := c.Resolve(opts.Focus)
	if err != nil {
		return render.Scene{}, err
	}
	ctrl := zoom.New(c.Partition, zoom.WithDuration(0))
	now := time.Now()
	if err := zoomTo(ctrl, id, now); err != nil {
		return render.Scene{}, fmt.Errorf("focus %q: %w", opts.Focus, err)
	}
	return render.Snapshot(ctrl, now, opts.RenderOptions()), nil
}

// zoomTo clicks down from the root to id one level at a time, so a node
// deeper than the visible rings can still be focused.
func zoomTo(ctrl *zoom.Controller, id hierarchy.NodeID, now time.Time) error {
	if id == hierarchy.RootID {
		return nil
	}
	p := ctrl.Partition()
	path := p.Ancestors(id)
	slices.Reverse(path)
	path = append(path[1:], id)
	for _, step := range path {
		if !ctrl.Click(step, now) {
			n, _ := p.Node(step)
			return errors.New(errors.ErrCodeNotClickable, "cannot zoom to %q", n.Name())
		}
	}
	return nil
}

// renderSunburst generates sunburst outputs.
func renderSunburst(ctx context.Context, c *Chart, opts Options) (map[string][]byte, error) {
	scene, err := Scene(c, opts)
	if err != nil {
		return nil, err
	}

	var svg []byte
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG, FormatPNG, FormatPDF:
			if svg == nil {
				svg = render.RenderSVG(scene)
			}
			switch format {
			case FormatSVG:
				data = svg
			case FormatPNG:
				data, err = render.Rasterize(ctx, svg, format, DefaultPNGScale)
			case FormatPDF:
				data, err = render.Rasterize(ctx, svg, format, 0)
			}
		case FormatJSON:
			data, err = render.RenderJSON(scene)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported sunburst format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderNodelink generates node-link outputs from the DOT form of the tree.
// The diagram always shows the whole tree; focus does not apply.
func renderNodelink(ctx context.Context, c *Chart, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(c.Partition, nodelink.Options{Detailed: opts.Detailed, MaxDepth: opts.MaxDepth})

	var svg []byte
	drawn := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.SVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = drawn()
		case FormatPNG, FormatPDF:
			if data, err = drawn(); err == nil {
				data, err = render.Rasterize(ctx, data, format, DefaultPNGScale)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = pkgio.WriteJSON(pkgio.FromPartition(c.Partition, nil, hierarchy.RootID), &buf)
			data = buf.Bytes()
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
