package pipeline

import (
	"bytes"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	pkgio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// Layout returns the partition document as seen after zooming to opts.Focus.
// An empty focus gives the unzoomed coordinates.
func Layout(c *Chart, opts Options) (pkgio.Document, error) {
	id, err := c.Resolve(opts.Focus)
	if err != nil {
		return pkgio.Document{}, err
	}
	var l zoom.Layout
	if id != hierarchy.RootID {
		l = zoom.Target(c.Partition, id)
	}
	return pkgio.FromPartition(c.Partition, l, id), nil
}

// MarshalLayout encodes the layout document for opts as JSON.
func MarshalLayout(c *Chart, opts Options) ([]byte, error) {
	doc, err := Layout(c, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
