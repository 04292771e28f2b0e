package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// Document is the serialized form of a partition under one zoom layout.
type Document struct {
	Height      int              `json:"height"`
	TotalWeight float64          `json:"total_weight"`
	Focus       hierarchy.NodeID `json:"focus"`
	Nodes       []Node           `json:"nodes"`
}

// Node is one serialized partition node.
type Node struct {
	ID            hierarchy.NodeID `json:"id"`
	Parent        hierarchy.NodeID `json:"parent"`
	Name          string           `json:"name"`
	Depth         int              `json:"depth"`
	Weight        float64          `json:"weight"`
	Leaf          bool             `json:"leaf,omitempty"`
	Rect          geometry.Rect    `json:"rect"`
	Category      string           `json:"category,omitempty"`
	Maturity      string           `json:"maturity,omitempty"`
	Description   string           `json:"description,omitempty"`
	Opportunities string           `json:"opportunities,omitempty"`
	Tensions      string           `json:"tensions,omitempty"`
}

// FromPartition captures p with coordinates taken from l. A nil layout uses
// the unzoomed coordinates.
func FromPartition(p *hierarchy.Partition, l zoom.Layout, focus hierarchy.NodeID) Document {
	if l == nil {
		l = zoom.Initial(p)
	}
	doc := Document{
		Height:      p.Height(),
		TotalWeight: p.TotalWeight(),
		Focus:       focus,
		Nodes:       make([]Node, 0, p.Len()),
	}
	for _, n := range p.Nodes() {
		nd := Node{
			ID:     n.ID,
			Parent: n.Parent,
			Name:   n.Name(),
			Depth:  n.Depth,
			Weight: n.Weight,
			Leaf:   n.IsLeaf(),
			Rect:   l.Rect(n.ID),
		}
		if d := n.Data; d != nil {
			nd.Category = d.Category
			nd.Maturity = d.Maturity
			nd.Description = d.Description
			nd.Opportunities = d.Opportunities
			nd.Tensions = d.Tensions
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	return doc
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
