package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// ReadJSON decodes a layout document from r and validates its structure.
//
// ReadJSON returns an error with code [errors.ErrCodeInvalidInput] if the
// document has no nodes, if IDs are not 0..n-1 in order, or if a node's
// parent does not precede it at depth-1. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if len(d.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout has no nodes")
	}
	for i, n := range d.Nodes {
		if n.ID != hierarchy.NodeID(i) {
			return errors.New(errors.ErrCodeInvalidInput, "node %d: id %d out of order", i, n.ID)
		}
		if i == 0 {
			if n.Parent != hierarchy.NoParent || n.Depth != 0 {
				return errors.New(errors.ErrCodeInvalidInput, "node 0 must be the root")
			}
			continue
		}
		if n.Parent < 0 || int(n.Parent) >= i {
			return errors.New(errors.ErrCodeInvalidInput, "node %d: parent %d does not precede it", i, n.Parent)
		}
		if d.Nodes[n.Parent].Depth != n.Depth-1 {
			return errors.New(errors.ErrCodeInvalidInput, "node %d: depth %d under parent at depth %d", i, n.Depth, d.Nodes[n.Parent].Depth)
		}
	}
	return nil
}

// Tree rebuilds the input tree. Leaves get their weight as value.
func (d *Document) Tree() *hierarchy.TreeNode {
	trees := make([]*hierarchy.TreeNode, len(d.Nodes))
	for i, n := range d.Nodes {
		tn := &hierarchy.TreeNode{
			Name:          n.Name,
			Category:      n.Category,
			Maturity:      n.Maturity,
			Description:   n.Description,
			Opportunities: n.Opportunities,
			Tensions:      n.Tensions,
		}
		if n.Leaf {
			w := n.Weight
			tn.Value = &w
		}
		trees[i] = tn
		if i > 0 {
			parent := trees[n.Parent]
			parent.Children = append(parent.Children, tn)
		}
	}
	return trees[0]
}

// ImportJSON reads a layout document from a JSON file at path.
//
// ImportJSON returns the same validation errors as [ReadJSON], and an error
// with code [errors.ErrCodeFileNotFound] when path does not exist.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
