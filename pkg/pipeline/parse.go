package pipeline

import (
	"bytes"
	"strings"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Chart is a built partition together with the tree it came from.
type Chart struct {
	Tree      *hierarchy.TreeNode
	Partition *hierarchy.Partition
	// Hash identifies the tree's content; formatting and legacy key names
	// do not affect it.
	Hash string
}

// Parse decodes tree JSON and computes its content hash.
func Parse(data []byte) (*hierarchy.TreeNode, string, error) {
	tree, err := hierarchy.ReadTree(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return tree, TreeHash(tree), nil
}

// TreeHash hashes the canonical encoding of tree.
func TreeHash(tree *hierarchy.TreeNode) string {
	var buf bytes.Buffer
	if err := hierarchy.WriteTree(&buf, tree); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

// SplitPath splits a slash-separated focus path into node names. The empty
// path and "/" both name the root.
func SplitPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}
	names := strings.Split(path, "/")
	for _, n := range names {
		if err := errors.ValidateNodeName(n); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// Resolve finds the node named by a slash-separated path.
func (c *Chart) Resolve(path string) (hierarchy.NodeID, error) {
	names, err := SplitPath(path)
	if err != nil {
		return hierarchy.NoParent, err
	}
	return c.Partition.Find(names...)
}
