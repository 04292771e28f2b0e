package hierarchy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// ReadTree decodes a tree from JSON.
func ReadTree(r io.Reader) (*TreeNode, error) {
	var root TreeNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode tree")
	}
	return &root, nil
}

// ImportJSON reads a tree from a JSON file at path.
func ImportJSON(path string) (*TreeNode, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

// WriteTree encodes a tree as indented JSON using the canonical field names.
func WriteTree(w io.Writer, root *TreeNode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
