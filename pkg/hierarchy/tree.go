package hierarchy

import (
	"bytes"
	"encoding/json"
)

// TreeNode is one node of the input tree.
//
// Leaves carry Value; internal nodes carry Children and their own Value is
// ignored. Metadata fields are optional and default to the empty string.
type TreeNode struct {
	Name          string      `json:"name" bson:"name"`
	Value         *float64    `json:"value,omitempty" bson:"value,omitempty"`
	Category      string      `json:"category,omitempty" bson:"category,omitempty"`
	Maturity      string      `json:"maturity,omitempty" bson:"maturity,omitempty"`
	Description   string      `json:"description,omitempty" bson:"description,omitempty"`
	Opportunities string      `json:"opportunities,omitempty" bson:"opportunities,omitempty"`
	Tensions      string      `json:"tensions,omitempty" bson:"tensions,omitempty"`
	Children      []*TreeNode `json:"children,omitempty" bson:"children,omitempty"`
}

// Leaf returns a leaf node with the given name and value.
func Leaf(name string, value float64) *TreeNode {
	return &TreeNode{Name: name, Value: &value}
}

// Branch returns an internal node with the given children.
func Branch(name string, children ...*TreeNode) *TreeNode {
	return &TreeNode{Name: name, Children: children}
}

// IsLeaf reports whether n has no children.
func (n *TreeNode) IsLeaf() bool { return len(n.Children) == 0 }

// wireNode is the decoding shape of a TreeNode. The Spanish keys are the
// field names used by the first datasets this chart was built for.
type wireNode struct {
	Name          text        `json:"name"`
	Value         *float64    `json:"value"`
	Category      text        `json:"category"`
	Categoria     text        `json:"categoria"`
	Maturity      text        `json:"maturity"`
	Madurez       text        `json:"madurez"`
	Description   text        `json:"description"`
	Opportunities text        `json:"opportunities"`
	Oportuniades  text        `json:"oportuniades"`
	Oportunidades text        `json:"oportunidades"`
	Tensions      text        `json:"tensions"`
	Tensiones     text        `json:"tensiones"`
	Children      []*TreeNode `json:"children"`
}

// UnmarshalJSON decodes a node, accepting legacy metadata keys and tolerating
// metadata of the wrong JSON type.
func (n *TreeNode) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = TreeNode{
		Name:          string(w.Name),
		Value:         w.Value,
		Category:      firstNonEmpty(w.Category, w.Categoria),
		Maturity:      firstNonEmpty(w.Maturity, w.Madurez),
		Description:   string(w.Description),
		Opportunities: firstNonEmpty(w.Opportunities, w.Oportunidades, w.Oportuniades),
		Tensions:      firstNonEmpty(w.Tensions, w.Tensiones),
		Children:      w.Children,
	}
	return nil
}

func firstNonEmpty(vals ...text) string {
	for _, v := range vals {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

// text decodes any JSON scalar into a string. Numbers and booleans keep their
// literal form (a maturity level is often written as 7 rather than "7");
// null, objects and arrays decode to the empty string.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = ""
			return nil
		}
		*t = text(s)
	case '{', '[', 'n':
		*t = ""
	default:
		*t = text(data)
	}
	return nil
}
