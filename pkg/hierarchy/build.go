package hierarchy

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// weighted is a tree node with its summed weight and sorted children,
// computed before IDs are assigned.
type weighted struct {
	tn     *TreeNode
	weight float64
	kids   []*weighted
}

// Build partitions the tree rooted at root.
//
// It returns an error with code [errors.ErrCodeInvalidTree] when the tree is
// empty, when a leaf value is negative or not finite, when a node appears
// twice, or when the total weight is not positive. Missing leaf values count
// as zero; such leaves get a zero-width span.
func Build(root *TreeNode) (*Partition, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree is empty")
	}
	if root.IsLeaf() && root.Value == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "root %q has neither children nor a value", root.Name)
	}

	seen := make(map[*TreeNode]bool)
	w, err := weigh(root, seen)
	if err != nil {
		return nil, err
	}
	if !(w.weight > 0) || math.IsInf(w.weight, 0) {
		return nil, errors.New(errors.ErrCodeInvalidTree, "total weight must be positive, got %g", w.weight)
	}

	p := &Partition{nodes: make([]Node, 0, len(seen))}
	p.place(w, NoParent, 0, 0, 1)
	return p, nil
}

// weigh sums weights bottom-up and sorts every child list heaviest first.
func weigh(tn *TreeNode, seen map[*TreeNode]bool) (*weighted, error) {
	if tn == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "nil child node")
	}
	if seen[tn] {
		return nil, errors.New(errors.ErrCodeInvalidTree, "node %q appears more than once", tn.Name)
	}
	seen[tn] = true

	w := &weighted{tn: tn}
	if tn.IsLeaf() {
		if tn.Value != nil {
			v := *tn.Value
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeInvalidTree, "leaf %q has non-finite value", tn.Name)
			}
			if v < 0 {
				return nil, errors.New(errors.ErrCodeInvalidTree, "leaf %q has negative value %g", tn.Name, v)
			}
			w.weight = v
		}
		return w, nil
	}

	w.kids = make([]*weighted, 0, len(tn.Children))
	for _, c := range tn.Children {
		kw, err := weigh(c, seen)
		if err != nil {
			return nil, err
		}
		w.weight += kw.weight
		w.kids = append(w.kids, kw)
	}
	if math.IsInf(w.weight, 0) {
		return nil, errors.New(errors.ErrCodeInvalidTree, "weight of %q overflows", tn.Name)
	}
	slices.SortStableFunc(w.kids, func(a, b *weighted) int {
		return cmp.Compare(b.weight, a.weight)
	})
	return w, nil
}

// place appends w and its subtree in pre-order, dividing [u0, u1) among the
// children in proportion to their weight.
func (p *Partition) place(w *weighted, parent NodeID, depth int, u0, u1 float64) NodeID {
	id := NodeID(len(p.nodes))
	p.nodes = append(p.nodes, Node{
		ID:     id,
		Parent: parent,
		Depth:  depth,
		Weight: w.weight,
		Data:   w.tn,
		u0:     u0,
		u1:     u1,
	})
	if depth > p.height {
		p.height = depth
	}
	if len(w.kids) == 0 {
		return id
	}

	children := make([]NodeID, 0, len(w.kids))
	k := 0.0
	if w.weight > 0 {
		k = (u1 - u0) / w.weight
	}
	// Children are sorted, so zero-weight ones trail; the last weighted
	// child closes the span and the rest collapse onto u1.
	last := -1
	for i, kid := range w.kids {
		if kid.weight > 0 {
			last = i
		}
	}
	cursor := u0
	for i, kid := range w.kids {
		end := cursor + kid.weight*k
		if i == last {
			end = u1
		}
		children = append(children, p.place(kid, id, depth+1, cursor, end))
		cursor = end
	}
	p.nodes[id].Children = children
	return id
}
