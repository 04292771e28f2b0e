package hierarchy

import (
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/geometry"
)

// NodeID identifies a node within one Partition.
type NodeID int

// NoParent is the Parent of the root node.
const NoParent NodeID = -1

// RootID is the ID of the root node of every Partition.
const RootID NodeID = 0

// Node is one partitioned tree node.
type Node struct {
	ID       NodeID
	Parent   NodeID
	Children []NodeID // heaviest first
	Depth    int
	Weight   float64
	Data     *TreeNode

	// Angular span as a fraction of the full circle.
	u0, u1 float64
}

// Name returns the node's display name.
func (n *Node) Name() string {
	if n.Data == nil {
		return ""
	}
	return n.Data.Name
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Fraction returns the node's angular span as fractions of the full circle.
func (n *Node) Fraction() (u0, u1 float64) { return n.u0, n.u1 }

// Rect returns the node's base coordinates: its angular span in radians and
// the radial band [depth, depth+1).
func (n *Node) Rect() geometry.Rect {
	return geometry.Rect{
		X0: n.u0 * geometry.FullCircle,
		X1: n.u1 * geometry.FullCircle,
		Y0: float64(n.Depth),
		Y1: float64(n.Depth) + 1,
	}
}

// Partition is the immutable result of [Build].
type Partition struct {
	nodes  []Node
	height int
}

// Len returns the number of nodes, root included.
func (p *Partition) Len() int { return len(p.nodes) }

// Height returns the depth of the deepest node.
func (p *Partition) Height() int { return p.height }

// Root returns the root node.
func (p *Partition) Root() *Node { return &p.nodes[RootID] }

// TotalWeight returns the root's weight, the sum of all leaf values.
func (p *Partition) TotalWeight() float64 { return p.nodes[RootID].Weight }

// Node returns the node with the given ID.
func (p *Partition) Node(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(p.nodes) {
		return nil, false
	}
	return &p.nodes[id], true
}

// Nodes returns all nodes in pre-order. The slice must not be modified.
func (p *Partition) Nodes() []Node { return p.nodes }

// Walk calls fn for every node in pre-order until fn returns false.
func (p *Partition) Walk(fn func(n *Node) bool) {
	for i := range p.nodes {
		if !fn(&p.nodes[i]) {
			return
		}
	}
}

// Rects returns every node's base coordinates indexed by NodeID. This is the
// layout before any zoom.
func (p *Partition) Rects() []geometry.Rect {
	out := make([]geometry.Rect, len(p.nodes))
	for i := range p.nodes {
		out[i] = p.nodes[i].Rect()
	}
	return out
}

// Ancestors returns the IDs of id's ancestors, nearest first. The root has
// no ancestors.
func (p *Partition) Ancestors(id NodeID) []NodeID {
	n, ok := p.Node(id)
	if !ok {
		return nil
	}
	var out []NodeID
	for n.Parent != NoParent {
		out = append(out, n.Parent)
		n = &p.nodes[n.Parent]
	}
	return out
}

// IsAncestor reports whether a is a strict ancestor of d.
func (p *Partition) IsAncestor(a, d NodeID) bool {
	for _, id := range p.Ancestors(d) {
		if id == a {
			return true
		}
	}
	return false
}

// TopAncestor returns the depth-1 node on the path to id, which decides the
// colour of a whole branch. The root maps to itself.
func (p *Partition) TopAncestor(id NodeID) NodeID {
	n, ok := p.Node(id)
	if !ok {
		return NoParent
	}
	for n.Depth > 1 {
		n = &p.nodes[n.Parent]
	}
	return n.ID
}

// Path returns the names from the root's children down to id. The root's
// path is empty.
func (p *Partition) Path(id NodeID) []string {
	n, ok := p.Node(id)
	if !ok {
		return nil
	}
	out := make([]string, n.Depth)
	for n.Parent != NoParent {
		out[n.Depth-1] = n.Name()
		n = &p.nodes[n.Parent]
	}
	return out
}

// Find resolves a path of names below the root. An empty path is the root.
// When siblings share a name the heaviest one wins.
func (p *Partition) Find(path ...string) (NodeID, error) {
	cur := p.Root()
	for i, name := range path {
		next := NoParent
		for _, c := range cur.Children {
			if p.nodes[c].Name() == name {
				next = c
				break
			}
		}
		if next == NoParent {
			return NoParent, errors.New(errors.ErrCodeNodeNotFound, "no node %q under %v", name, path[:i])
		}
		cur = &p.nodes[next]
	}
	return cur.ID, nil
}

// Leaves returns the IDs of all leaves in pre-order.
func (p *Partition) Leaves() []NodeID {
	var out []NodeID
	for i := range p.nodes {
		if p.nodes[i].IsLeaf() {
			out = append(out, NodeID(i))
		}
	}
	return out
}
