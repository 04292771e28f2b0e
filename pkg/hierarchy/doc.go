// Package hierarchy builds the weighted, depth-partitioned layout of a tree.
//
// The input is a [TreeNode] tree as supplied by a data provider: leaves carry
// a numeric value, internal nodes carry children, and every node may carry
// free-form metadata. [Build] turns it into a [Partition], an immutable arena
// of [Node] values indexed by [NodeID].
//
// # Partitioning
//
// Weights are summed bottom-up. Each node's children are ordered by weight,
// heaviest first, with ties kept in input order, and then laid out clockwise
// across the parent's angular span in proportion to their weight. The last
// child always ends exactly where its parent ends, so rounding never leaves a
// gap. Every node occupies the radial band [depth, depth+1).
//
// # Node IDs
//
// IDs are assigned in pre-order after sorting, so the root is always 0 and a
// node's descendants occupy a contiguous ID range following it. IDs are only
// stable for a single Build; a new dataset produces a new arena.
//
// # Usage
//
//	root, err := hierarchy.ImportJSON("tree.json")
//	if err != nil {
//	    return err
//	}
//	p, err := hierarchy.Build(root)
//	if err != nil {
//	    return err // errors.ErrCodeInvalidTree
//	}
//	for _, n := range p.Nodes() {
//	    fmt.Println(n.Name(), n.Rect())
//	}
package hierarchy
