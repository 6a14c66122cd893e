// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package upgma

import (
	"log/slog"
	"slices"
)

// A Tree is a rooted tree.
//
// Nodes are identified by an integer ID.
// Terminals have the IDs 0 to N-1,
// and the internal nodes are numbered
// in the order in which they were created,
// so the root is always the last node.
//
// Trees made with Build are binary and ultrametric,
// and their terminals are in the same order
// as the rows of the distance matrix.
// Trees read with ReadNewick have their terminals
// in the order found in the file.
type Tree struct {
	nodes []node
	root  int
}

type node struct {
	label    string
	height   float64
	parent   int
	length   float64
	children []int
}

func (t *Tree) addTerm(label string) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{
		label:  label,
		parent: -1,
	})
	return id
}

// addNode adds a new internal node
// as the parent of the nodes a and b.
// If the height is smaller than the height
// of any of the children,
// it is set to the height of that child
// (a zero length branch).
func (t *Tree) addNode(a, b int, height float64, logger *slog.Logger) int {
	id := len(t.nodes)
	for _, c := range []int{a, b} {
		if h := t.nodes[c].height; h > height {
			logger.Warn("numeric clamp: negative branch length",
				"node", id,
				"child", c,
				"length", height-h,
			)
			height = h
		}
	}

	t.nodes = append(t.nodes, node{
		height:   height,
		parent:   -1,
		children: []int{a, b},
	})
	for _, c := range []int{a, b} {
		t.nodes[c].parent = id
		t.nodes[c].length = height - t.nodes[c].height
	}
	return id
}

// Branch returns the length of the branch
// that connects a node with its parent.
// The root has a zero length branch.
func (t *Tree) Branch(id int) float64 {
	return t.nodes[id].length
}

// Children returns the IDs of the children of a node.
func (t *Tree) Children(id int) []int {
	return slices.Clone(t.nodes[id].children)
}

// Height returns the height of a node,
// i.e., the distance at which its descendants were merged.
// Terminals have a height of zero.
func (t *Tree) Height(id int) float64 {
	return t.nodes[id].height
}

// IsTerm returns true if the node is a terminal.
func (t *Tree) IsTerm(id int) bool {
	return len(t.nodes[id].children) == 0
}

// Label returns the genome label of a terminal.
// Internal nodes do not have labels.
func (t *Tree) Label(id int) string {
	return t.nodes[id].label
}

// Len returns the number of nodes of the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns the IDs of the tree nodes.
func (t *Tree) Nodes() []int {
	ids := make([]int, len(t.nodes))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Parent returns the ID of the parent of a node.
// The root returns -1.
func (t *Tree) Parent(id int) int {
	return t.nodes[id].parent
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return t.root
}

// Terms returns the labels of the terminals
// in lexicographic order.
func (t *Tree) Terms() []string {
	var terms []string
	for _, n := range t.nodes {
		if len(n.children) == 0 {
			terms = append(terms, n.label)
		}
	}
	slices.Sort(terms)
	return terms
}
