// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements rooted phylogenetic trees
// stored as an arena of nodes.
//
// Nodes are identified by an integer ID,
// that is the index of the node in the arena.
// A node knows its parent (-1 at the root)
// and its ordered children,
// so there are no owning cycles between nodes.
// When a clade is replaced,
// its old nodes stay in the arena
// but are no longer reachable from the root.
//
// A Tree is not safe for concurrent mutation.
package phylo

import (
	"fmt"
	"slices"
	"strings"
)

// NoValue is the value used for undefined
// branch lengths and supports.
const NoValue = -1.0

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	name  string
	root  int
	nodes []*node
}

type node struct {
	id       int
	parent   int
	children []int

	taxon   string
	brLen   float64
	support float64
}

// New creates a new tree with a single root node.
func New(name string) *Tree {
	t := &Tree{
		name: strings.Join(strings.Fields(name), " "),
	}
	t.root = t.newNode(-1, "")
	return t
}

func (t *Tree) newNode(parent int, taxon string) int {
	n := &node{
		id:      len(t.nodes),
		parent:  parent,
		taxon:   taxon,
		brLen:   NoValue,
		support: NoValue,
	}
	t.nodes = append(t.nodes, n)
	return n.id
}

// Add adds a new node as a child of the indicated parent,
// and returns the ID of the new node.
func (t *Tree) Add(parent int, taxon string) int {
	p := t.node(parent)
	id := t.newNode(p.id, taxon)
	p.children = append(p.children, id)
	return id
}

func (t *Tree) node(id int) *node {
	if id < 0 || id >= len(t.nodes) {
		panic(fmt.Sprintf("phylo: node %d not in tree %q", id, t.name))
	}
	return t.nodes[id]
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// SetName sets the name of the tree.
func (t *Tree) SetName(name string) {
	t.name = strings.Join(strings.Fields(name), " ")
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return t.root
}

// IsRoot returns true if the node is the root of the tree.
func (t *Tree) IsRoot(id int) bool {
	return t.node(id).id == t.root
}

// IsTerm returns true if the node is a terminal
// (i.e., a node without children).
func (t *Tree) IsTerm(id int) bool {
	return len(t.node(id).children) == 0
}

// Parent returns the ID of the parent of a node.
// It returns -1 for the root.
func (t *Tree) Parent(id int) int {
	if id == t.root {
		return -1
	}
	return t.node(id).parent
}

// Children returns the IDs of the children of a node.
func (t *Tree) Children(id int) []int {
	return slices.Clone(t.node(id).children)
}

// Sisters returns the IDs of the sister nodes of a node
// (i.e., the other children of its parent).
func (t *Tree) Sisters(id int) []int {
	p := t.Parent(id)
	if p < 0 {
		return nil
	}
	var sis []int
	for _, c := range t.nodes[p].children {
		if c == id {
			continue
		}
		sis = append(sis, c)
	}
	return sis
}

// Taxon returns the taxon name of a node.
// In gene trees,
// terminal names are gene identifiers.
func (t *Tree) Taxon(id int) string {
	return t.node(id).taxon
}

// SetTaxon sets the taxon name of a node.
func (t *Tree) SetTaxon(id int, taxon string) {
	t.node(id).taxon = strings.Join(strings.Fields(taxon), " ")
}

// Brlen returns the length of the branch
// that ends at the node.
// It returns NoValue if the length is undefined.
func (t *Tree) Brlen(id int) float64 {
	return t.node(id).brLen
}

// SetBrlen sets the length of the branch
// that ends at the node.
func (t *Tree) SetBrlen(id int, l float64) {
	if l < 0 {
		l = NoValue
	}
	t.node(id).brLen = l
}

// Support returns the support of the branch
// that ends at the node.
// It returns NoValue if the support is undefined.
func (t *Tree) Support(id int) float64 {
	return t.node(id).support
}

// SetSupport sets the support of the branch
// that ends at the node.
func (t *Tree) SetSupport(id int, s float64) {
	if s < 0 {
		s = NoValue
	}
	t.node(id).support = s
}

// Nodes returns the IDs of the nodes
// reachable from the root,
// in pre-order.
func (t *Tree) Nodes() []int {
	ids := make([]int, 0, len(t.nodes))
	t.PreOrder(t.root, func(id int) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Len returns the number of nodes
// reachable from the root.
func (t *Tree) Len() int {
	return len(t.Nodes())
}

// Terms returns the sorted list of terminal names
// of the tree.
func (t *Tree) Terms() []string {
	var terms []string
	for _, id := range t.TermIDs(t.root) {
		terms = append(terms, t.nodes[id].taxon)
	}
	slices.Sort(terms)
	return terms
}

// TermIDs returns the IDs of the terminals
// descendant of a node,
// in pre-order.
// If the node is a terminal,
// it returns the node itself.
func (t *Tree) TermIDs(id int) []int {
	var ids []int
	t.PreOrder(id, func(n int) bool {
		if len(t.nodes[n].children) == 0 {
			ids = append(ids, n)
		}
		return true
	})
	return ids
}

// TermNames returns the sorted names
// of the terminals descendant of a node.
func (t *Tree) TermNames(id int) []string {
	ids := t.TermIDs(id)
	names := make([]string, 0, len(ids))
	for _, n := range ids {
		names = append(names, t.nodes[n].taxon)
	}
	slices.Sort(names)
	return names
}

// TaxNode returns the ID of the first terminal,
// in pre-order,
// with the given taxon name.
func (t *Tree) TaxNode(taxon string) (int, bool) {
	found := -1
	t.PreOrder(t.root, func(id int) bool {
		n := t.nodes[id]
		if len(n.children) == 0 && n.taxon == taxon {
			found = id
			return false
		}
		return true
	})
	return found, found >= 0
}

// Depth returns the number of branches
// between a node and the root.
func (t *Tree) Depth(id int) int {
	d := 0
	for p := t.Parent(id); p >= 0; p = t.Parent(p) {
		d++
	}
	return d
}

// LCA returns the lowest common ancestor
// of two nodes.
func (t *Tree) LCA(a, b int) int {
	da := t.Depth(a)
	db := t.Depth(b)
	for da > db {
		a = t.nodes[a].parent
		da--
	}
	for db > da {
		b = t.nodes[b].parent
		db--
	}
	for a != b {
		a = t.nodes[a].parent
		b = t.nodes[b].parent
	}
	return a
}
