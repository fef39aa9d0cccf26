// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import "slices"

// Copy returns a new tree
// with a copy of the clade of the indicated node.
// The new tree shares no nodes with the source tree.
func (t *Tree) Copy(id int) *Tree {
	nt := &Tree{name: t.name}
	nt.root = nt.copyClade(-1, t, id)
	return nt
}

// Graft replaces the clade of the node id
// with a copy of the clade srcID of the tree src.
// It returns the ID of the root of the inserted clade.
// If id is the root of the tree,
// the whole tree is replaced.
//
// The replaced nodes are detached from the tree.
func (t *Tree) Graft(id int, src *Tree, srcID int) int {
	old := t.node(id)
	src.node(srcID)

	if id == t.root {
		nid := t.copyClade(-1, src, srcID)
		t.root = nid
		return nid
	}

	p := t.nodes[old.parent]
	nid := t.copyClade(p.id, src, srcID)
	i := slices.Index(p.children, id)
	p.children[i] = nid
	old.parent = -1
	return nid
}

// AddClade adds a copy of the clade srcID of the tree src
// as a new child of the indicated parent.
// It returns the ID of the root of the inserted clade.
func (t *Tree) AddClade(parent int, src *Tree, srcID int) int {
	p := t.node(parent)
	src.node(srcID)

	nid := t.copyClade(p.id, src, srcID)
	p.children = append(p.children, nid)
	return nid
}

func (t *Tree) copyClade(parent int, src *Tree, id int) int {
	sn := src.nodes[id]
	nid := t.newNode(parent, sn.taxon)
	n := t.nodes[nid]
	n.brLen = sn.brLen
	n.support = sn.support

	children := make([]int, 0, len(sn.children))
	for _, c := range sn.children {
		children = append(children, t.copyClade(nid, src, c))
	}
	n.children = children
	return nid
}
