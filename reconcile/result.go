// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package reconcile

import (
	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/species"
)

// A Result is a reconciled tree.
type Result struct {
	// Tree is the reconciled tree.
	// Its terminals are either genes,
	// or species of the species tree
	// (i.e., lineages lost in the gene tree).
	Tree *phylo.Tree

	// Tags are the classification of the nodes.
	// Nodes from the species tree
	// that were not replaced by the gene tree
	// are losses.
	Tags events.Tags

	// species code of each terminal
	species map[int]string
}

func newResult(t *phylo.Tree) *Result {
	return &Result{
		Tree:    t,
		Tags:    make(events.Tags),
		species: make(map[int]string),
	}
}

// Species returns the species code of a terminal.
func (r *Result) Species(id int) string {
	return r.species[id]
}

// Losses returns the names of the terminals
// that are lost lineages.
func (r *Result) Losses() []string {
	var ls []string
	for _, id := range r.Tree.TermIDs(r.Tree.Root()) {
		if r.Tags[id] == events.Loss {
			ls = append(ls, r.Tree.Taxon(id))
		}
	}
	return ls
}

// SpeciesOf returns the species of the terminals
// of the clade of a node
// (including lost lineages).
func (r *Result) speciesOf(id int) species.Set {
	s := make(species.Set)
	for _, n := range r.Tree.TermIDs(id) {
		s.Add(r.species[n])
	}
	return s
}

// Copy returns an independent copy of the result.
// Detached nodes are not copied.
func (r *Result) copy() *Result {
	nr := newResult(r.Tree.Copy(r.Tree.Root()))
	nr.annotate(nr.Tree.Root(), r, r.Tree.Root())
	return nr
}

// Graft replaces the clade id
// with a copy of the src result.
// It returns the ID of the inserted clade.
func (r *Result) graft(id int, src *Result) int {
	nID := r.Tree.Graft(id, src.Tree, src.Tree.Root())
	r.annotate(nID, src, src.Tree.Root())
	return nID
}

// AddClade adds a copy of the src result
// as a child of a node.
func (r *Result) addClade(parent int, src *Result) int {
	nID := r.Tree.AddClade(parent, src.Tree, src.Tree.Root())
	r.annotate(nID, src, src.Tree.Root())
	return nID
}

// Annotate copies the tags and species
// of a source clade
// into a copy of the clade.
func (r *Result) annotate(id int, src *Result, srcID int) {
	var dst []int
	r.Tree.PreOrder(id, func(n int) bool {
		dst = append(dst, n)
		return true
	})
	var from []int
	src.Tree.PreOrder(srcID, func(n int) bool {
		from = append(from, n)
		return true
	})

	for i, n := range from {
		if tp, ok := src.Tags[n]; ok {
			r.Tags[dst[i]] = tp
		}
		if sp, ok := src.species[n]; ok {
			r.species[dst[i]] = sp
		}
	}
}
