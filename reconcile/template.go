// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reconcile implements the reconciliation
// of gene trees with a species tree.
//
// Two methods are implemented.
// The topology-template method builds a reconciled tree
// in which the genes are placed into the topology
// expected from the species tree,
// making explicit the lost lineages.
// The method of Zmasek and Eddy (2001)
// maps each node of the gene tree
// into the species tree
// to classify it as a speciation or a duplication.
package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/species"
)

// ErrMissingSpecies is returned when
// a species is not found in the species tree.
var ErrMissingSpecies = errors.New("species not in species tree")

// Tree returns the reconciled tree
// of the clade of a node of a gene tree,
// as well as the events of each internal node
// of the gene tree,
// in post-order.
//
// All the species of the genes
// must be present in the species tree.
// The gene tree must be binary.
// The gene tree is not modified.
func Tree(gt *phylo.Tree, node int, sp *phylo.Tree, nm species.Naming) (*Result, []events.Event, error) {
	var evs []events.Event
	r, err := reconciled(gt, node, sp, nm, &evs)
	if err != nil {
		return nil, nil, err
	}
	r = r.copy()
	r.Tree.SetName(gt.Name())
	return r, evs, nil
}

func reconciled(gt *phylo.Tree, id int, sp *phylo.Tree, nm species.Naming, evs *[]events.Event) (*Result, error) {
	children := gt.Children(id)
	if len(children) == 0 {
		code, err := species.Code(gt, id, nm)
		if err != nil {
			return nil, err
		}
		r := newResult(gt.Copy(id))
		r.species[r.Tree.Root()] = code
		return r, nil
	}
	if len(children) != 2 {
		return nil, fmt.Errorf("tree %q: node %d: %w", gt.Name(), id, events.ErrNotBinary)
	}

	m0, err := reconciled(gt, children[0], sp, nm, evs)
	if err != nil {
		return nil, err
	}
	m1, err := reconciled(gt, children[1], sp, nm, evs)
	if err != nil {
		return nil, err
	}

	sp0 := m0.speciesOf(m0.Tree.Root())
	sp1 := m1.speciesOf(m1.Tree.Root())
	tmpl, err := ExpectedTopology(sp, sp0.Union(sp1))
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", gt.Name(), err)
	}

	e := events.Event{
		Tree:     gt.Name(),
		Node:     id,
		In:       gt.TermNames(children[0]),
		Out:      gt.TermNames(children[1]),
		Score:    species.Overlap(sp0, sp1),
		FamSize:  len(gt.TermIDs(gt.Root())),
		Supports: []float64{gt.Support(id), gt.Support(children[0]), gt.Support(children[1])},
	}
	e.InParalogs = e.In

	var r *Result
	if sp0.Overlaps(sp1) {
		// each child is reconciled
		// in its own copy of the template
		r0, _ := replaceOnTemplate(tmpl, m0)
		r1, _ := replaceOnTemplate(tmpl, m1)

		nt := phylo.New(gt.Name())
		nt.SetTaxon(nt.Root(), gt.Taxon(id))
		nt.SetBrlen(nt.Root(), gt.Brlen(id))
		nt.SetSupport(nt.Root(), gt.Support(id))
		r = newResult(nt)
		r.addClade(nt.Root(), r0)
		r.addClade(nt.Root(), r1)
		r.Tags[nt.Root()] = events.Duplication

		e.Type = events.Duplication
		e.OutParalogs = e.Out
	} else {
		r, _ = replaceOnTemplate(tmpl, m0)
		r, _ = replaceOnTemplate(r, m1)
		r.Tags[r.Tree.Root()] = events.Speciation

		e.Type = events.Speciation
		e.Orthologs = e.Out
	}

	*evs = append(*evs, e)
	return r, nil
}

// ExpectedTopology returns the smallest clade of the species tree
// that includes all the species of a set.
// All nodes of the returned template are tagged as losses
// and have a branch length of 1.
//
// The terminals of the species tree
// are expected to be species codes.
func ExpectedTopology(sp *phylo.Tree, set species.Set) (*Result, error) {
	if set.Len() == 0 {
		return nil, species.ErrNoSpecies
	}

	var missing []string
	for _, s := range set.List() {
		if _, ok := sp.TaxNode(s); !ok {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingSpecies, strings.Join(missing, ", "))
	}

	id, _ := sp.TaxNode(set.List()[0])
	for !species.NewSet(sp.TermNames(id)...).Contains(set) {
		id = sp.Parent(id)
	}

	r := newResult(sp.Copy(id))
	for _, n := range r.Tree.Nodes() {
		r.Tags[n] = events.Loss
		r.Tree.SetBrlen(n, 1)
		r.Tree.SetSupport(n, phylo.NoValue)
		if r.Tree.IsTerm(n) {
			r.species[n] = r.Tree.Taxon(n)
		}
	}
	return r, nil
}

// ReplaceOnTemplate returns a copy of a template
// in which the smallest clade that includes
// all the species of a reconciled subtree
// is replaced by the subtree.
// It returns the new result
// and the ID of the inserted subtree.
//
// If the template does not include
// the species of the subtree,
// the subtree is added as a sister
// of the whole template.
func replaceOnTemplate(tmpl, sub *Result) (*Result, int) {
	r := tmpl.copy()
	sps := sub.speciesOf(sub.Tree.Root())

	id := -1
	for _, s := range sps.List() {
		for _, n := range r.Tree.TermIDs(r.Tree.Root()) {
			if r.species[n] == s {
				id = n
				break
			}
		}
		if id >= 0 {
			break
		}
	}
	for id >= 0 && !r.speciesOf(id).Contains(sps) {
		id = r.Tree.Parent(id)
	}

	if id < 0 {
		nr := newResult(phylo.New(r.Tree.Name()))
		nr.addClade(nr.Tree.Root(), r)
		nID := nr.addClade(nr.Tree.Root(), sub)
		return nr, nID
	}
	if r.Tree.IsRoot(id) {
		nr := sub.copy()
		return nr, nr.Tree.Root()
	}
	return r, r.graft(id, sub)
}
