// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"slices"

	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/species"
)

// FromLeaf returns the evolutionary events
// that led to the history of a gene,
// by going from a terminal to the root.
//
// At each level,
// the species of the sister lineages
// are compared with the species
// of all the genes already browsed.
// If the species overlap score is greater than thr,
// the event is a duplication,
// otherwise it is a speciation.
// Levels without new sister genes are skipped.
//
// The root of the tree must have two children.
// Besides the list of events,
// it returns the classification
// of the nodes in the path to the root.
func FromLeaf(t *phylo.Tree, leaf int, nm species.Naming, thr float64) ([]Event, Tags, error) {
	outgroup, err := rootOutgroup(t)
	if err != nil {
		return nil, nil, err
	}
	famSize := len(t.TermIDs(t.Root()))

	if !t.IsTerm(leaf) {
		return nil, nil, fmt.Errorf("tree %q: node %d is not a terminal", t.Name(), leaf)
	}
	seed := t.Taxon(leaf)
	seedSp, err := species.Code(t, leaf, nm)
	if err != nil {
		return nil, nil, err
	}
	browsedSp := species.NewSet(seedSp)
	browsed := map[string]bool{seed: true}
	in := []string{seed}
	inPara := []string{seed}

	tags := make(Tags)
	var evs []Event
	age := 0
	for curr := leaf; !t.IsRoot(curr); curr = t.Parent(curr) {
		age++
		p := t.Parent(curr)

		var sister []string
		sisterSp := make(species.Set)
		for _, sis := range t.Sisters(curr) {
			for _, id := range t.TermIDs(sis) {
				g := t.Taxon(id)
				if browsed[g] {
					continue
				}
				sp, err := species.Code(t, id, nm)
				if err != nil {
					return nil, nil, err
				}
				sister = append(sister, g)
				sisterSp.Add(sp)
			}
		}
		if len(sister) == 0 {
			continue
		}

		e := Event{
			Tree:       t.Name(),
			Node:       p,
			Type:       Speciation,
			In:         sorted(in),
			Out:        sorted(sister),
			InParalogs: sorted(inPara),
			Score:      species.Overlap(sisterSp, browsedSp),
			Outgroup:   outgroup,
			Age:        age,
			FamSize:    famSize,
			Seed:       seed,
			Supports:   supports(t, p),
		}
		if e.Score > thr {
			e.Type = Duplication
			for _, g := range sister {
				if nm(g) == seedSp {
					e.OutParalogs = append(e.OutParalogs, g)
				}
			}
		} else {
			for _, g := range sister {
				if nm(g) != seedSp {
					e.Orthologs = append(e.Orthologs, g)
				}
			}
		}
		e.OutParalogs = sorted(e.OutParalogs)
		e.Orthologs = sorted(e.Orthologs)
		tags[p] = e.Type
		evs = append(evs, e)

		for _, g := range sister {
			browsed[g] = true
			in = append(in, g)
			if nm(g) == seedSp {
				inPara = append(inPara, g)
			}
		}
		for sp := range sisterSp {
			browsedSp.Add(sp)
		}
	}
	return evs, tags, nil
}

// FromRoot returns all the evolutionary events
// in the clade of a node,
// by comparing the species of the two children
// of each internal node.
// If the species overlap score is greater than thr,
// the node is a duplication,
// otherwise it is a speciation.
//
// The root of the tree must have two children,
// and no node can have more than two children.
// Nodes with a single child are ignored.
//
// Events are returned in pre-order.
// Besides the list of events,
// it returns the classification of the nodes.
func FromRoot(t *phylo.Tree, node int, nm species.Naming, thr float64) ([]Event, Tags, error) {
	outgroup, err := rootOutgroup(t)
	if err != nil {
		return nil, nil, err
	}
	famSize := len(t.TermIDs(t.Root()))

	tags := make(Tags)
	var evs []Event
	toVisit := []int{node}
	for len(toVisit) > 0 {
		id := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]

		children := t.Children(id)
		if len(children) > 2 {
			return nil, nil, fmt.Errorf("tree %q: node %d: %w", t.Name(), id, ErrNotBinary)
		}
		toVisit = append(toVisit, children...)
		if len(children) < 2 {
			continue
		}

		e, err := split(t, id, nm)
		if err != nil {
			return nil, nil, err
		}
		e.Type = Speciation
		if e.Score > thr {
			e.Type = Duplication
		}
		setGroups(&e)
		e.Outgroup = outgroup
		e.FamSize = famSize

		tags[id] = e.Type
		evs = append(evs, e)
	}

	sortPreOrder(t, evs)
	return evs, tags, nil
}

// FromTags returns the evolutionary events
// of a tree with classified nodes.
// Only the nodes with two children
// tagged as speciation or duplication
// are reported.
// Events are returned in pre-order.
func FromTags(t *phylo.Tree, tags Tags, nm species.Naming) ([]Event, error) {
	famSize := len(t.TermIDs(t.Root()))
	var evs []Event
	for _, id := range t.Nodes() {
		tp := tags[id]
		if tp != Speciation && tp != Duplication {
			continue
		}
		if len(t.Children(id)) != 2 {
			continue
		}

		e, err := split(t, id, nm)
		if err != nil {
			return nil, err
		}
		e.Type = tp
		setGroups(&e)
		e.FamSize = famSize
		evs = append(evs, e)
	}
	return evs, nil
}

// Split returns an event
// (without type)
// comparing the two children of a node.
func split(t *phylo.Tree, id int, nm species.Naming) (Event, error) {
	children := t.Children(id)
	sp0, err := species.Of(t, children[0], nm)
	if err != nil {
		return Event{}, err
	}
	sp1, err := species.Of(t, children[1], nm)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Tree:     t.Name(),
		Node:     id,
		In:       t.TermNames(children[0]),
		Out:      t.TermNames(children[1]),
		Score:    species.Overlap(sp0, sp1),
		Supports: supports(t, id),
	}, nil
}

func setGroups(e *Event) {
	e.InParalogs = e.In
	if e.Type == Duplication {
		e.OutParalogs = e.Out
		return
	}
	e.Orthologs = e.Out
}

// RootOutgroup returns the genes of the outgroup
// (the root child with fewer genes).
// If both children have the same number of genes,
// the first child is the outgroup.
func rootOutgroup(t *phylo.Tree) ([]string, error) {
	children := t.Children(t.Root())
	if len(children) != 2 {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), ErrNotRooted)
	}
	out := t.TermNames(children[0])
	if other := t.TermNames(children[1]); len(other) < len(out) {
		out = other
	}
	return out, nil
}

func supports(t *phylo.Tree, id int) []float64 {
	s := []float64{t.Support(id)}
	for _, c := range t.Children(id) {
		s = append(s, t.Support(c))
	}
	return s
}

func sortPreOrder(t *phylo.Tree, evs []Event) {
	order := make(map[int]int)
	for i, id := range t.Nodes() {
		order[id] = i
	}
	slices.SortStableFunc(evs, func(a, b Event) int {
		return order[a.Node] - order[b.Node]
	})
}

func sorted(ls []string) []string {
	if len(ls) == 0 {
		return nil
	}
	s := slices.Clone(ls)
	slices.Sort(s)
	return s
}
