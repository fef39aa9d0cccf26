// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package events

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/js-arias/genetree/phylo"
)

// SplitByDups returns the subtrees of a tree
// that result from cutting all the duplication nodes.
//
// Each subtree starts at the root,
// or at a child of a duplication,
// and the clades of any inner duplication are removed.
// Nodes left with a single child are collapsed,
// adding their branch lengths.
// Every gene of the tree is found in exactly one subtree.
//
// Subtrees are named with the name of the tree
// and a sequential number.
func SplitByDups(t *phylo.Tree, tags Tags) []*phylo.Tree {
	s := splitter{
		t:    t,
		tags: tags,
	}

	var roots []int
	for _, id := range t.Nodes() {
		if tags[id] == Duplication {
			continue
		}
		p := t.Parent(id)
		if p >= 0 && tags[p] != Duplication {
			continue
		}
		if !s.hasGenes(id) {
			continue
		}
		roots = append(roots, id)
	}

	trees := make([]*phylo.Tree, 0, len(roots))
	for i, r := range roots {
		nt := phylo.New(fmt.Sprintf("%s.%d", t.Name(), i+1))

		// collapse single child nodes at the root
		id := r
		for {
			kept := s.kept(id)
			if len(kept) != 1 {
				break
			}
			id = kept[0]
		}
		nt.SetTaxon(nt.Root(), t.Taxon(id))
		nt.SetSupport(nt.Root(), t.Support(id))
		for _, c := range s.kept(id) {
			s.add(nt, nt.Root(), c, phylo.NoValue)
		}
		trees = append(trees, nt)
	}
	return trees
}

type splitter struct {
	t    *phylo.Tree
	tags Tags
}

// HasGenes returns true if the clade of a node
// has genes that are not in a duplication.
func (s splitter) hasGenes(id int) bool {
	if s.t.IsTerm(id) {
		return true
	}
	return len(s.kept(id)) > 0
}

// Kept returns the children of a node
// that are kept in a subtree.
func (s splitter) kept(id int) []int {
	var kept []int
	for _, c := range s.t.Children(id) {
		if s.tags[c] == Duplication {
			continue
		}
		if !s.hasGenes(c) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (s splitter) add(nt *phylo.Tree, parent, id int, extra float64) {
	kept := s.kept(id)
	l := addLen(extra, s.t.Brlen(id))
	if len(kept) == 1 {
		s.add(nt, parent, kept[0], l)
		return
	}

	nID := nt.Add(parent, s.t.Taxon(id))
	nt.SetBrlen(nID, l)
	nt.SetSupport(nID, s.t.Support(id))
	for _, c := range kept {
		s.add(nt, nID, c, phylo.NoValue)
	}
}

func addLen(a, b float64) float64 {
	if a < 0 {
		return b
	}
	if b < 0 {
		return a
	}
	return a + b
}

// A Pair is a pair of orthologous genes.
type Pair struct {
	A, B string
}

// Orthologs returns the pairs of orthologous genes
// found in a list of events.
// A gene of InParalogs,
// and a gene of Orthologs,
// of a speciation event are orthologs.
// Pairs are unique
// and sorted.
func Orthologs(evs []Event) []Pair {
	seen := make(map[Pair]bool)
	var pairs []Pair
	for _, e := range evs {
		if e.Type != Speciation {
			continue
		}
		for _, a := range e.InParalogs {
			for _, b := range e.Orthologs {
				if a == b {
					continue
				}
				p := Pair{A: a, B: b}
				if b < a {
					p = Pair{A: b, B: a}
				}
				if seen[p] {
					continue
				}
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}

	slices.SortFunc(pairs, func(x, y Pair) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return pairs
}
