// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package reconcile

import (
	"fmt"
	"strings"

	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/species"
)

// Zmasek returns the classification of the internal nodes
// of a gene tree
// using the mapping of the gene tree
// into the species tree
// of Zmasek and Eddy (2001).
//
// Each node of the gene tree is mapped
// to the least common ancestor,
// in the species tree,
// of the mappings of its children.
// A node is a duplication
// if it is mapped to the same node
// as any of its children,
// otherwise it is a speciation.
//
// The gene tree is not modified.
func Zmasek(gt, sp *phylo.Tree, nm species.Naming) (events.Tags, error) {
	_, tags, err := mapping(gt, sp, nm)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Mapping returns the mapping of each node of a gene tree
// into a node of the species tree.
func Mapping(gt, sp *phylo.Tree, nm species.Naming) (map[int]int, error) {
	m, _, err := mapping(gt, sp, nm)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func mapping(gt, sp *phylo.Tree, nm species.Naming) (map[int]int, events.Tags, error) {
	geneSp, err := species.Of(gt, gt.Root(), nm)
	if err != nil {
		return nil, nil, fmt.Errorf("tree %q: %w", gt.Name(), err)
	}
	spSet := species.NewSet(sp.Terms()...)
	if !spSet.Contains(geneSp) {
		var missing []string
		for _, s := range geneSp.List() {
			if !spSet.Has(s) {
				missing = append(missing, s)
			}
		}
		return nil, nil, fmt.Errorf("tree %q: %w: %s", gt.Name(), ErrMissingSpecies, strings.Join(missing, ", "))
	}

	m := make(map[int]int, gt.Len())
	tags := make(events.Tags)
	gt.PostOrder(gt.Root(), func(id int) bool {
		children := gt.Children(id)
		if len(children) == 0 {
			code, _ := species.Code(gt, id, nm)
			m[id], _ = sp.TaxNode(code)
			return true
		}
		if len(children) != 2 {
			err = fmt.Errorf("tree %q: node %d: %w", gt.Name(), id, events.ErrNotBinary)
			return false
		}

		m0 := m[children[0]]
		m1 := m[children[1]]
		n := sp.LCA(m0, m1)
		m[id] = n
		if n == m0 || n == m1 {
			tags[id] = events.Duplication
		} else {
			tags[id] = events.Speciation
		}
		return true
	})
	if err != nil {
		return nil, nil, err
	}
	return m, tags, nil
}
