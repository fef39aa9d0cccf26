// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"errors"
	"io"

	"github.com/js-arias/timetree"
)

// millionYears is used to transform ages in years
// into branch lengths in million years.
const millionYears = 1_000_000

// FromTimetree creates a new tree
// from a time calibrated tree.
// Branch lengths are set in million years.
func FromTimetree(tt *timetree.Tree) *Tree {
	t := New(tt.Name())
	t.copyTimetree(tt, tt.Root(), t.root)
	return t
}

func (t *Tree) copyTimetree(tt *timetree.Tree, src, id int) {
	t.nodes[id].taxon = tt.Taxon(src)
	for _, c := range tt.Children(src) {
		cID := t.Add(id, "")
		t.SetBrlen(cID, float64(tt.Age(src)-tt.Age(c))/millionYears)
		t.copyTimetree(tt, c, cID)
	}
}

// ReadTimetree reads one or more time calibrated trees
// from a TSV file
// in the format used by timetree
// (fields tree, node, parent, age, and taxon).
// The trees are returned sorted by name.
func ReadTimetree(r io.Reader) ([]*Tree, error) {
	c, err := timetree.ReadTSV(r)
	if err != nil {
		return nil, err
	}

	names := c.Names()
	if len(names) == 0 {
		return nil, errors.New("no trees found")
	}
	trees := make([]*Tree, 0, len(names))
	for _, tn := range names {
		trees = append(trees, FromTimetree(c.Tree(tn)))
	}
	return trees, nil
}
