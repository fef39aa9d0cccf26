// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

var header = []string{
	"tree",
	"node",
	"parent",
	"length",
	"support",
	"taxon",
}

// ReadTSV reads one or more trees from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - tree, for the name of the tree
//   - node, for the ID of the node
//   - parent, for the ID of the parent node
//     (-1 is used for the root)
//   - length, for the length of the branch
//     (-1 if undefined)
//   - support, for the support of the branch
//     (-1 if undefined)
//   - taxon, the name of the node
//     (for gene trees, the gene identifier)
//
// Here is an example file:
//
//	# gene trees
//	tree	node	parent	length	support	taxon
//	fam1	0	-1	-1	-1
//	fam1	1	0	0.5	-1	B_human
//	fam1	2	0	0.2	95
//	fam1	3	2	0.1	-1	A_human
//	fam1	4	2	0.1	-1	A_mouse
//
// Parents must be defined before their children.
// The trees are returned in the order
// in which they are found in the file.
func ReadTSV(r io.Reader) ([]*Tree, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"tree", "node", "parent", "taxon"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var trees []*Tree
	byName := make(map[string]*Tree)
	ids := make(map[string]map[string]int)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "tree"
		name := strings.Join(strings.Fields(row[fields[f]]), " ")
		if name == "" {
			continue
		}

		f = "node"
		nID := row[fields[f]]
		f = "parent"
		pID := row[fields[f]]
		f = "taxon"
		taxon := row[fields[f]]

		t, ok := byName[name]
		if !ok {
			if pID != "-1" {
				return nil, fmt.Errorf("on row %d: tree %q: first node %s is not the root", ln, name, nID)
			}
			t = New(name)
			t.SetTaxon(t.root, taxon)
			byName[name] = t
			ids[name] = map[string]int{nID: t.root}
			trees = append(trees, t)
			continue
		}

		nodes := ids[name]
		if _, dup := nodes[nID]; dup {
			return nil, fmt.Errorf("on row %d: tree %q: node %s repeated", ln, name, nID)
		}
		if pID == "-1" {
			return nil, fmt.Errorf("on row %d: tree %q: node %s: tree already has a root", ln, name, nID)
		}
		p, ok := nodes[pID]
		if !ok {
			return nil, fmt.Errorf("on row %d: tree %q: parent %s of node %s not found", ln, name, pID, nID)
		}
		id := t.Add(p, "")
		t.SetTaxon(id, taxon)
		nodes[nID] = id

		if f, ok := fields["length"]; ok {
			l, err := parseValue(row[f])
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, "length", err)
			}
			t.SetBrlen(id, l)
		}
		if f, ok := fields["support"]; ok {
			s, err := parseValue(row[f])
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, "support", err)
			}
			t.SetSupport(id, s)
		}
	}
	if len(trees) == 0 {
		return nil, errors.New("no trees found")
	}
	return trees, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoValue, nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteTSV writes one or more trees as a TSV file.
// Node IDs are reassigned in pre-order,
// so detached nodes are not written.
func WriteTSV(w io.Writer, trees ...*Tree) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, t := range trees {
		nodes := t.Nodes()
		index := make(map[int]int, len(nodes))
		for i, id := range nodes {
			index[id] = i
		}
		for i, id := range nodes {
			parent := -1
			if p := t.Parent(id); p >= 0 {
				parent = index[p]
			}
			row := []string{
				t.name,
				strconv.Itoa(i),
				strconv.Itoa(parent),
				strconv.FormatFloat(t.Brlen(id), 'f', -1, 64),
				strconv.FormatFloat(t.Support(id), 'f', -1, 64),
				t.Taxon(id),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing tree %q: %v", t.name, err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// Names returns the sorted names of a list of trees.
func Names(trees []*Tree) []string {
	names := make([]string, 0, len(trees))
	for _, t := range trees {
		names = append(names, t.name)
	}
	slices.Sort(names)
	return names
}
