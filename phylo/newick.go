// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	gotree "github.com/evolbioinfo/gotree/tree"
)

// ReadNewick reads one or more trees in Newick format
// (i.e., parenthetical format).
// Each tree must end with a semicolon.
// Semicolons inside comments
// (i.e., between brackets)
// do not end a tree.
//
// The first tree will be named with the given name,
// any other tree will be named with the name
// and a sequential number
// (e.g., "name.1", "name.2", ...).
func ReadNewick(r io.Reader, name string) ([]*Tree, error) {
	br := bufio.NewReader(r)

	var trees []*Tree
	for {
		s, err := readUntilSemicolon(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if s = strings.TrimSpace(s); s != "" {
			if !strings.HasSuffix(s, ";") {
				s += ";"
			}
			gt, pErr := newick.NewParser(strings.NewReader(s)).Parse()
			if pErr != nil {
				return nil, fmt.Errorf("on tree %d: %v", len(trees)+1, pErr)
			}

			tn := name
			if len(trees) > 0 {
				tn = fmt.Sprintf("%s.%d", name, len(trees))
			}
			trees = append(trees, fromGotree(gt, tn))
		}
		if err != nil {
			break
		}
	}
	if len(trees) == 0 {
		return nil, errors.New("no trees found")
	}
	return trees, nil
}

// ReadUntilSemicolon returns the text up to,
// and including,
// the next semicolon outside brackets.
func readUntilSemicolon(r *bufio.Reader) (string, error) {
	var b strings.Builder
	depth := 0
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			return b.String(), err
		}
		b.WriteRune(c)
		switch c {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				return b.String(), nil
			}
		}
	}
}

func fromGotree(gt *gotree.Tree, name string) *Tree {
	t := New(name)
	root := gt.Root()
	t.nodes[t.root].taxon = root.Name()
	t.copyGotree(t.root, root, nil)
	return t
}

func (t *Tree) copyGotree(id int, n, prev *gotree.Node) {
	edges := n.Edges()
	for i, c := range n.Neigh() {
		if c == prev {
			continue
		}
		cID := t.Add(id, c.Name())
		t.SetBrlen(cID, edges[i].Length())
		t.SetSupport(cID, edges[i].Support())
		t.copyGotree(cID, c, n)
	}
}

// A Tagger returns the label of a node,
// or an empty string if the node is not labeled.
type Tagger func(id int) string

// Newick writes a tree in Newick format,
// followed by a new line.
//
// If tag is not nil,
// each labeled node will be written
// with an NHX comment
// in the form "[&&NHX:evoltype=<label>]",
// placed after the branch length.
// A root with a single child is not written.
func (t *Tree) Newick(w io.Writer, tag Tagger) error {
	gt := t.toGotree(tag)
	if _, err := fmt.Fprintf(w, "%s\n", gt.Newick()); err != nil {
		return fmt.Errorf("while writing tree %q: %v", t.name, err)
	}
	return nil
}

func (t *Tree) toGotree(tag Tagger) *gotree.Tree {
	id := t.root
	for len(t.nodes[id].children) == 1 {
		id = t.nodes[id].children[0]
	}

	gt := gotree.NewTree()
	root := gt.NewNode()
	root.SetName(t.nodes[id].taxon)
	if l := nhx(tag, id); l != "" {
		root.AddComment(l)
	}
	gt.SetRoot(root)
	t.copyToGotree(gt, root, id, tag)
	return gt
}

func (t *Tree) copyToGotree(gt *gotree.Tree, gn *gotree.Node, id int, tag Tagger) {
	for _, c := range t.nodes[id].children {
		n := t.nodes[c]
		cn := gt.NewNode()
		cn.SetName(n.taxon)
		e := gt.ConnectNodes(gn, cn)
		if n.brLen >= 0 {
			e.SetLength(n.brLen)
		}
		if n.support >= 0 {
			e.SetSupport(n.support)
		}
		if l := nhx(tag, c); l != "" {
			e.AddComment(l)
		}
		t.copyToGotree(gt, cn, c, tag)
	}
}

func nhx(tag Tagger, id int) string {
	if tag == nil {
		return ""
	}
	l := tag(id)
	if l == "" {
		return ""
	}
	return "&&NHX:evoltype=" + l
}
