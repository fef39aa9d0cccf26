// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package events_test

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/species"
	"pgregory.net/rapid"
)

var naming = species.Delimiter("_", -1)

func readTree(t testing.TB, newick string) *phylo.Tree {
	t.Helper()

	trees, err := phylo.ReadNewick(strings.NewReader(newick), "test")
	if err != nil {
		t.Fatalf("unable to read tree %q: %v", newick, err)
	}
	return trees[0]
}

func termID(t testing.TB, tr *phylo.Tree, name string) int {
	t.Helper()

	id, ok := tr.TaxNode(name)
	if !ok {
		t.Fatalf("terminal %q not found", name)
	}
	return id
}

func TestFromRootStarDuplication(t *testing.T) {
	tr := readTree(t, "((A_human,A_mouse),B_human);")

	evs, tags, err := events.FromRoot(tr, tr.Root(), naming, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("events: got %d, want %d", len(evs), 2)
	}

	root := evs[0]
	if root.Node != tr.Root() {
		t.Errorf("first event: got node %d, want root %d", root.Node, tr.Root())
	}
	if root.Type != events.Duplication {
		t.Errorf("root: got %v, want %v", root.Type, events.Duplication)
	}
	if root.Score != 0.5 {
		t.Errorf("root score: got %.4f, want %.4f", root.Score, 0.5)
	}
	if want := []string{"A_human", "A_mouse"}; !reflect.DeepEqual(root.InParalogs, want) {
		t.Errorf("root in-paralogs: got %v, want %v", root.InParalogs, want)
	}
	if want := []string{"B_human"}; !reflect.DeepEqual(root.OutParalogs, want) {
		t.Errorf("root out-paralogs: got %v, want %v", root.OutParalogs, want)
	}
	if len(root.Orthologs) != 0 {
		t.Errorf("root orthologs: got %v, want none", root.Orthologs)
	}
	if want := []string{"B_human"}; !reflect.DeepEqual(root.Outgroup, want) {
		t.Errorf("outgroup: got %v, want %v", root.Outgroup, want)
	}
	if root.FamSize != 3 {
		t.Errorf("family size: got %d, want %d", root.FamSize, 3)
	}
	if len(root.Supports) != 3 {
		t.Errorf("supports: got %v, want 3 values", root.Supports)
	}

	clade := evs[1]
	if clade.Type != events.Speciation {
		t.Errorf("clade: got %v, want %v", clade.Type, events.Speciation)
	}
	if want := []string{"A_mouse"}; !reflect.DeepEqual(clade.Orthologs, want) {
		t.Errorf("clade orthologs: got %v, want %v", clade.Orthologs, want)
	}
	if len(clade.OutParalogs) != 0 {
		t.Errorf("clade out-paralogs: got %v, want none", clade.OutParalogs)
	}

	if tags[tr.Root()] != events.Duplication || tags[clade.Node] != events.Speciation {
		t.Errorf("tags: got %v", tags)
	}
	if n := tags.Count(events.Duplication); n != 1 {
		t.Errorf("duplications: got %d, want %d", n, 1)
	}
}

func TestFromLeaf(t *testing.T) {
	tr := readTree(t, "((A_human,A_mouse),B_human);")

	evs, tags, err := events.FromLeaf(tr, termID(t, tr, "A_human"), naming, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("events: got %d, want %d", len(evs), 2)
	}

	sp := evs[0]
	if sp.Type != events.Speciation {
		t.Errorf("first event: got %v, want %v", sp.Type, events.Speciation)
	}
	if want := []string{"A_mouse"}; !reflect.DeepEqual(sp.Orthologs, want) {
		t.Errorf("first event orthologs: got %v, want %v", sp.Orthologs, want)
	}
	if sp.Seed != "A_human" || sp.Age != 1 {
		t.Errorf("first event: got seed %q age %d, want %q age %d", sp.Seed, sp.Age, "A_human", 1)
	}

	dup := evs[1]
	if dup.Type != events.Duplication {
		t.Errorf("second event: got %v, want %v", dup.Type, events.Duplication)
	}
	if dup.Node != tr.Root() {
		t.Errorf("second event: got node %d, want %d", dup.Node, tr.Root())
	}
	if dup.Score != 0.5 {
		t.Errorf("second event score: got %.4f, want %.4f", dup.Score, 0.5)
	}
	if want := []string{"B_human"}; !reflect.DeepEqual(dup.OutParalogs, want) {
		t.Errorf("second event out-paralogs: got %v, want %v", dup.OutParalogs, want)
	}
	if want := []string{"A_human", "A_mouse"}; !reflect.DeepEqual(dup.In, want) {
		t.Errorf("second event in: got %v, want %v", dup.In, want)
	}
	if len(dup.Orthologs) != 0 {
		t.Errorf("second event orthologs: got %v, want none", dup.Orthologs)
	}

	if len(tags) != 2 {
		t.Errorf("tags: got %d tags, want %d", len(tags), 2)
	}

	// a threshold above the score
	evs, _, err = events.FromLeaf(tr, termID(t, tr, "A_human"), naming, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evs[1].Type != events.Speciation {
		t.Errorf("threshold: got %v, want %v", evs[1].Type, events.Speciation)
	}
}

func TestFromLeafSpeciation(t *testing.T) {
	tr := readTree(t, "(A_human,A_mouse);")

	evs, _, err := events.FromLeaf(tr, termID(t, tr, "A_human"), naming, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("events: got %d, want %d", len(evs), 1)
	}
	e := evs[0]
	if e.Type != events.Speciation || e.Score != 0 {
		t.Errorf("event: got %v (%.4f), want %v (0)", e.Type, e.Score, events.Speciation)
	}
	if want := []string{"A_mouse"}; !reflect.DeepEqual(e.Orthologs, want) {
		t.Errorf("orthologs: got %v, want %v", e.Orthologs, want)
	}
}

func TestFromLeafRepeatedNames(t *testing.T) {
	tr := readTree(t, "((A_human,A_human),B_mouse);")

	evs, _, err := events.FromLeaf(tr, termID(t, tr, "A_human"), naming, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("events: got %d, want %d", len(evs), 1)
	}
	if evs[0].Node != tr.Root() || evs[0].Age != 2 {
		t.Errorf("event: got node %d age %d, want node %d age %d", evs[0].Node, evs[0].Age, tr.Root(), 2)
	}
}

func TestStructureErrors(t *testing.T) {
	unrooted := readTree(t, "(A_human,A_mouse,B_human);")
	if _, _, err := events.FromRoot(unrooted, unrooted.Root(), naming, 0); !errors.Is(err, events.ErrNotRooted) {
		t.Errorf("from root: got error %v, want %v", err, events.ErrNotRooted)
	}
	if _, _, err := events.FromLeaf(unrooted, termID(t, unrooted, "A_human"), naming, 0); !errors.Is(err, events.ErrNotRooted) {
		t.Errorf("from leaf: got error %v, want %v", err, events.ErrNotRooted)
	}

	polytomy := readTree(t, "((A_human,A_mouse,A_rat),B_human);")
	if _, _, err := events.FromRoot(polytomy, polytomy.Root(), naming, 0); !errors.Is(err, events.ErrNotBinary) {
		t.Errorf("polytomy: got error %v, want %v", err, events.ErrNotBinary)
	}

	noSpecies := readTree(t, "((A_human,Amouse),B_human);")
	if _, _, err := events.FromRoot(noSpecies, noSpecies.Root(), naming, 0); !errors.Is(err, species.ErrNoSpecies) {
		t.Errorf("undefined species: got error %v, want %v", err, species.ErrNoSpecies)
	}
}

func TestFromTags(t *testing.T) {
	tr := readTree(t, "((A_human,A_mouse),B_human);")
	_, tags, err := events.FromRoot(tr, tr.Root(), naming, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evs, err := events.FromTags(tr, tags, naming)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("events: got %d, want %d", len(evs), 2)
	}
	if evs[0].Type != events.Duplication || evs[1].Type != events.Speciation {
		t.Errorf("types: got %v %v, want D S", evs[0].Type, evs[1].Type)
	}
}

func TestSplitByDups(t *testing.T) {
	tests := map[string]struct {
		newick string
		want   [][]string
	}{
		"root duplication": {
			newick: "((A_human,A_mouse),(B_human,B_mouse));",
			want: [][]string{
				{"A_human", "A_mouse"},
				{"B_human", "B_mouse"},
			},
		},
		"inner duplication": {
			newick: "(((A_human,B_human),A_mouse),C_rat);",
			want: [][]string{
				{"A_mouse", "C_rat"},
				{"A_human"},
				{"B_human"},
			},
		},
		"no duplications": {
			newick: "((A_human,A_mouse),B_rat);",
			want: [][]string{
				{"A_human", "A_mouse", "B_rat"},
			},
		},
	}

	for name, test := range tests {
		tr := readTree(t, test.newick)
		_, tags, err := events.FromRoot(tr, tr.Root(), naming, 0)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}

		trees := events.SplitByDups(tr, tags)
		if len(trees) != len(test.want) {
			t.Errorf("%s: got %d subtrees, want %d", name, len(trees), len(test.want))
			continue
		}
		for i, st := range trees {
			if got := st.Terms(); !reflect.DeepEqual(got, test.want[i]) {
				t.Errorf("%s: subtree %d: got %v, want %v", name, i, got, test.want[i])
			}
			if want := fmt.Sprintf("test.%d", i+1); st.Name() != want {
				t.Errorf("%s: subtree %d: got name %q, want %q", name, i, st.Name(), want)
			}
			for _, id := range st.Nodes() {
				if c := len(st.Children(id)); c == 1 {
					t.Errorf("%s: subtree %d: node %d with a single child", name, i, id)
				}
			}
		}
	}
}

func TestOrthologs(t *testing.T) {
	tr := readTree(t, "(((A_human,A_mouse),(B_human,B_mouse)),C_rat);")
	evs, _, err := events.FromRoot(tr, tr.Root(), naming, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := events.Orthologs(evs)
	want := []events.Pair{
		{"A_human", "A_mouse"},
		{"A_human", "C_rat"},
		{"A_mouse", "C_rat"},
		{"B_human", "B_mouse"},
		{"B_human", "C_rat"},
		{"B_mouse", "C_rat"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("orthologs: got %v, want %v", got, want)
	}
}

func TestTSV(t *testing.T) {
	tr := readTree(t, "((A_human,A_mouse),B_human);")
	evs, _, err := events.FromRoot(tr, tr.Root(), naming, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var w bytes.Buffer
	if err := events.WriteTSV(&w, evs); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	got, err := events.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}
	if len(got) != len(evs) {
		t.Fatalf("events: got %d, want %d", len(got), len(evs))
	}
	for i, e := range got {
		w := evs[i]
		if e.Tree != w.Tree || e.Node != w.Node || e.Type != w.Type || e.Score != w.Score {
			t.Errorf("event %d: got %s %d %v %.6f, want %s %d %v %.6f", i, e.Tree, e.Node, e.Type, e.Score, w.Tree, w.Node, w.Type, w.Score)
		}
		if !reflect.DeepEqual(e.In, w.In) || !reflect.DeepEqual(e.Out, w.Out) {
			t.Errorf("event %d: got sides %v %v, want %v %v", i, e.In, e.Out, w.In, w.Out)
		}
		if !reflect.DeepEqual(e.Orthologs, w.Orthologs) {
			t.Errorf("event %d: got orthologs %v, want %v", i, e.Orthologs, w.Orthologs)
		}
	}
}

// randomTree builds a random binary gene tree.
func randomTree(rt *rapid.T) *phylo.Tree {
	codes := []string{"human", "mouse", "rat", "dog", "fly"}
	n := rapid.IntRange(2, 20).Draw(rt, "genes")
	genes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sp := rapid.SampledFrom(codes).Draw(rt, "species")
		genes = append(genes, fmt.Sprintf("g%d_%s", i, sp))
	}

	t := phylo.New("random")
	var build func(parent int, genes []string)
	build = func(parent int, genes []string) {
		if len(genes) == 1 {
			t.Add(parent, genes[0])
			return
		}
		k := rapid.IntRange(1, len(genes)-1).Draw(rt, "split")
		id := t.Add(parent, "")
		build(id, genes[:k])
		build(id, genes[k:])
	}
	k := rapid.IntRange(1, n-1).Draw(rt, "root split")
	build(t.Root(), genes[:k])
	build(t.Root(), genes[k:])
	return t
}

func TestFromRootProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := randomTree(rt)
		thr := rapid.Float64Range(0, 1).Draw(rt, "threshold")

		evs, tags, err := events.FromRoot(tr, tr.Root(), naming, thr)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		internal := 0
		for _, id := range tr.Nodes() {
			if !tr.IsTerm(id) {
				internal++
			}
		}
		if len(evs) != internal {
			rt.Fatalf("events: got %d, want %d", len(evs), internal)
		}

		for _, e := range evs {
			if e.Score < 0 || e.Score > 1 {
				rt.Fatalf("node %d: score %.4f out of bounds", e.Node, e.Score)
			}
			if n := len(tr.TermIDs(e.Node)); len(e.In)+len(e.Out) != n {
				rt.Fatalf("node %d: got %d genes, want %d", e.Node, len(e.In)+len(e.Out), n)
			}
			if (e.Score > thr) != (e.Type == events.Duplication) {
				rt.Fatalf("node %d: score %.4f, threshold %.4f: got %v", e.Node, e.Score, thr, e.Type)
			}
		}

		// determinism
		_, again, err := events.FromRoot(tr, tr.Root(), naming, thr)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(tags, again) {
			rt.Fatalf("tags: got %v, want %v", again, tags)
		}

		// every gene in exactly one subtree
		seen := make(map[string]int)
		for _, st := range events.SplitByDups(tr, tags) {
			for _, g := range st.Terms() {
				seen[g]++
			}
		}
		for _, g := range tr.Terms() {
			if seen[g] != 1 {
				rt.Fatalf("gene %q: found in %d subtrees", g, seen[g])
			}
		}
	})
}

func TestFromLeafProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := randomTree(rt)
		terms := tr.TermIDs(tr.Root())
		leaf := rapid.SampledFrom(terms).Draw(rt, "leaf")

		evs, _, err := events.FromLeaf(tr, leaf, naming, 0)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if len(evs) != tr.Depth(leaf) {
			rt.Fatalf("events: got %d, want %d", len(evs), tr.Depth(leaf))
		}
		for _, e := range evs {
			if n := len(tr.TermIDs(e.Node)); len(e.In)+len(e.Out) != n {
				rt.Fatalf("node %d: got %d genes, want %d", e.Node, len(e.In)+len(e.Out), n)
			}
		}
	})
}

func TestSummarize(t *testing.T) {
	evs := []events.Event{
		{Tree: "fam1", Type: events.Speciation, Score: 0},
		{Tree: "fam1", Type: events.Duplication, Score: 1},
		{Tree: "fam2", Type: events.Duplication, Score: 0.5},
	}

	s := events.Summarize(evs)
	if s.Trees != 2 {
		t.Errorf("trees: got %d, want %d", s.Trees, 2)
	}
	if n := s.Count[events.Duplication]; n != 2 {
		t.Errorf("duplications: got %d, want %d", n, 2)
	}
	if n := s.Count[events.Speciation]; n != 1 {
		t.Errorf("speciations: got %d, want %d", n, 1)
	}
	if s.Mean != 0.5 {
		t.Errorf("mean: got %.4f, want %.4f", s.Mean, 0.5)
	}
	if s.StdDev != 0.5 {
		t.Errorf("standard deviation: got %.4f, want %.4f", s.StdDev, 0.5)
	}
	if s.Median != 0.5 {
		t.Errorf("median: got %.4f, want %.4f", s.Median, 0.5)
	}
	if s.Low != 0 || s.High != 1 {
		t.Errorf("quantiles: got %.4f-%.4f, want 0-1", s.Low, s.High)
	}

	if s := events.Summarize(nil); s.Trees != 0 || len(s.Count) != 0 {
		t.Errorf("empty: got %+v", s)
	}
}

func TestTSVScores(t *testing.T) {
	evs := []events.Event{
		{Tree: "fam1", Node: 0, Type: events.Duplication, Score: 1.0 / 3, In: []string{"A_human"}, Out: []string{"B_human"}},
		{Tree: "fam1", Node: 2, Type: events.Speciation, Score: 2.0 / 7, In: []string{"A_human"}, Out: []string{"A_mouse"}},
	}

	var w bytes.Buffer
	if err := events.WriteTSV(&w, evs); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	got, err := events.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}
	if len(got) != len(evs) {
		t.Fatalf("events: got %d, want %d", len(got), len(evs))
	}
	for i, e := range got {
		if e.Score != evs[i].Score {
			t.Errorf("event %d: score: got %v, want %v", i, e.Score, evs[i].Score)
		}
	}
}
