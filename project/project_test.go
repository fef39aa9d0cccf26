// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.GeneTrees, "gene-trees.tab"},
		{project.Params, "params.tab"},
		{project.Species, "species.tab"},
		{project.SpeciesTree, "species-tree.nwk"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	if prev := np.Add(project.Species, ""); prev != "species.tab" {
		t.Errorf("removed path: got %q, want %q", prev, "species.tab")
	}
	if path := np.Path(project.Species); path != "" {
		t.Errorf("removed set: got path %q", path)
	}
}

func TestProjectData(t *testing.T) {
	p := project.New()
	p.SetName("tmp-project-data")

	if _, err := p.GeneTrees(); err == nil {
		t.Errorf("gene trees: expecting error on undefined dataset")
	}
	if _, err := p.SpeciesTree(); err == nil {
		t.Errorf("species tree: expecting error on undefined dataset")
	}

	// undefined parameters are the default values
	pm, err := p.Params()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nm, err := p.Naming(pm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := nm("A_human"); got != "human" {
		t.Errorf("naming: got %q, want %q", got, "human")
	}

	gt := phylo.New("fam1")
	a := gt.Add(gt.Root(), "")
	gt.Add(a, "A_human")
	gt.Add(a, "A_mouse")
	gt.Add(gt.Root(), "B_human")

	genes := "tmp-gene-trees-for-test.tab"
	defer os.Remove(genes)
	p.Add(project.GeneTrees, genes)
	if err := p.WriteGeneTrees([]*phylo.Tree{gt}); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}
	ts, err := p.GeneTrees()
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	if len(ts) != 1 {
		t.Fatalf("trees: got %d, want %d", len(ts), 1)
	}
	if got, want := ts[0].Terms(), gt.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("terms: got %v, want %v", got, want)
	}

	spName := "tmp-species-tree-for-test.nwk"
	defer os.Remove(spName)
	if err := os.WriteFile(spName, []byte("((human,mouse),rat);\n"), 0o644); err != nil {
		t.Fatalf("unable to write species tree: %v", err)
	}
	p.Add(project.SpeciesTree, spName)
	sp, err := p.SpeciesTree()
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	if got, want := sp.Terms(), []string{"human", "mouse", "rat"}; !reflect.DeepEqual(got, want) {
		t.Errorf("species tree: got %v, want %v", got, want)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown dataset": "dataset\tpath\ngenetrees\tgt.tab\nranges\tranges.tab\n",
		"duplicated":      "dataset\tpath\nsptree\ta.nwk\nSPTREE\tb.nwk\n",
		"no path field":   "dataset\tfile\nsptree\ta.nwk\n",
	}

	for name, data := range tests {
		f := "tmp-project-error-for-test.tab"
		if err := os.WriteFile(f, []byte(data), 0644); err != nil {
			t.Fatalf("%s: unable to write file: %v", name, err)
		}
		_, err := project.Read(f)
		os.Remove(f)
		if err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}

	// keywords are case insensitive
	// and rows without path are ignored
	f := "tmp-project-case-for-test.tab"
	defer os.Remove(f)
	data := "# genetree project files\nDataset\tPath\n GeneTrees \tgt.tab\nspecies\t\n"
	if err := os.WriteFile(f, []byte(data), 0644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	p, err := project.Read(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testProject(t, p, []setPath{{project.GeneTrees, "gt.tab"}})

	if _, err := project.ParseDataset("sptree"); err != nil {
		t.Errorf("parse dataset: unexpected error: %v", err)
	}
	if _, err := project.ParseDataset("trees"); err == nil {
		t.Errorf("parse dataset %q: expecting error", "trees")
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	// datasets are listed in a fixed order
	var datasets []project.Dataset
	for _, d := range project.Datasets {
		if slices.ContainsFunc(sets, func(s setPath) bool { return s.set == d }) {
			datasets = append(datasets, d)
		}
	}

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}
