// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/genetree/param"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/species"
)

// GeneTrees reads the gene trees file
// as defined in a project.
// Trees are sorted by name.
func (p *Project) GeneTrees() ([]*phylo.Tree, error) {
	name := p.Path(GeneTrees)
	if name == "" {
		return nil, fmt.Errorf("gene trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ts, err := phylo.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	slices.SortFunc(ts, func(a, b *phylo.Tree) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return ts, nil
}

// WriteGeneTrees writes the gene trees
// into the gene trees file defined in a project.
func (p *Project) WriteGeneTrees(ts []*phylo.Tree) (err error) {
	name := p.Path(GeneTrees)
	if name == "" {
		return fmt.Errorf("gene trees not defined in project %q", p.name)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := phylo.WriteTSV(f, ts...); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}

// Params reads the parameters file
// as defined in a project.
// If no parameters file is defined,
// it returns the default parameters.
func (p *Project) Params() (*param.P, error) {
	name := p.Path(Params)
	if name == "" {
		return param.New(""), nil
	}
	return param.Read(name)
}

// SpeciesTable reads a table of gene species
// as defined in a project.
// If no table is defined,
// it returns nil.
func (p *Project) SpeciesTable() (*species.Table, error) {
	name := p.Path(Species)
	if name == "" {
		return nil, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tb, err := species.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return tb, nil
}

// Naming returns the species naming function
// defined by the project parameters.
func (p *Project) Naming(pm *param.P) (species.Naming, error) {
	tb, err := p.SpeciesTable()
	if err != nil {
		return nil, err
	}
	nm, err := pm.Species(tb)
	if err != nil {
		return nil, fmt.Errorf("project %q: %v", p.name, err)
	}
	return nm, nil
}

// SpeciesTree reads the species tree
// as defined in a project.
// The species tree is a Newick file
// with a single tree
// whose terminals are species codes.
func (p *Project) SpeciesTree() (*phylo.Tree, error) {
	name := p.Path(SpeciesTree)
	if name == "" {
		return nil, fmt.Errorf("species tree not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ts, err := phylo.ReadNewick(f, "species")
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if len(ts) > 1 {
		return nil, fmt.Errorf("on file %q: expecting a single tree, found %d", name, len(ts))
	}
	return ts[0], nil
}
