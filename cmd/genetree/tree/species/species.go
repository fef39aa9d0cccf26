// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package species implements a command to set
// the species tree
// and the species table
// of a genetree project.
package species

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/project"
	"github.com/js-arias/genetree/species"
)

var Command = &command.Command{
	Usage: `species [--table <species-file>]
	<project-file> [<newick-file>]`,
	Short: "set the species tree of a project",
	Long: `
Command species sets the species tree, and the table of gene species, of a
genetree project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is a file with the species tree in newick format. The
terminals of the species tree must be the species codes used by the gene
trees. The file must contain a single tree.

The flag --table sets a tab-delimited file with the species of each gene (see
"genetree help species-naming"). The table is used when the naming scheme of
the project is "table".

If no file is given, the command will print the species of the species tree,
and the species of the genes that are not found in the species tree.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tableFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&tableFile, "table", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	pFile := args[0]
	p, err := project.Read(pFile)
	if errors.Is(err, os.ErrNotExist) {
		p = project.New()
		p.SetName(pFile)
	} else if err != nil {
		return err
	}

	if len(args) < 2 && tableFile == "" {
		return printSpecies(c, p)
	}

	if tableFile != "" {
		if err := checkTable(tableFile); err != nil {
			return err
		}
		p.Add(project.Species, tableFile)
	}
	if len(args) > 1 {
		prev := p.Add(project.SpeciesTree, args[1])
		if _, err := p.SpeciesTree(); err != nil {
			p.Add(project.SpeciesTree, prev)
			return err
		}
	}
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func checkTable(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := species.ReadTSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func printSpecies(c *command.Command, p *project.Project) error {
	sp, err := p.SpeciesTree()
	if err != nil {
		return err
	}
	spSet := species.NewSet(sp.Terms()...)
	for _, s := range spSet.List() {
		fmt.Fprintf(c.Stdout(), "%s\n", s)
	}

	if p.Path(project.GeneTrees) == "" {
		return nil
	}
	trees, err := p.GeneTrees()
	if err != nil {
		return err
	}
	pm, err := p.Params()
	if err != nil {
		return err
	}
	nm, err := p.Naming(pm)
	if err != nil {
		return err
	}

	missing := make(species.Set)
	for _, t := range trees {
		for _, g := range t.Terms() {
			s := nm(g)
			if s == "" {
				fmt.Fprintf(c.Stderr(), "warning: tree %q: gene %q: undefined species\n", t.Name(), g)
				continue
			}
			if !spSet.Has(s) {
				missing.Add(s)
			}
		}
	}
	for _, s := range missing.List() {
		fmt.Fprintf(c.Stderr(), "warning: species %q not in species tree\n", s)
	}
	return nil
}
