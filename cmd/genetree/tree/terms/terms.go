// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the gene trees of a genetree project.
package terms

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/project"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: "terms [--tree <tree-name>] [--species] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the gene trees from a genetree project and prints the name
of the terminals in the standard output.

The argument of the command is the name of the project file.

By default all terminals will be printed. If the flag --tree is set, only the
terminals of the indicated tree will be printed.

If the flag --species is set, the species of each terminal, as defined by the
species naming scheme of the project, will be printed after the terminal
name. Terminals without a species will be marked with a "?".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var speciesFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&speciesFlag, "species", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if p.Path(project.GeneTrees) == "" {
		return nil
	}
	trees, err := p.GeneTrees()
	if err != nil {
		return err
	}

	ls := makeTermList(trees)
	if !speciesFlag {
		for _, term := range ls {
			fmt.Fprintf(c.Stdout(), "%s\n", term)
		}
		return nil
	}

	pm, err := p.Params()
	if err != nil {
		return err
	}
	nm, err := p.Naming(pm)
	if err != nil {
		return err
	}
	for _, term := range ls {
		sp := nm(term)
		if sp == "" {
			sp = "?"
		}
		fmt.Fprintf(c.Stdout(), "%s\t%s\n", term, sp)
	}
	return nil
}

func makeTermList(trees []*phylo.Tree) []string {
	terms := make(map[string]bool)
	for _, t := range trees {
		if treeName != "" && t.Name() != treeName {
			continue
		}
		for _, tax := range t.Terms() {
			terms[tax] = true
		}
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	return termList
}
