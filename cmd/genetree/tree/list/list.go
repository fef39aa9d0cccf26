// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of gene trees in a genetree project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/project"
)

var Command = &command.Command{
	Usage: "list [--count] <project-file>",
	Short: "print a list of the gene trees in a project",
	Long: `
Command list reads the gene trees from a genetree project and prints the tree
names in the standard output.

The argument of the command is the name of the project file.

If the flag --count is defined, the number of genes of each tree will be
printed after the tree name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var countFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&countFlag, "count", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	trees, err := p.GeneTrees()
	if err != nil {
		return err
	}

	byName := make(map[string]*phylo.Tree, len(trees))
	for _, t := range trees {
		byName[t.Name()] = t
	}
	for _, tn := range phylo.Names(trees) {
		if countFlag {
			t := byName[tn]
			fmt.Fprintf(c.Stdout(), "%s\t%d\n", tn, len(t.TermIDs(t.Root())))
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\n", tn)
	}
	return nil
}
