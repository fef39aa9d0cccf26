// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package split implements a command to split
// the gene trees of a project
// at the duplication nodes.
package split

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/project"
)

var Command = &command.Command{
	Usage: `split [--threshold <value>] [--newick]
	[-o|--output <file>] <project-file>`,
	Short: "split gene trees at duplications",
	Long: `
Command split reads the gene trees of a genetree project, detects the
duplications using the species overlap criterion, and cuts the trees at each
duplication node. The result is a set of subtrees in which all the splits are
speciations (i.e., the subtrees only contain orthologous genes).

The argument of the command is the name of the project file.

By default, the species overlap threshold is the one defined in the project
parameters. Use the flag --threshold to use a different value.

The subtrees are named with the name of the source tree and a sequential
number. Each gene of a tree will be found in exactly one subtree.

By default, the subtrees are printed in the standard output as a
tab-delimited tree file (see "genetree help tree-files"). Use the flag
--newick to print the trees in newick format. Use the flag --output, or -o, to
define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var newickFlag bool
var threshold float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().BoolVar(&newickFlag, "newick", false, "")
	c.Flags().Float64Var(&threshold, "threshold", -1, "")
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
	pm, err := p.Params()
	if err != nil {
		return err
	}
	nm, err := p.Naming(pm)
	if err != nil {
		return err
	}
	if threshold >= 0 {
		if err := pm.SetThreshold(threshold); err != nil {
			return err
		}
	}

	var subs []*phylo.Tree
	for _, t := range trees {
		_, tags, err := events.FromRoot(t, t.Root(), nm, pm.Threshold())
		if err != nil {
			fmt.Fprintf(c.Stderr(), "warning: tree %q: %v\n", t.Name(), err)
			continue
		}
		subs = append(subs, events.SplitByDups(t, tags)...)
	}

	if output == "" {
		return writeTrees(c.Stdout(), subs)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := writeTrees(f, subs); err != nil {
		f.Close()
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return f.Close()
}

func writeTrees(w io.Writer, ts []*phylo.Tree) error {
	if !newickFlag {
		return phylo.WriteTSV(w, ts...)
	}

	bw := bufio.NewWriter(w)
	for _, t := range ts {
		if err := t.Newick(bw, nil); err != nil {
			return err
		}
	}
	return bw.Flush()
}
