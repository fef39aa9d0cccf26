// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add gene trees
// to a genetree project.
package add

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/project"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>]
	[--newick <name>] [--timetree]
	<project-file> [<tree-file>...]`,
	Short: "add gene trees to a genetree project",
	Long: `
Command add reads one or more gene trees from one or more tree files, and adds
the trees to a genetree project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

By default, the input is expected to be in the form of tab-delimited tree
files (see "genetree help tree-files"). To import newick trees (i.e., trees in
parenthetical format), use the flag --newick with a name to be defined for the
trees found in the input files. If a file contains more than one tree, a
sequential number will be added to the tree name. To import time-calibrated
trees in the tab-delimited format of the timetree package, use the flag
--timetree; the branch lengths will be set in million years.

By default the trees will be stored in the gene trees file currently defined
for the project. If the project does not have a gene trees file, a new one
will be created with the name 'gene-trees.tab'. A different file name can be
defined using the flag --file, or -f. If this flag is used, and there is a
gene trees file already defined, then a new file with that name will be
created, and used as the gene trees file for the project (previously defined
trees will be kept).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var newickName string
var timeTree bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&newickName, "newick", "", "")
	c.Flags().BoolVar(&timeTree, "timetree", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if newickName != "" && timeTree {
		return c.UsageError("flags --newick and --timetree are incompatible")
	}
	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	var trees []*phylo.Tree
	names := make(map[string]bool)
	if tf := p.Path(project.GeneTrees); tf != "" {
		trees, err = p.GeneTrees()
		if err != nil {
			return fmt.Errorf("on project %q: %v", pFile, err)
		}
		for _, t := range trees {
			names[t.Name()] = true
		}
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for i, a := range args {
		fn := a
		if fn == "-" {
			fn = ""
			a = "stdin"
		}
		var nt []*phylo.Tree
		switch {
		case newickName != "":
			tn := newickName
			if i > 0 {
				tn = fmt.Sprintf("%s.%d", newickName, i)
			}
			nt, err = readTrees(c.Stdin(), fn, func(r io.Reader) ([]*phylo.Tree, error) {
				return phylo.ReadNewick(r, tn)
			})
		case timeTree:
			nt, err = readTrees(c.Stdin(), fn, phylo.ReadTimetree)
		default:
			nt, err = readTrees(c.Stdin(), fn, phylo.ReadTSV)
		}
		if err != nil {
			return err
		}

		for _, t := range nt {
			if names[t.Name()] {
				return fmt.Errorf("when adding trees from %q: tree %q already in project", a, t.Name())
			}
			names[t.Name()] = true
			trees = append(trees, t)
		}
	}

	if treeFile == "" {
		treeFile = p.Path(project.GeneTrees)
		if treeFile == "" {
			treeFile = "gene-trees.tab"
		}
	}

	p.Add(project.GeneTrees, treeFile)
	if err := p.WriteGeneTrees(trees); err != nil {
		return err
	}
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func readTrees(r io.Reader, name string, read func(io.Reader) ([]*phylo.Tree, error)) ([]*phylo.Tree, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	ts, err := read(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return ts, nil
}
