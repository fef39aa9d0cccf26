// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reconcilecmd implements a command to reconcile
// the gene trees of a project
// with the species tree.
package reconcilecmd

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/param"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/project"
	"github.com/js-arias/genetree/reconcile"
	"github.com/js-arias/genetree/species"
)

var Command = &command.Command{
	Usage: `reconcile [--method <method>] [--threshold <value>]
	[--trees <file>] [--cpu <number>] [-o|--output <file>]
	<project-file>`,
	Short: "reconcile gene trees with the species tree",
	Long: `
Command reconcile reads the gene trees and the species tree of a genetree
project, and classifies each node of the gene trees as a duplication or a
speciation.

The argument of the command is the name of the project file.

By default, the method defined in the project parameters is used. Use the flag
--method to use a different method. Valid methods are:

	overlap   the species overlap criterion, the species tree is not
	          required. The flag --threshold can be used to set a species
	          overlap threshold different from the one defined in the
	          project parameters.
	template  the gene tree is reconciled with the topology of the species
	          tree. The resulting trees contain the genes, as well as the
	          lineages expected from the species tree that are absent in the
	          gene tree (i.e., the gene losses).
	zmasek    each node of the gene tree is mapped to the species tree
	          using the algorithm of Zmasek and Eddy (2001). A node is a
	          duplication if it is mapped to the same species tree node as
	          any of its children.

For the methods that use the species tree, all the species of the genes must
be present in the species tree.

The gene trees must be binary. Trees that cannot be reconciled will be
reported in the standard error and ignored.

The events are printed in the standard output as a tab-delimited file (see
"genetree help events-files"). Use the flag --output, or -o, to define an
output file.

If the flag --trees is defined, the classified trees will be written in the
indicated file in newick format, with the event type of each node stored as
an NHX comment (e.g., "[&&NHX:evoltype=D]"). For the template method, the
written trees are the reconciled trees, and gene losses are marked with the
"L" type. Trees are written one per line, sorted by the name of the
gene tree.

By default, all available processors will be used. Use the flag --cpu to
change the number of processors.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var method string
var treesFile string
var output string
var threshold float64
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&method, "method", "", "")
	c.Flags().StringVar(&treesFile, "trees", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().Float64Var(&threshold, "threshold", -1, "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.GOMAXPROCS(0), "")
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
	if method != "" {
		if err := pm.SetMethod(method); err != nil {
			return c.UsageError(err.Error())
		}
	}
	if threshold >= 0 {
		if err := pm.SetThreshold(threshold); err != nil {
			return err
		}
	}

	var sp *phylo.Tree
	if pm.Method() != param.Overlap {
		sp, err = p.SpeciesTree()
		if err != nil {
			return err
		}
	}

	res := classify(trees, sp, nm, pm)
	var evs []events.Event
	var out []tagged
	for i, r := range res {
		if r.err != nil {
			fmt.Fprintf(c.Stderr(), "warning: tree %q: %v\n", trees[i].Name(), r.err)
			continue
		}
		evs = append(evs, r.evs...)
		out = append(out, r.tagged)
		if r.losses > 0 {
			fmt.Fprintf(c.Stderr(), "tree %q: %d gene losses\n", trees[i].Name(), r.losses)
		}
	}

	if treesFile != "" {
		if err := writeTrees(treesFile, out); err != nil {
			return err
		}
	}

	if output == "" {
		return events.WriteTSV(c.Stdout(), evs)
	}
	return writeEvents(output, pm.Method(), evs)
}

// A tagged is a tree
// with its nodes classified.
type tagged struct {
	t    *phylo.Tree
	tags events.Tags
}

type treeResult struct {
	tagged
	evs    []events.Event
	losses int
	err    error
}

type treeJob struct {
	t   *phylo.Tree
	sp  *phylo.Tree
	nm  species.Naming
	pm  *param.P
	res *treeResult
	wg  *sync.WaitGroup
}

func classify(trees []*phylo.Tree, sp *phylo.Tree, nm species.Naming, pm *param.P) []treeResult {
	if numCPU < 1 {
		numCPU = runtime.GOMAXPROCS(0)
	}

	jc := make(chan treeJob, numCPU*2)
	for i := 0; i < numCPU; i++ {
		go procTree(jc)
	}

	res := make([]treeResult, len(trees))
	var wg sync.WaitGroup
	for i, t := range trees {
		wg.Add(1)
		jc <- treeJob{
			t:   t,
			sp:  sp,
			nm:  nm,
			pm:  pm,
			res: &res[i],
			wg:  &wg,
		}
	}
	close(jc)
	wg.Wait()

	return res
}

func procTree(c chan treeJob) {
	for j := range c {
		*j.res = classifyTree(j)
		j.wg.Done()
	}
}

func classifyTree(j treeJob) treeResult {
	switch j.pm.Method() {
	case param.Template:
		r, evs, err := reconcile.Tree(j.t, j.t.Root(), j.sp, j.nm)
		if err != nil {
			return treeResult{err: err}
		}
		return treeResult{
			tagged: tagged{t: r.Tree, tags: r.Tags},
			evs:    evs,
			losses: len(r.Losses()),
		}
	case param.Zmasek:
		tags, err := reconcile.Zmasek(j.t, j.sp, j.nm)
		if err != nil {
			return treeResult{err: err}
		}
		evs, err := events.FromTags(j.t, tags, j.nm)
		if err != nil {
			return treeResult{err: err}
		}
		return treeResult{
			tagged: tagged{t: j.t, tags: tags},
			evs:    evs,
		}
	}

	evs, tags, err := events.FromRoot(j.t, j.t.Root(), j.nm, j.pm.Threshold())
	if err != nil {
		return treeResult{err: err}
	}
	return treeResult{
		tagged: tagged{t: j.t, tags: tags},
		evs:    evs,
	}
}

func writeTrees(name string, ts []tagged) (err error) {
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

	bw := bufio.NewWriter(f)
	for _, t := range ts {
		if err := t.t.Newick(bw, t.tags.Tagger()); err != nil {
			return fmt.Errorf("while writing to %q: %v", name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeEvents(name, method string, evs []events.Event) (err error) {
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

	fmt.Fprintf(f, "# events detected with method %q\n", method)
	fmt.Fprintf(f, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := events.WriteTSV(f, evs); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
