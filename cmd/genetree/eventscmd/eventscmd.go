// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package eventscmd implements a command to detect
// evolutionary events in the gene trees of a project
// using the species overlap criterion.
package eventscmd

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/phylo"
	"github.com/js-arias/genetree/project"
	"github.com/js-arias/genetree/species"
)

var Command = &command.Command{
	Usage: `events [--leaf <gene>] [--threshold <value>]
	[--cpu <number>] [-o|--output <file>]
	<project-file>`,
	Short: "detect duplications and speciations",
	Long: `
Command events reads the gene trees of a genetree project and detects the
evolutionary events (duplications and speciations) at each node of the trees
using the species overlap criterion: if the species found at both sides of a
split share species, and the species overlap score is above a threshold, the
split is a duplication; otherwise it is a speciation. The species of the genes
are defined by the naming scheme of the project (see "genetree help
species-naming").

The argument of the command is the name of the project file.

The gene trees must be rooted, with a bifurcation at the root. By default,
every split of each tree is evaluated from the root. If the flag --leaf is
defined with the name of a gene, only the trees that contain that gene will
be analyzed, and the events will be detected by ascending from that gene to
the root, comparing the genes browsed so far with the genes of the sister
lineages at each level.

By default, the species overlap threshold is the one defined in the project
parameters. Use the flag --threshold to use a different value.

Trees that cannot be analyzed (e.g., unrooted trees, or trees with genes
without a defined species) will be reported in the standard error and
ignored.

The events are printed in the standard output as a tab-delimited file (see
"genetree help events-files"). Use the flag --output, or -o, to define an
output file.

By default, all available processors will be used. Use the flag --cpu to
change the number of processors.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var leafName string
var output string
var threshold float64
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&leafName, "leaf", "", "")
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
	if threshold >= 0 {
		if err := pm.SetThreshold(threshold); err != nil {
			return err
		}
	}

	res := detect(trees, nm, pm.Threshold())
	var evs []events.Event
	for i, r := range res {
		if r.err != nil {
			fmt.Fprintf(c.Stderr(), "warning: tree %q: %v\n", trees[i].Name(), r.err)
			continue
		}
		evs = append(evs, r.evs...)
	}

	if output == "" {
		return events.WriteTSV(c.Stdout(), evs)
	}
	return writeEvents(output, evs)
}

type treeResult struct {
	evs []events.Event
	err error
}

type treeJob struct {
	t   *phylo.Tree
	nm  species.Naming
	thr float64
	res *treeResult
	wg  *sync.WaitGroup
}

func detect(trees []*phylo.Tree, nm species.Naming, thr float64) []treeResult {
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
			nm:  nm,
			thr: thr,
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
		if leafName == "" {
			j.res.evs, _, j.res.err = events.FromRoot(j.t, j.t.Root(), j.nm, j.thr)
			j.wg.Done()
			continue
		}

		if id, ok := j.t.TaxNode(leafName); ok {
			j.res.evs, _, j.res.err = events.FromLeaf(j.t, id, j.nm, j.thr)
		}
		j.wg.Done()
	}
}

func writeEvents(name string, evs []events.Event) (err error) {
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

	fmt.Fprintf(f, "# species overlap events\n")
	fmt.Fprintf(f, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := events.WriteTSV(f, evs); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
