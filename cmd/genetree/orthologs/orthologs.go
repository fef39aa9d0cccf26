// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package orthologs implements a command to print
// the pairs of orthologous genes.
package orthologs

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/events"
	"github.com/js-arias/genetree/project"
)

var Command = &command.Command{
	Usage: "orthologs [-i|--input <events-file>] [<project-file>]",
	Short: "print pairs of orthologous genes",
	Long: `
Command orthologs prints the pairs of orthologous genes, i.e., the genes found
at different sides of a speciation event.

If the flag --input, or -i, is defined, the events will be read from the
indicated events file (see "genetree help events-files"), for example, the
output of the commands "events" or "reconcile". Otherwise, the argument of the
command is the name of a project file, and the events will be detected in the
gene trees of the project using the species overlap criterion and the
threshold defined in the project parameters.

Each pair is printed in a line, with the genes separated by a tab. Pairs are
unique and sorted.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var input string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&input, "input", "", "")
	c.Flags().StringVar(&input, "i", "", "")
}

func run(c *command.Command, args []string) error {
	var evs []events.Event
	var err error
	if input != "" {
		evs, err = readEvents(input)
	} else {
		if len(args) < 1 {
			return c.UsageError("expecting project file or events file")
		}
		evs, err = projectEvents(c, args[0])
	}
	if err != nil {
		return err
	}

	for _, p := range events.Orthologs(evs) {
		fmt.Fprintf(c.Stdout(), "%s\t%s\n", p.A, p.B)
	}
	return nil
}

func readEvents(name string) ([]events.Event, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	evs, err := events.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return evs, nil
}

func projectEvents(c *command.Command, name string) ([]events.Event, error) {
	p, err := project.Read(name)
	if err != nil {
		return nil, err
	}
	trees, err := p.GeneTrees()
	if err != nil {
		return nil, err
	}
	pm, err := p.Params()
	if err != nil {
		return nil, err
	}
	nm, err := p.Naming(pm)
	if err != nil {
		return nil, err
	}

	var evs []events.Event
	for _, t := range trees {
		e, _, err := events.FromRoot(t, t.Root(), nm, pm.Threshold())
		if err != nil {
			fmt.Fprintf(c.Stderr(), "warning: tree %q: %v\n", t.Name(), err)
			continue
		}
		evs = append(evs, e...)
	}
	return evs, nil
}
