// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// a summary of an events file.
package stats

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/events"
)

var Command = &command.Command{
	Usage: "stats [<events-file>...]",
	Short: "print a summary of evolutionary events",
	Long: `
Command stats reads one or more events files (see "genetree help
events-files") and prints the number of trees, the number of speciations and
duplications, and the mean, standard deviation, median, and the 95% interval
of the species overlap scores.

The arguments of the command are the events files. If no file is given, the
events will be read from the standard input.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		args = append(args, "-")
	}

	var evs []events.Event
	for _, a := range args {
		e, err := readEvents(c.Stdin(), a)
		if err != nil {
			return err
		}
		evs = append(evs, e...)
	}

	s := events.Summarize(evs)
	w := c.Stdout()
	fmt.Fprintf(w, "trees:         %d\n", s.Trees)
	fmt.Fprintf(w, "events:        %d\n", len(evs))
	fmt.Fprintf(w, "speciations:   %d\n", s.Count[events.Speciation])
	fmt.Fprintf(w, "duplications:  %d\n", s.Count[events.Duplication])
	if len(evs) == 0 {
		return nil
	}
	fmt.Fprintf(w, "score mean:    %.6f\n", s.Mean)
	fmt.Fprintf(w, "score std dev: %.6f\n", s.StdDev)
	fmt.Fprintf(w, "score median:  %.6f\n", s.Median)
	fmt.Fprintf(w, "score 95%%:     %.6f-%.6f\n", s.Low, s.High)
	return nil
}

func readEvents(r io.Reader, name string) ([]events.Event, error) {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	evs, err := events.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return evs, nil
}
