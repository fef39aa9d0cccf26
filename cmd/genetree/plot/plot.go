// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to draw
// a histogram of the species overlap scores
// of an events file.
package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/chart"
	"github.com/js-arias/genetree/events"
)

var Command = &command.Command{
	Usage: `plot [--bins <number>] [--color <scale>] [--key <key-file>]
	[--title <text>] -o|--output <image-file> [<events-file>]`,
	Short: "draw a histogram of species overlap scores",
	Long: `
Command plot reads an events file (see "genetree help events-files") and
draws a histogram of the species overlap scores, with the bars of
speciations and duplications stacked.

The argument of the command is the events file. If no file is given, the
events will be read from the standard input.

The flag --output, or -o, is required and defines the name of the image file.
The format of the image is taken from the file extension (e.g., ".png",
".svg", or ".pdf").

By default, the histogram uses 20 bins. Use the flag --bins to change the
number of bins.

By default, the colors of the event types are taken from a color-blind safe
rainbow scale. Use the flag --color to use a different scale. Valid values
are:

	rainbow       purple to red rainbow scale of Paul Tol
	incandescent  incandescent scale of Paul Tol
	iridescent    iridescent scale of Paul Tol
	gray          a gray scale

The flag --key can be used to define the colors of each event type using a
tab-delimited file with the following columns:

	-type   the event type ("S" or "D")
	-color  a RGB value separated by commas, for example, "125,132,148".

Here is an example of a key file:

	type	color	comment
	S	68, 119, 170	speciation
	D	238, 102, 119	duplication

Use the flag --title to set a title for the chart.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var colorScale string
var keyFile string
var title string
var bins int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&colorScale, "color", "", "")
	c.Flags().StringVar(&keyFile, "key", "", "")
	c.Flags().StringVar(&title, "title", "", "")
	c.Flags().IntVar(&bins, "bins", 20, "")
}

func run(c *command.Command, args []string) error {
	if output == "" {
		return c.UsageError("flag --output must be defined")
	}
	if bins < 1 {
		return c.UsageError(fmt.Sprintf("invalid number of bins: %d", bins))
	}

	g, err := chart.ParseGradient(colorScale)
	if err != nil {
		return c.UsageError(err.Error())
	}
	key := chart.NewKey(g)
	if keyFile != "" {
		key, err = readKey(keyFile, g)
		if err != nil {
			return err
		}
	}

	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	evs, err := readEvents(c.Stdin(), name)
	if err != nil {
		return err
	}
	if len(evs) == 0 {
		return fmt.Errorf("no events found in %q", name)
	}

	h := chart.NewHistogram(evs, bins, key)
	if err := h.Save(output, title); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}

func readKey(name string, g chart.Gradienter) (*chart.Key, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	k, err := chart.ReadKey(f, g)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return k, nil
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
