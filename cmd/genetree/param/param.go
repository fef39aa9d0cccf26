// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements a command to manage
// the parameters of the analysis of a project.
package param

import (
	"flag"
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/genetree/param"
	"github.com/js-arias/genetree/project"
)

var Command = &command.Command{
	Usage: `param [--add <param-file>] [--file <file-name>]
	[--threshold <value>] [--method <method>]
	[--naming <scheme>] [--prefix <value>]
	[--delimiter <string>] [--field <value>]
	<project-file>`,
	Short: "manage analysis parameters",
	Long: `
Command param manages the parameters used for the detection of evolutionary
events in the gene trees of a genetree project.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

If the flag --add is defined, it will use the indicated file for the
parameters.

By default, any change on the parameters will be stored in the current
parameters file. Use the flag --file to define a new parameters file. If the
project does not have a parameters file, a new one will be created with the
name 'params.tab'.

The flag --threshold sets the species overlap threshold: a split with a
species overlap score above the threshold is a duplication. The value must be
between 0 and 1, the default is 0 (i.e., any shared species implies a
duplication).

The flag --method sets the default method used by the command "reconcile".
Valid values are:

	overlap   species overlap (no species tree required)
	template  reconciliation on the topology of the species tree
	zmasek    reconciliation with the algorithm of Zmasek and Eddy (2001)

The flag --naming sets the scheme used to retrieve the species of a gene.
Valid values are "prefix", "delimiter" (the default) and "table". The flag
--prefix sets the number of characters of a species prefix (default 3). The
flags --delimiter and --field set the delimiter (default "_") and the field
of the gene name with the species code (default -1, the last field). See
"genetree help species-naming" for more details.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFile string
var paramFile string
var method string
var naming string
var delimiter string
var threshold float64
var prefix int
var field int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFile, "add", "", "")
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&method, "method", "", "")
	c.Flags().StringVar(&naming, "naming", "", "")
	c.Flags().StringVar(&delimiter, "delimiter", "", "")
	c.Flags().Float64Var(&threshold, "threshold", -1, "")
	c.Flags().IntVar(&prefix, "prefix", 0, "")
	c.Flags().IntVar(&field, "field", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if addFile != "" {
		if _, err := param.Read(addFile); err != nil {
			return err
		}
		p.Add(project.Params, addFile)
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}

	pm, err := p.Params()
	if err != nil {
		return err
	}
	if paramFile != "" {
		pm.SetName(paramFile)
	}

	ed := false
	if threshold >= 0 {
		if err := pm.SetThreshold(threshold); err != nil {
			return err
		}
		ed = true
	}
	if method != "" {
		if err := pm.SetMethod(method); err != nil {
			return err
		}
		ed = true
	}
	if naming != "" {
		if err := pm.SetNaming(naming); err != nil {
			return err
		}
		ed = true
	}
	if prefix != 0 {
		if err := pm.SetPrefix(prefix); err != nil {
			return err
		}
		ed = true
	}
	if delimiter != "" {
		if err := pm.SetDelimiter(delimiter); err != nil {
			return err
		}
		ed = true
	}
	if isSet(c, "field") {
		pm.SetField(field)
		ed = true
	}

	if ed && pm.Name() == "" {
		pm.SetName("params.tab")
	}
	if pm.Name() != "" && p.Path(project.Params) != pm.Name() {
		if err := pm.Write(); err != nil {
			return err
		}
		p.Add(project.Params, pm.Name())
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}
	if ed {
		if err := pm.Write(); err != nil {
			return err
		}
		return nil
	}

	printParams(c.Stdout(), pm)
	return nil
}

// IsSet returns true if a flag was set
// in the command line.
func isSet(c *command.Command, name string) bool {
	set := false
	c.Flags().Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printParams(w io.Writer, pm *param.P) {
	name := pm.Name()
	if name == "" {
		name = "(default values)"
	}
	fmt.Fprintf(w, "file:      %s\n", name)
	fmt.Fprintf(w, "threshold: %.6f\n", pm.Threshold())
	fmt.Fprintf(w, "method:    %s\n", pm.Method())
	fmt.Fprintf(w, "naming:    %s\n", pm.Naming())
	switch pm.Naming() {
	case param.ByPrefix:
		fmt.Fprintf(w, "prefix:    %d\n", pm.Prefix())
	case param.ByDelimiter:
		fmt.Fprintf(w, "delimiter: %q\n", pm.Delimiter())
		fmt.Fprintf(w, "field:     %d\n", pm.Field())
	}
}
