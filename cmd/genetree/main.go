// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Genetree is a tool for the detection of evolutionary events
// (duplications and speciations)
// in gene trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/genetree/cmd/genetree/eventscmd"
	"github.com/js-arias/genetree/cmd/genetree/orthologs"
	"github.com/js-arias/genetree/cmd/genetree/param"
	"github.com/js-arias/genetree/cmd/genetree/plot"
	"github.com/js-arias/genetree/cmd/genetree/reconcilecmd"
	"github.com/js-arias/genetree/cmd/genetree/split"
	"github.com/js-arias/genetree/cmd/genetree/stats"
	"github.com/js-arias/genetree/cmd/genetree/tree"
)

var app = &command.Command{
	Usage: "genetree <command> [<argument>...]",
	Short: "a tool for evolutionary events in gene trees",
}

func init() {
	app.Add(eventscmd.Command)
	app.Add(orthologs.Command)
	app.Add(param.Command)
	app.Add(plot.Command)
	app.Add(reconcilecmd.Command)
	app.Add(split.Command)
	app.Add(stats.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
