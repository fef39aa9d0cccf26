// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands
// that dealt with gene trees
// and the species tree.
package tree

import (
	"github.com/js-arias/command"
	"github.com/js-arias/genetree/cmd/genetree/tree/add"
	"github.com/js-arias/genetree/cmd/genetree/tree/list"
	"github.com/js-arias/genetree/cmd/genetree/tree/species"
	"github.com/js-arias/genetree/cmd/genetree/tree/terms"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for gene trees",
}

func init() {
	Command.Add(add.Command)
	Command.Add(list.Command)
	Command.Add(species.Command)
	Command.Add(terms.Command)
}
