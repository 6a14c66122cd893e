// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package genomes is a metapackage for commands
// that deal with genome listings.
package genomes

import (
	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/cmd/kmertree/genomes/add"
	"github.com/js-arias/kmertree/cmd/kmertree/genomes/list"
)

var Command = &command.Command{
	Usage: "genomes <command> [<argument>...]",
	Short: "commands for genome listings",
}

func init() {
	Command.Add(add.Command)
	Command.Add(list.Command)
}
