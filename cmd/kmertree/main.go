// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// KmerTree is a tool to build relatedness trees
// of microbial genome assemblies
// using k-mer distances.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/cmd/kmertree/draw"
	"github.com/js-arias/kmertree/cmd/kmertree/genomes"
	"github.com/js-arias/kmertree/cmd/kmertree/matrix"
	"github.com/js-arias/kmertree/cmd/kmertree/run"
	"github.com/js-arias/kmertree/cmd/kmertree/tree"
)

var app = &command.Command{
	Usage: "kmertree <command> [<argument>...]",
	Short: "a tool to build k-mer trees of genome assemblies",
}

func init() {
	app.Add(draw.Command)
	app.Add(genomes.Command)
	app.Add(matrix.Command)
	app.Add(run.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
