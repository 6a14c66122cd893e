// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package run implements a command to build
// the UPGMA tree of a genome listing
// without a project.
package run

import (
	"fmt"
	"log/slog"

	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/genome"
	"github.com/js-arias/kmertree/kmer"
	"github.com/js-arias/kmertree/strains"
)

var Command = &command.Command{
	Usage: `run [-k <value>] [--cpu <number>]
	[-o|--output <directory>] [--newick]
	<genome-listing>`,
	Short: "build a tree from a genome listing",
	Long: `
Command run reads a genome listing, builds the k-mer distance matrix of the
genomes, and writes the UPGMA tree of the genomes in Newick format. It does
not require a project file, and the distance matrix is not stored.

The argument of the command is the name of the genome listing file. See
'kmertree help genome-files' for a description of a genome listing.

By default, k-mers of length 8 will be used. Use the flag -k to set a
different k-mer length.

By default, all available CPUs will be used to read the genomes and calculate
the distances. Use the flag --cpu to set a different number of processes.

The tree will be written in a file called "phylogenetic_tree.newick". By
default, the file will be written in the current directory; use the flag
--output, or -o, to define a different output directory. If the directory
does not exist, it will be created. If there is any error, no file will be
written.

If the flag --newick is defined, the tree will also be printed in the
standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var kFlag int
var numCPU int
var outDir string
var printNewick bool

func setFlags(c *command.Command) {
	c.Flags().IntVar(&kFlag, "k", kmer.DefaultK, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&outDir, "output", ".", "")
	c.Flags().StringVar(&outDir, "o", ".", "")
	c.Flags().BoolVar(&printNewick, "newick", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting genome listing file")
	}

	gs, err := genome.Read(args[0])
	if err != nil {
		return err
	}

	t, _, err := strains.Run(gs, outDir, strains.Param{
		K:      kFlag,
		CPU:    numCPU,
		Logger: slog.New(slog.NewTextHandler(c.Stderr(), nil)),
	})
	if err != nil {
		return err
	}

	if printNewick {
		fmt.Fprintf(c.Stdout(), "%s\n", t.Newick())
	}
	return nil
}
