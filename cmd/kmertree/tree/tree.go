// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements a command to build
// the UPGMA tree of the genomes in a kmertree project.
package tree

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/distance"
	"github.com/js-arias/kmertree/kmer"
	"github.com/js-arias/kmertree/project"
	"github.com/js-arias/kmertree/strains"
	"github.com/js-arias/kmertree/upgma"
)

var Command = &command.Command{
	Usage: `tree [-k <value>] [--cpu <number>] [--genomes]
	[-o|--output <directory>]
	[--tsv <file>] [--name <tree-name>]
	<project-file>`,
	Short: "build an UPGMA tree of the project genomes",
	Long: `
Command tree reads a kmertree project and builds a tree of the genomes using
UPGMA (average linkage) clustering of the k-mer distances. The tree is written
in Newick format.

The argument of the command is the name of the project file.

If the project has a distance matrix, the tree will be built from that
matrix. Otherwise, or if the flag --genomes is defined, the distance matrix
will be built from the genomes of the project. In that case, the flag -k sets
the k-mer length (default 8), and the flag --cpu the number of processes used
to read genomes and calculate distances (by default, all available CPUs).

The tree will be written in a file called "phylogenetic_tree.newick". By
default, the file will be written in the current directory; use the flag
--output, or -o, to define a different output directory. If the directory
does not exist, it will be created. The file will be added to the project.

If the flag --tsv is defined, the tree will also be stored as a tab-delimited
tree file with the indicated name, and the file will be added to the project
as its tree file. In this file, node ages are the node heights in distance
units multiplied by a million, and genome labels are written as they are. By
default, the tree will be called "upgma"; use the flag --name to define a
different name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var kFlag int
var numCPU int
var fromGenomes bool
var outDir string
var tsvFile string
var treeName string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&kFlag, "k", kmer.DefaultK, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().BoolVar(&fromGenomes, "genomes", false, "")
	c.Flags().StringVar(&outDir, "output", ".", "")
	c.Flags().StringVar(&outDir, "o", ".", "")
	c.Flags().StringVar(&tsvFile, "tsv", "", "")
	c.Flags().StringVar(&treeName, "name", "upgma", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(c.Stderr(), nil))
	m, err := readMatrix(p, logger)
	if err != nil {
		return err
	}

	t, err := upgma.Build(m, logger)
	if err != nil {
		return err
	}

	name, err := strains.WriteNewick(outDir, t)
	if err != nil {
		return err
	}
	p.Add(project.Newick, name)

	if tsvFile != "" {
		if err := writeTSV(t); err != nil {
			return err
		}
		p.Add(project.Trees, tsvFile)
	}

	if err := p.Write(); err != nil {
		return err
	}
	logger.Info("tree saved", "file", name, "genomes", m.Len())
	return nil
}

func readMatrix(p *project.Project, logger *slog.Logger) (*distance.Matrix, error) {
	if !fromGenomes && p.Path(project.Matrix) != "" {
		return p.Matrix()
	}

	gs, err := p.Genomes()
	if err != nil {
		return nil, err
	}
	return strains.Matrix(gs, strains.Param{
		K:      kFlag,
		CPU:    numCPU,
		Logger: logger,
	})
}

func writeTSV(t *upgma.Tree) (err error) {
	f, err := os.Create(tsvFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := t.TSV(f, treeName); err != nil {
		return fmt.Errorf("while writing to %q: %v", tsvFile, err)
	}
	return nil
}
