// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package matrix implements a command to build
// the k-mer distance matrix of the genomes
// in a kmertree project.
package matrix

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/distance"
	"github.com/js-arias/kmertree/kmer"
	"github.com/js-arias/kmertree/project"
	"github.com/js-arias/kmertree/strains"
)

var Command = &command.Command{
	Usage: `matrix [-k <value>] [--cpu <number>]
	[-o|--output <file>] [--phylip <file>] <project-file>`,
	Short: "build a k-mer distance matrix",
	Long: `
Command matrix reads the genomes of a kmertree project, extracts the k-mers of
each genome, and builds the matrix of k-mer distances between each pair of
genomes. The distance is one minus the Jaccard similarity of the k-mer sets.

The argument of the command is the name of the project file.

By default, k-mers of length 8 will be used. Use the flag -k to set a
different k-mer length.

By default, all available CPUs will be used to read the genomes and calculate
the distances. Use the flag --cpu to set a different number of processes.

By default, the matrix will be stored in the matrix file currently defined for
the project. If the project does not have a matrix file, a new one will be
created with the name 'distances.tab'. A different file name can be defined
using the flag --output, or -o.

If the flag --phylip is defined, the matrix will also be written as a square
matrix in relaxed PHYLIP format in the indicated file. This file is not added
to the project.

Some statistics of the distances will be printed in the standard error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var kFlag int
var numCPU int
var output string
var phylipFile string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&kFlag, "k", kmer.DefaultK, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&phylipFile, "phylip", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	gs, err := p.Genomes()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(c.Stderr(), nil))
	m, err := strains.Matrix(gs, strains.Param{
		K:      kFlag,
		CPU:    numCPU,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if output == "" {
		output = p.Path(project.Matrix)
		if output == "" {
			output = "distances.tab"
		}
	}
	if phylipFile != "" {
		if err := writePhylip(phylipFile, m); err != nil {
			return err
		}
	}
	if err := writeMatrix(output, m); err != nil {
		return err
	}
	p.Add(project.Matrix, output)
	if err := p.Write(); err != nil {
		return err
	}

	report(c.Stderr(), m)
	return nil
}

func report(w io.Writer, m *distance.Matrix) {
	fmt.Fprintf(w, "genomes: %d\n", m.Len())
	fmt.Fprintf(w, "distance: min %.6f, median %.6f, max %.6f\n", m.Quantile(0), m.Quantile(0.5), m.Quantile(1))
}

func writeMatrix(name string, m *distance.Matrix) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# k-mer distances\n")
	fmt.Fprintf(bw, "# k-mer length: %d\n", kFlag)
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := m.TSV(bw); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writePhylip(name string, m *distance.Matrix) error {
	var b bytes.Buffer
	if err := m.Phylip(&b); err != nil {
		return fmt.Errorf("on PHYLIP file %q: %v", name, err)
	}
	return os.WriteFile(name, b.Bytes(), 0o644)
}
