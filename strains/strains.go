// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package strains builds relatedness trees
// of genome assemblies,
// using the k-mer distance between genomes
// and UPGMA clustering.
package strains

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/js-arias/kmertree/distance"
	"github.com/js-arias/kmertree/genome"
	"github.com/js-arias/kmertree/kmer"
	"github.com/js-arias/kmertree/upgma"
)

// NewickFile is the name of the file
// used to store a tree in Newick format.
const NewickFile = "phylogenetic_tree.newick"

// Param is a collection of parameters
// used to build a tree.
type Param struct {
	// K-mer length.
	// If zero, kmer.DefaultK will be used.
	K int

	// Number of processes used to read genomes
	// and calculate distances.
	// The default (zero) uses all available CPU.
	CPU int

	// Logger used for messages and warnings.
	// If nil, the default logger will be used.
	Logger *slog.Logger
}

func (p Param) k() int {
	if p.K == 0 {
		return kmer.DefaultK
	}
	return p.K
}

func (p Param) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Matrix reads the k-mer sets of a list of genomes
// and returns the matrix of k-mer distances between them.
// The k-mer sets are discarded
// once the matrix is built.
func Matrix(gs []genome.Genome, p Param) (*distance.Matrix, error) {
	if len(gs) < 2 {
		return nil, fmt.Errorf("%w: got %d", distance.ErrInsufficientInput, len(gs))
	}
	if err := genome.Validate(gs); err != nil {
		return nil, err
	}

	logger := p.logger()
	logger.Info("reading k-mers", "genomes", len(gs), "k", p.k())
	sets, err := kmer.ExtractAll(genome.Paths(gs), p.k(), p.CPU)
	if err != nil {
		return nil, err
	}

	return distance.Build(genome.Labels(gs), sets, distance.Param{
		CPU:    p.CPU,
		Logger: logger,
	})
}

// Tree builds an UPGMA tree from a list of genomes.
// It returns the tree
// and the distance matrix used to build the tree.
func Tree(gs []genome.Genome, p Param) (*upgma.Tree, *distance.Matrix, error) {
	m, err := Matrix(gs, p)
	if err != nil {
		return nil, nil, err
	}

	logger := p.logger()
	logger.Info("building UPGMA tree", "genomes", m.Len())
	t, err := upgma.Build(m, logger)
	if err != nil {
		return nil, nil, err
	}
	return t, m, nil
}

// WriteNewick writes a tree in Newick format
// into the NewickFile of the indicated directory.
// If the directory does not exist,
// it will be created.
// It returns the name of the written file.
func WriteNewick(dir string, t *upgma.Tree) (name string, err error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name = filepath.Join(dir, NewickFile)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := t.WriteNewick(f); err != nil {
		return "", fmt.Errorf("while writing file %q: %v", name, err)
	}
	return name, nil
}

// Run builds an UPGMA tree from a list of genomes
// and writes it into the output directory.
// If there is an error,
// no file is written.
func Run(gs []genome.Genome, dir string, p Param) (*upgma.Tree, string, error) {
	t, _, err := Tree(gs, p)
	if err != nil {
		return nil, "", err
	}

	name, err := WriteNewick(dir, t)
	if err != nil {
		return nil, "", err
	}
	p.logger().Info("tree saved", "file", name)
	return t, name, nil
}
