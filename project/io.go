// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/kmertree/distance"
	"github.com/js-arias/kmertree/genome"
	"github.com/js-arias/kmertree/upgma"
)

// Genomes reads the genome listing
// as defined in a project.
func (p *Project) Genomes() ([]genome.Genome, error) {
	name := p.Path(Genomes)
	if name == "" {
		return nil, fmt.Errorf("genomes not defined in project %q", p.name)
	}

	gs, err := genome.Read(name)
	if err != nil {
		return nil, err
	}
	return gs, nil
}

// Matrix reads a distance matrix file
// as defined in a project.
func (p *Project) Matrix() (*distance.Matrix, error) {
	name := p.Path(Matrix)
	if name == "" {
		return nil, fmt.Errorf("distance matrix not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := distance.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return m, nil
}

// Tree reads the Newick tree file
// as defined in a project.
func (p *Project) Tree() (*upgma.Tree, error) {
	name := p.Path(Newick)
	if name == "" {
		return nil, fmt.Errorf("newick tree not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := upgma.ReadNewick(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}
