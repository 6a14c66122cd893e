// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package genome implements genome records
// and the reading and writing of genome listings.
//
// A genome listing is a delimited text file
// that relates a label
// with the FASTA file of a genome assembly.
package genome

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// A Genome is a labeled genome assembly.
type Genome struct {
	// Label is the name of the genome,
	// it must be unique in a listing.
	Label string

	// Path is the path of the FASTA file
	// with the genome sequences.
	Path string
}

var header = []string{
	"label",
	"genome",
}

// Read reads a genome listing from a file.
// Files with the ".tab" or ".tsv" extension
// are read as tab-delimited files,
// any other file is read as comma-delimited file.
//
// Relative genome paths are resolved
// using the directory of the listing file.
func Read(name string) ([]Genome, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gs, err := ReadList(f, Comma(name))
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}

	dir := filepath.Dir(name)
	for i, g := range gs {
		if filepath.IsAbs(g.Path) {
			continue
		}
		gs[i].Path = filepath.Join(dir, g.Path)
	}
	return gs, nil
}

// Comma returns the field delimiter
// used for a listing file name.
func Comma(name string) rune {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tab", ".tsv":
		return '\t'
	}
	return ','
}

// ReadList reads a genome listing
// using the indicated field delimiter.
//
// The listing must contain the following fields:
//
//   - label, the name of the genome
//   - genome, the path of the genome FASTA file
//
// Other fields are ignored.
// Here is an example file:
//
//	# genome listing
//	label,genome
//	B. longum NCC2705,genomes/NCC2705.fasta
//	B. infantis ATCC15697,genomes/ATCC15697.fasta.gz
func ReadList(r io.Reader, comma rune) ([]Genome, error) {
	tab := csv.NewReader(r)
	tab.Comma = comma
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var gs []Genome
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "label"
		if fields[f] >= len(row) {
			return nil, fmt.Errorf("on row %d: field %q: missing value", ln, f)
		}
		label := strings.Join(strings.Fields(row[fields[f]]), " ")

		f = "genome"
		if fields[f] >= len(row) {
			return nil, fmt.Errorf("on row %d: field %q: missing value", ln, f)
		}
		path := strings.TrimSpace(row[fields[f]])

		gs = append(gs, Genome{
			Label: label,
			Path:  path,
		})
	}

	if err := Validate(gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// Validate checks that all genomes have a label
// and a path,
// and that labels are unique.
func Validate(gs []Genome) error {
	labels := make(map[string]bool, len(gs))
	for _, g := range gs {
		if g.Label == "" {
			return fmt.Errorf("genome %q: empty label", g.Path)
		}
		if g.Path == "" {
			return fmt.Errorf("genome %q: empty path", g.Label)
		}
		if labels[g.Label] {
			return fmt.Errorf("genome %q: repeated label", g.Label)
		}
		labels[g.Label] = true
	}
	return nil
}

// WriteList writes a genome listing
// as a tab-delimited file.
func WriteList(w io.Writer, gs []Genome) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# genome listing\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tab := csv.NewWriter(bw)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, g := range gs {
		row := []string{
			g.Label,
			g.Path,
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// Labels returns the labels of a genome list.
func Labels(gs []Genome) []string {
	ls := make([]string, 0, len(gs))
	for _, g := range gs {
		ls = append(ls, g.Label)
	}
	return ls
}

// Paths returns the paths of a genome list.
func Paths(gs []Genome) []string {
	ps := make([]string, 0, len(gs))
	for _, g := range gs {
		ps = append(ps, g.Path)
	}
	return ps
}

// LabelFromPath returns a label for a genome file
// using the base name of the file
// without the compression and FASTA extensions.
func LabelFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	switch ext := filepath.Ext(name); strings.ToLower(ext) {
	case ".fasta", ".fas", ".fa", ".fna", ".ffn":
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
