// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package distance

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var header = []string{
	"label",
	"ref",
	"distance",
}

// ReadTSV reads a distance matrix from a TSV file.
//
// The TSV must contain the following fields:
//
//   - label, the label of a genome
//   - ref, the label of the compared genome
//   - distance, the distance between both genomes
//
// Each pair of different genomes must be defined once.
// The order of the genomes in the matrix
// is the order in which they are found in the file.
//
// Here is an example file:
//
//	# k-mer distance matrix
//	label	ref	distance
//	NCC2705	ATCC15697	0.412
//	NCC2705	JCM1222	0.998
//	ATCC15697	JCM1222	0.997
func ReadTSV(r io.Reader) (*Matrix, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	type pair struct {
		a, b string
	}
	var labels []string
	index := make(map[string]int)
	dist := make(map[pair]float64)

	addLabel := func(l string) {
		if _, ok := index[l]; ok {
			return
		}
		index[l] = len(labels)
		labels = append(labels, l)
	}

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "label"
		a := strings.Join(strings.Fields(row[fields[f]]), " ")
		if a == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty label", ln, f)
		}

		f = "ref"
		b := strings.Join(strings.Fields(row[fields[f]]), " ")
		if b == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty label", ln, f)
		}

		f = "distance"
		d, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		addLabel(a)
		addLabel(b)
		if a == b {
			if d != 0 {
				return nil, fmt.Errorf("on row %d: genome %q: non-zero self distance %v", ln, a, d)
			}
			continue
		}

		if b < a {
			a, b = b, a
		}
		p := pair{a, b}
		if _, ok := dist[p]; ok {
			return nil, fmt.Errorf("on row %d: repeated distance between %q and %q", ln, a, b)
		}
		dist[p] = d
	}

	rows := make([][]float64, len(labels))
	for i, a := range labels {
		rows[i] = make([]float64, i+1)
		for j, b := range labels[:i] {
			p := pair{a, b}
			if b < a {
				p = pair{b, a}
			}
			d, ok := dist[p]
			if !ok {
				return nil, fmt.Errorf("undefined distance between %q and %q", a, b)
			}
			rows[i][j] = d
		}
	}

	return New(labels, rows)
}

// TSV writes a distance matrix as a TSV file.
func (m *Matrix) TSV(w io.Writer) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, a := range m.labels {
		for j := i + 1; j < len(m.labels); j++ {
			row := []string{
				a,
				m.labels[j],
				strconv.FormatFloat(m.At(i, j), 'f', -1, 64),
			}
			if err := tsv.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// Phylip writes a distance matrix
// as a square matrix in relaxed PHYLIP format:
// the number of genomes in the first line,
// and then a line for each genome,
// with its label and its distances to all genomes
// (six decimals, separated by spaces).
//
// As PHYLIP fields are separated by spaces,
// labels with spaces are not allowed.
func (m *Matrix) Phylip(w io.Writer) error {
	for _, l := range m.labels {
		if strings.ContainsAny(l, " \t\r\n") {
			return fmt.Errorf("genome %q: label with spaces", l)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(m.labels))

	s := m.Sym()
	for i, l := range m.labels {
		bw.WriteString(l)
		for j := range m.labels {
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatFloat(s.At(i, j), 'f', 6, 64))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
