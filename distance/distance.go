// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package distance implements pairwise distance matrices
// between genomes
// based on the Jaccard similarity of their k-mer sets.
//
// A matrix is stored as a lower triangular matrix,
// in which row i has i+1 cells
// (the last one is the diagonal).
package distance

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"sync"

	"github.com/js-arias/kmertree/kmer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientInput is returned when less than two genomes
// are used to build a matrix or a tree.
var ErrInsufficientInput = errors.New("insufficient input: at least two genomes are required")

// A Matrix is a symmetric matrix of distances
// between labeled genomes.
// The distance from a genome to itself is zero,
// and all distances are in the [0, 1] interval.
type Matrix struct {
	labels []string
	index  map[string]int
	rows   [][]float64
}

// Param is a collection of parameters
// used to build a matrix.
type Param struct {
	// Number of processes used to calculate the distances.
	// The default (zero) uses all available CPU.
	CPU int

	// Logger used for warnings.
	// If nil, the default logger will be used.
	Logger *slog.Logger
}

// Build builds a distance matrix from the k-mer sets
// of a list of genomes.
// The order of the labels is preserved
// as the order of the matrix rows.
//
// The distance between two genomes is 1 - J,
// in which J is the Jaccard similarity
// of their k-mer sets.
// If both sets are empty
// the distance is set to 1,
// and a warning is logged.
func Build(labels []string, sets []kmer.Set, p Param) (*Matrix, error) {
	if len(labels) != len(sets) {
		return nil, fmt.Errorf("got %d labels and %d k-mer sets", len(labels), len(sets))
	}
	m, err := newMatrix(labels)
	if err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cpu := p.CPU
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	rows := make(chan int, cpu*2)
	var wg sync.WaitGroup
	for range cpu {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := 0; j < i; j++ {
					m.rows[i][j] = pairDistance(logger, labels[i], labels[j], sets[i], sets[j])
				}
			}
		}()
	}
	for i := range labels {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return m, nil
}

func pairDistance(logger *slog.Logger, a, b string, sa, sb kmer.Set) float64 {
	sim, ok := kmer.Jaccard(sa, sb)
	if !ok {
		logger.Warn("degenerate comparison: both k-mer sets are empty",
			"genome", a,
			"ref", b,
			"distance", 1.0,
		)
		return 1
	}

	d := 1 - sim
	switch {
	case d < 0:
		logger.Warn("numeric clamp: negative distance",
			"genome", a,
			"ref", b,
			"distance", d,
		)
		return 0
	case d > 1:
		logger.Warn("numeric clamp: distance above one",
			"genome", a,
			"ref", b,
			"distance", d,
		)
		return 1
	}
	return d
}

// New creates a matrix from a set of labels
// and the rows of a lower triangular matrix.
// Row i must have i+1 values,
// with a zero in the diagonal.
func New(labels []string, rows [][]float64) (*Matrix, error) {
	m, err := newMatrix(labels)
	if err != nil {
		return nil, err
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("got %d rows, want %d", len(rows), len(labels))
	}

	for i, r := range rows {
		if len(r) != i+1 {
			return nil, fmt.Errorf("row %d (%q): got %d values, want %d", i, labels[i], len(r), i+1)
		}
		if r[i] != 0 {
			return nil, fmt.Errorf("row %d (%q): non-zero diagonal %.6f", i, labels[i], r[i])
		}
		for j, v := range r[:i] {
			if math.IsNaN(v) || v < 0 || v > 1 {
				return nil, fmt.Errorf("distance between %q and %q: invalid value %v", labels[i], labels[j], v)
			}
			m.rows[i][j] = v
		}
	}
	return m, nil
}

func newMatrix(labels []string) (*Matrix, error) {
	if len(labels) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientInput, len(labels))
	}

	index := make(map[string]int, len(labels))
	rows := make([][]float64, len(labels))
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("genome %d: empty label", i)
		}
		if _, dup := index[l]; dup {
			return nil, fmt.Errorf("genome %q: repeated label", l)
		}
		index[l] = i
		rows[i] = make([]float64, i+1)
	}

	return &Matrix{
		labels: slices.Clone(labels),
		index:  index,
		rows:   rows,
	}, nil
}

// At returns the distance between the genomes i and j.
func (m *Matrix) At(i, j int) float64 {
	if j > i {
		i, j = j, i
	}
	return m.rows[i][j]
}

// Index returns the row of a genome label.
func (m *Matrix) Index(label string) (int, bool) {
	i, ok := m.index[label]
	return i, ok
}

// Label returns the label of the genome at row i.
func (m *Matrix) Label(i int) string {
	return m.labels[i]
}

// Labels returns the genome labels
// in the order of the matrix rows.
func (m *Matrix) Labels() []string {
	return slices.Clone(m.labels)
}

// Len returns the number of genomes in the matrix.
func (m *Matrix) Len() int {
	return len(m.labels)
}

// Row returns the distances of the genome i
// to all other genomes.
func (m *Matrix) Row(i int) []float64 {
	r := make([]float64, len(m.labels))
	for j := range r {
		r[j] = m.At(i, j)
	}
	return r
}

// Sym returns the matrix as a symmetric dense matrix.
func (m *Matrix) Sym() *mat.SymDense {
	n := len(m.labels)
	s := mat.NewSymDense(n, nil)
	for i, r := range m.rows {
		for j, v := range r {
			s.SetSym(i, j, v)
		}
	}
	return s
}

// Quantile returns the empirical quantile p
// of the distances between different genomes.
func (m *Matrix) Quantile(p float64) float64 {
	ds := make([]float64, 0, len(m.labels)*(len(m.labels)-1)/2)
	for i, r := range m.rows {
		ds = append(ds, r[:i]...)
	}
	slices.Sort(ds)
	return stat.Quantile(p, stat.Empirical, ds, nil)
}
