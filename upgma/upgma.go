// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package upgma implements hierarchical clustering
// of a distance matrix
// using the UPGMA (average linkage) method.
//
// The result is a rooted binary ultrametric tree
// that can be serialized in Newick format.
package upgma

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/js-arias/kmertree/distance"
	"gonum.org/v1/gonum/stat"
)

// A cluster is an active cluster
// during the clustering.
type cluster struct {
	node    int
	members []int    // matrix rows, in increasing order
	labels  []string // sorted labels of the members
}

// Build builds an UPGMA tree from a distance matrix.
//
// At each step,
// the two clusters with the minimum average distance
// between their members are merged.
// If two or more pairs of clusters
// have the same minimum distance,
// the pair whose (sorted) combined labels
// are lexicographically first is merged.
//
// If logger is nil,
// the default logger will be used.
func Build(m *distance.Matrix, logger *slog.Logger) (*Tree, error) {
	if m == nil || m.Len() < 2 {
		n := 0
		if m != nil {
			n = m.Len()
		}
		return nil, fmt.Errorf("%w: got %d", distance.ErrInsufficientInput, n)
	}
	if logger == nil {
		logger = slog.Default()
	}

	n := m.Len()
	t := &Tree{
		nodes: make([]node, 0, 2*n-1),
	}
	active := make([]cluster, 0, n)
	for i := range n {
		l := m.Label(i)
		active = append(active, cluster{
			node:    t.addTerm(l),
			members: []int{i},
			labels:  []string{l},
		})
	}

	for len(active) > 1 {
		bi, bj := -1, -1
		var best float64
		var bestLabels []string
		for i := range active {
			for j := i + 1; j < len(active); j++ {
				d := linkage(m, active[i], active[j])
				if bi < 0 || d < best {
					bi, bj = i, j
					best = d
					bestLabels = nil
					continue
				}
				if d > best {
					continue
				}

				// tie
				if bestLabels == nil {
					bestLabels = mergeLabels(active[bi].labels, active[bj].labels)
				}
				ls := mergeLabels(active[i].labels, active[j].labels)
				if slices.Compare(ls, bestLabels) < 0 {
					bi, bj = i, j
					bestLabels = ls
				}
			}
		}

		a, b := active[bi], active[bj]
		if slices.Compare(b.labels, a.labels) < 0 {
			a, b = b, a
		}
		id := t.addNode(a.node, b.node, best, logger)

		members := append(slices.Clone(a.members), b.members...)
		slices.Sort(members)
		merged := cluster{
			node:    id,
			members: members,
			labels:  mergeLabels(a.labels, b.labels),
		}

		// bj > bi
		active = slices.Delete(active, bj, bj+1)
		active[bi] = merged
	}
	t.root = active[0].node

	return t, nil
}

// linkage returns the average distance
// between the members of two clusters.
// Distances are sorted before averaging
// so the value does not depend on the order of the members.
func linkage(m *distance.Matrix, a, b cluster) float64 {
	ds := make([]float64, 0, len(a.members)*len(b.members))
	for _, i := range a.members {
		for _, j := range b.members {
			ds = append(ds, m.At(i, j))
		}
	}
	slices.Sort(ds)
	return stat.Mean(ds, nil)
}

func mergeLabels(a, b []string) []string {
	ls := make([]string, 0, len(a)+len(b))
	ls = append(ls, a...)
	ls = append(ls, b...)
	slices.Sort(ls)
	return ls
}
