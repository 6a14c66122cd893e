// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package kmer implements sets of k-mers
// extracted from genome sequences
// and the Jaccard similarity between them.
//
// K-mers are taken from the strand as given
// in the sequence file
// (i.e., there is no canonicalization
// with the reverse complement).
package kmer

import (
	"bytes"
	"errors"
	"slices"
)

// DefaultK is the default k-mer length.
const DefaultK = 8

// ErrInvalidK is returned when the k-mer length is less than one.
var ErrInvalidK = errors.New("invalid k-mer length")

// A Set is a set of k-mers.
type Set map[string]struct{}

// New creates a new empty set.
func New() Set {
	return make(Set)
}

// Add adds a k-mer to the set.
func (s Set) Add(kmer string) {
	s[kmer] = struct{}{}
}

// AddSeq adds all the k-mers of length k
// found in a single sequence.
// The sequence is uppercased before extraction,
// and windows that contain a character
// that is not a letter
// (for example, a gap or a stop)
// are skipped,
// so for a sequence of length L,
// at most max(0, L-k+1) k-mers are read.
// It returns the number of k-mers read
// (including repeated k-mers).
func (s Set) AddSeq(seq []byte, k int) int {
	if k < 1 || len(seq) < k {
		return 0
	}
	up := bytes.ToUpper(seq)

	n := 0
	start := 0 // first position of the current run of letters
	for i, c := range up {
		if c < 'A' || c > 'Z' {
			start = i + 1
			continue
		}
		if i+1-start < k {
			continue
		}
		s[string(up[i+1-k:i+1])] = struct{}{}
		n++
	}
	return n
}

// Has returns true if the k-mer is in the set.
func (s Set) Has(kmer string) bool {
	_, ok := s[kmer]
	return ok
}

// Len returns the number of distinct k-mers in the set.
func (s Set) Len() int {
	return len(s)
}

// Kmers returns the k-mers of the set
// in lexicographic order.
func (s Set) Kmers() []string {
	ks := make([]string, 0, len(s))
	for k := range s {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

// Intersection returns the number of k-mers
// shared by two sets.
func Intersection(a, b Set) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// Jaccard returns the Jaccard similarity of two sets,
// i.e., the size of the intersection
// divided by the size of the union.
// If both sets are empty
// the similarity is undefined,
// and it returns 0 and false.
func Jaccard(a, b Set) (float64, bool) {
	in := Intersection(a, b)
	union := len(a) + len(b) - in
	if union == 0 {
		return 0, false
	}
	return float64(in) / float64(union), true
}
