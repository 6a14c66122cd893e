// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package kmer

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

// ErrNoRecords is returned when a sequence file
// does not have any sequence record.
var ErrNoRecords = errors.New("no sequence records")

// A FileReadError is returned when a genome file
// can not be opened or parsed.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("on genome file %q: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Read reads a FASTA-encoded stream
// and returns the set of k-mers of length k
// found in all the records of the stream.
//
// Each record is processed independently,
// so no k-mer spans two records.
// A record with only a header is valid
// and does not add any k-mer.
// If the stream does not have any record,
// it returns ErrNoRecords.
func Read(r io.Reader, k int) (Set, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	set := New()
	recs := 0
	for sc.Next() {
		b, err := letters(sc.Seq())
		if err != nil {
			return nil, fmt.Errorf("record %d: %v", recs+1, err)
		}
		recs++
		set.AddSeq(b, k)
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	if recs == 0 {
		return nil, ErrNoRecords
	}
	return set, nil
}

// letters returns the bytes of a sequence record.
func letters(s seq.Sequence) ([]byte, error) {
	ls, ok := s.(*linear.Seq)
	if !ok {
		return nil, fmt.Errorf("unexpected sequence type %T", s)
	}
	return alphabet.LettersToBytes(ls.Seq), nil
}

// Extract reads a FASTA file
// and returns its set of k-mers of length k.
// If the name of the file ends with ".gz"
// it is read as a gzip-compressed file.
//
// Any problem reading the file
// is returned as a *FileReadError.
func Extract(name string, k int) (Set, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, &FileReadError{Path: name, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, &FileReadError{Path: name, Err: err}
		}
		defer z.Close()
		r = z
	}

	set, err := Read(r, k)
	if err != nil {
		return nil, &FileReadError{Path: name, Err: err}
	}
	return set, nil
}

// ExtractAll reads a set of FASTA files
// and returns the k-mer sets of each file
// in the same order as the input files.
// Use cpu to define the number of files
// read at the same time.
// The default (zero) uses all available CPU.
//
// If there is an error,
// the error of the first file
// (in input order)
// with an error is returned.
func ExtractAll(names []string, k, cpu int) ([]Set, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	sets := make([]Set, len(names))
	errs := make([]error, len(names))

	jobs := make(chan int, cpu*2)
	var wg sync.WaitGroup
	for range cpu {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sets[i], errs[i] = Extract(names[i], k)
			}
		}()
	}
	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sets, nil
}
