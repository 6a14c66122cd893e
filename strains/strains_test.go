// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package strains_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/kmertree/distance"
	"github.com/js-arias/kmertree/genome"
	"github.com/js-arias/kmertree/kmer"
	"github.com/js-arias/kmertree/strains"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// fastaKmers returns a FASTA file
// in which each record is a single k-mer.
func fastaKmers(kmers ...string) string {
	var b strings.Builder
	for i, k := range kmers {
		b.WriteString(">r")
		b.WriteString(string(rune('a' + i)))
		b.WriteString("\n")
		b.WriteString(k)
		b.WriteString("\n")
	}
	return b.String()
}

func writeGenomes(t testing.TB, files map[string]string) []genome.Genome {
	t.Helper()

	dir := t.TempDir()
	var gs []genome.Genome
	for _, l := range []string{"A", "B", "C", "D"} {
		data, ok := files[l]
		if !ok {
			continue
		}
		name := filepath.Join(dir, l+".fasta")
		if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
			t.Fatalf("unable to write %q: %v", name, err)
		}
		gs = append(gs, genome.Genome{Label: l, Path: name})
	}
	return gs
}

func TestRun(t *testing.T) {
	shared := []string{"AAAA", "AAAC", "AAAG", "AAAT", "AACA", "AACC", "AACG", "AACT"}
	gs := writeGenomes(t, map[string]string{
		"A": fastaKmers(append(shared, "AAGA", "AAGC")...),
		"B": fastaKmers(shared...),
		"C": fastaKmers("TTTT", "TTTG", "TTTC", "TTGT"),
	})

	dir := filepath.Join(t.TempDir(), "plots")
	p := strains.Param{K: 4, CPU: 2, Logger: quiet}
	tr, name, err := strains.Run(gs, dir, p)
	if err != nil {
		t.Fatalf("unable to build tree: %v", err)
	}
	if want := filepath.Join(dir, strains.NewickFile); name != want {
		t.Errorf("output file: got %q, want %q", name, want)
	}

	want := "((A:0.200000,B:0.200000):0.800000,C:1.000000);"
	if nw := tr.Newick(); nw != want {
		t.Errorf("newick: got %q, want %q", nw, want)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read output: %v", err)
	}
	if string(data) != want+"\n" {
		t.Errorf("output: got %q, want %q", string(data), want+"\n")
	}

	// a second run must produce the same bytes
	_, name2, err := strains.Run(gs, t.TempDir(), p)
	if err != nil {
		t.Fatalf("unable to build tree: %v", err)
	}
	data2, err := os.ReadFile(name2)
	if err != nil {
		t.Fatalf("unable to read output: %v", err)
	}
	if !bytes.Equal(data, data2) {
		t.Errorf("second run: got %q, want %q", data2, data)
	}
}

func TestMatrix(t *testing.T) {
	shared := []string{"AAAA", "AAAC", "AAAG", "AAAT", "AACA", "AACC", "AACG", "AACT"}
	gs := writeGenomes(t, map[string]string{
		"A": fastaKmers(append(shared, "AAGA", "AAGC")...),
		"B": fastaKmers(shared...),
		"C": fastaKmers("TTTT", "TTTG", "TTTC", "TTGT"),
	})

	m, err := strains.Matrix(gs, strains.Param{K: 4, Logger: quiet})
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	if d := m.At(0, 1); d >= 0.3 || math.Abs(d-0.2) > 1e-12 {
		t.Errorf("distance A-B: got %.6f, want %.6f", d, 0.2)
	}
	if d := m.At(0, 2); d != 1 {
		t.Errorf("distance A-C: got %.6f, want 1", d)
	}
	if d := m.At(1, 2); d != 1 {
		t.Errorf("distance B-C: got %.6f, want 1", d)
	}
}

func TestHeaderOnlyGenomes(t *testing.T) {
	gs := writeGenomes(t, map[string]string{
		"A": ">empty genome\n",
		"B": ">another empty genome\n",
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr, _, err := strains.Run(gs, t.TempDir(), strains.Param{K: 4, Logger: logger})
	if err != nil {
		t.Fatalf("unable to build tree: %v", err)
	}

	want := "(A:1.000000,B:1.000000);"
	if nw := tr.Newick(); nw != want {
		t.Errorf("newick: got %q, want %q", nw, want)
	}
	if !strings.Contains(buf.String(), "degenerate comparison") {
		t.Errorf("expecting a degenerate comparison warning, got log:\n%s", buf.String())
	}
}

func TestSingleGenome(t *testing.T) {
	gs := writeGenomes(t, map[string]string{
		"A": fastaKmers("ACGT"),
	})

	dir := t.TempDir()
	_, _, err := strains.Run(gs, dir, strains.Param{K: 4, Logger: quiet})
	if !errors.Is(err, distance.ErrInsufficientInput) {
		t.Errorf("got error %v, want %v", err, distance.ErrInsufficientInput)
	}
	testNoOutput(t, dir)
}

func TestMissingGenome(t *testing.T) {
	gs := writeGenomes(t, map[string]string{
		"A": fastaKmers("ACGT"),
		"B": fastaKmers("ACGA"),
	})
	gs = append(gs, genome.Genome{Label: "C", Path: filepath.Join(t.TempDir(), "missing.fasta")})

	dir := t.TempDir()
	_, _, err := strains.Run(gs, dir, strains.Param{K: 4, Logger: quiet})
	var fre *kmer.FileReadError
	if !errors.As(err, &fre) {
		t.Errorf("got error %v, want a FileReadError", err)
	}
	testNoOutput(t, dir)
}

func TestRepeatedLabel(t *testing.T) {
	gs := writeGenomes(t, map[string]string{
		"A": fastaKmers("ACGT"),
		"B": fastaKmers("ACGA"),
	})
	gs[1].Label = gs[0].Label

	dir := t.TempDir()
	if _, _, err := strains.Run(gs, dir, strains.Param{K: 4, Logger: quiet}); err == nil {
		t.Errorf("expecting error on repeated label")
	}
	testNoOutput(t, dir)
}

func testNoOutput(t testing.TB, dir string) {
	t.Helper()

	name := filepath.Join(dir, strains.NewickFile)
	if _, err := os.Stat(name); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output file %q: should not exist (stat error %v)", name, err)
	}
}
