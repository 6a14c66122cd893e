// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package distance_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/kmertree/distance"
	"github.com/js-arias/kmertree/kmer"
)

func newSet(kmers ...string) kmer.Set {
	s := kmer.New()
	for _, k := range kmers {
		s.Add(k)
	}
	return s
}

func TestBuildJaccard(t *testing.T) {
	labels := []string{"a", "b"}
	sets := []kmer.Set{
		newSet("AAAA", "CCCC"),
		newSet("AAAA", "GGGG"),
	}

	m, err := distance.Build(labels, sets, distance.Param{CPU: 1})
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}

	want := 2.0 / 3
	if d := m.At(0, 1); math.Abs(d-want) > 1e-12 {
		t.Errorf("distance: got %.6f, want %.6f", d, want)
	}
	testInvariants(t, m)
}

func TestBuildParallel(t *testing.T) {
	labels := []string{"a", "b", "c", "d", "e"}
	sets := []kmer.Set{
		newSet("AAAA", "CCCC", "GGGG"),
		newSet("AAAA", "CCCC", "TTTT"),
		newSet("AAAA", "ACGT"),
		newSet("TTTT"),
		newSet("CCCC", "GGGG", "TTTT", "ACGT"),
	}

	single, err := distance.Build(labels, sets, distance.Param{CPU: 1})
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	testInvariants(t, single)

	multi, err := distance.Build(labels, sets, distance.Param{CPU: 4})
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	if !reflect.DeepEqual(single, multi) {
		t.Errorf("matrices built with different CPU differ")
	}

	if got := multi.Labels(); !reflect.DeepEqual(got, labels) {
		t.Errorf("labels: got %v, want %v", got, labels)
	}
	if i, ok := multi.Index("c"); !ok || i != 2 {
		t.Errorf("index of %q: got %d (%v), want %d", "c", i, ok, 2)
	}
	if _, ok := multi.Index("z"); ok {
		t.Errorf("index of %q: undefined label found", "z")
	}
}

func TestBuildDegenerate(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	labels := []string{"empty1", "empty2", "full"}
	sets := []kmer.Set{
		kmer.New(),
		kmer.New(),
		newSet("ACGT"),
	}
	m, err := distance.Build(labels, sets, distance.Param{Logger: logger})
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}

	if d := m.At(0, 1); d != 1 {
		t.Errorf("degenerate distance: got %.6f, want 1", d)
	}
	if d := m.At(2, 0); d != 1 {
		t.Errorf("empty vs full distance: got %.6f, want 1", d)
	}
	testInvariants(t, m)

	out := buf.String()
	if !strings.Contains(out, "degenerate comparison") {
		t.Errorf("expecting degenerate comparison warning, got log:\n%s", out)
	}
	if n := strings.Count(out, "degenerate comparison"); n != 1 {
		t.Errorf("degenerate warnings: got %d, want %d", n, 1)
	}
}

func TestInsufficientInput(t *testing.T) {
	_, err := distance.Build([]string{"alone"}, []kmer.Set{newSet("ACGT")}, distance.Param{})
	if !errors.Is(err, distance.ErrInsufficientInput) {
		t.Errorf("build: got error %v, want %v", err, distance.ErrInsufficientInput)
	}

	_, err = distance.New(nil, nil)
	if !errors.Is(err, distance.ErrInsufficientInput) {
		t.Errorf("new: got error %v, want %v", err, distance.ErrInsufficientInput)
	}
}

func TestBuildErrors(t *testing.T) {
	sets := []kmer.Set{newSet("ACGT"), newSet("ACGT")}

	if _, err := distance.Build([]string{"a", "a"}, sets, distance.Param{}); err == nil {
		t.Errorf("repeated label: expecting error")
	}
	if _, err := distance.Build([]string{"a", ""}, sets, distance.Param{}); err == nil {
		t.Errorf("empty label: expecting error")
	}
	if _, err := distance.Build([]string{"a", "b", "c"}, sets, distance.Param{}); err == nil {
		t.Errorf("unmatched sets: expecting error")
	}
}

func TestNew(t *testing.T) {
	labels := []string{"a", "b", "c"}
	rows := [][]float64{
		{0},
		{0.2, 0},
		{0.9, 0.8, 0},
	}
	m, err := distance.New(labels, rows)
	if err != nil {
		t.Fatalf("unable to create matrix: %v", err)
	}
	testInvariants(t, m)

	if d := m.At(0, 2); d != 0.9 {
		t.Errorf("distance a-c: got %.6f, want %.6f", d, 0.9)
	}
	if r := m.Row(1); !reflect.DeepEqual(r, []float64{0.2, 0, 0.8}) {
		t.Errorf("row b: got %v", r)
	}

	s := m.Sym()
	if n, _ := s.Dims(); n != 3 {
		t.Fatalf("symmetric matrix: got %d rows, want %d", n, 3)
	}
	for i := range 3 {
		for j := range 3 {
			if s.At(i, j) != m.At(i, j) {
				t.Errorf("symmetric matrix [%d, %d]: got %.6f, want %.6f", i, j, s.At(i, j), m.At(i, j))
			}
		}
	}

	if q := m.Quantile(0.5); q != 0.8 {
		t.Errorf("median: got %.6f, want %.6f", q, 0.8)
	}
	if q := m.Quantile(0); q != 0.2 {
		t.Errorf("minimum: got %.6f, want %.6f", q, 0.2)
	}

	bad := map[string][][]float64{
		"missing row":  {{0}, {0.2, 0}},
		"short row":    {{0}, {0}, {0.9, 0.8, 0}},
		"diagonal":     {{0}, {0.2, 0.1}, {0.9, 0.8, 0}},
		"negative":     {{0}, {-0.2, 0}, {0.9, 0.8, 0}},
		"above one":    {{0}, {0.2, 0}, {1.5, 0.8, 0}},
		"not a number": {{0}, {0.2, 0}, {math.NaN(), 0.8, 0}},
	}
	for name, r := range bad {
		if _, err := distance.New(labels, r); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestTSV(t *testing.T) {
	labels := []string{"NCC2705", "ATCC15697", "JCM1222"}
	rows := [][]float64{
		{0},
		{0.412, 0},
		{0.998, 0.997, 0},
	}
	m, err := distance.New(labels, rows)
	if err != nil {
		t.Fatalf("unable to create matrix: %v", err)
	}

	var w bytes.Buffer
	if err := m.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nm, err := distance.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}
	if !reflect.DeepEqual(nm, m) {
		t.Errorf("read matrix: got %v, want %v", nm, m)
	}
}

func TestReadTSVErrors(t *testing.T) {
	tests := map[string]string{
		"missing field": "label\tref\na\tb\n",
		"missing pair":  "label\tref\tdistance\na\tb\t0.5\na\tc\t0.5\n",
		"repeated pair": "label\tref\tdistance\na\tb\t0.5\nb\ta\t0.5\n",
		"self distance": "label\tref\tdistance\na\ta\t0.5\na\tb\t0.5\n",
		"bad value":     "label\tref\tdistance\na\tb\tx\n",
		"single genome": "label\tref\tdistance\na\ta\t0\n",
	}

	for name, in := range tests {
		if _, err := distance.ReadTSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func testInvariants(t testing.TB, m *distance.Matrix) {
	t.Helper()

	for i := range m.Len() {
		if d := m.At(i, i); d != 0 {
			t.Errorf("diagonal %q: got %.6f, want 0", m.Label(i), d)
		}
		for j := range m.Len() {
			d := m.At(i, j)
			if d != m.At(j, i) {
				t.Errorf("distance %q-%q: not symmetric: %.6f, %.6f", m.Label(i), m.Label(j), d, m.At(j, i))
			}
			if d < 0 || d > 1 {
				t.Errorf("distance %q-%q: out of range: %.6f", m.Label(i), m.Label(j), d)
			}
		}
	}
}

func TestPhylip(t *testing.T) {
	m, err := distance.New([]string{"NCC2705", "ATCC15697", "JCM1222"}, [][]float64{
		{0},
		{0.412, 0},
		{0.998, 0.997, 0},
	})
	if err != nil {
		t.Fatalf("unable to create matrix: %v", err)
	}

	var b strings.Builder
	if err := m.Phylip(&b); err != nil {
		t.Fatalf("unable to write matrix: %v", err)
	}
	want := "3\n" +
		"NCC2705 0.000000 0.412000 0.998000\n" +
		"ATCC15697 0.412000 0.000000 0.997000\n" +
		"JCM1222 0.998000 0.997000 0.000000\n"
	if b.String() != want {
		t.Errorf("phylip: got %q, want %q", b.String(), want)
	}

	sp, err := distance.New([]string{"B. longum", "B. breve"}, [][]float64{
		{0},
		{0.5, 0},
	})
	if err != nil {
		t.Fatalf("unable to create matrix: %v", err)
	}
	if err := sp.Phylip(io.Discard); err == nil {
		t.Errorf("labels with spaces: expecting error")
	}
}
