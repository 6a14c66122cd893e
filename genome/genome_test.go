// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package genome_test

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/kmertree/genome"
)

func TestReadList(t *testing.T) {
	in := `# genome listing
Label,Genome,Species
NCC2705,genomes/NCC2705.fasta,B. longum
ATCC15697,  genomes/ATCC15697.fasta.gz ,B. infantis
`
	gs, err := genome.ReadList(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("unable to read listing: %v", err)
	}

	want := []genome.Genome{
		{Label: "NCC2705", Path: "genomes/NCC2705.fasta"},
		{Label: "ATCC15697", Path: "genomes/ATCC15697.fasta.gz"},
	}
	if !reflect.DeepEqual(gs, want) {
		t.Errorf("listing: got %v, want %v", gs, want)
	}
}

func TestReadListErrors(t *testing.T) {
	tests := map[string]string{
		"no genome field": "label,path\na,a.fasta\n",
		"repeated label":  "label,genome\na,a.fasta\na,b.fasta\n",
		"empty label":     "label,genome\n,a.fasta\n",
		"empty path":      "label,genome\na,\n",
		"missing value":   "genome,label\na.fasta\n",
	}

	for name, in := range tests {
		if _, err := genome.ReadList(strings.NewReader(in), ','); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestWriteRead(t *testing.T) {
	gs := []genome.Genome{
		{Label: "B. longum NCC2705", Path: "/data/NCC2705.fasta"},
		{Label: "B. infantis ATCC15697", Path: "ATCC15697.fasta"},
	}

	var buf bytes.Buffer
	if err := genome.WriteList(&buf, gs); err != nil {
		t.Fatalf("unable to write listing: %v", err)
	}
	t.Logf("output:\n%s\n", buf.String())

	dir := t.TempDir()
	name := filepath.Join(dir, "genomes.tab")
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}

	got, err := genome.Read(name)
	if err != nil {
		t.Fatalf("unable to read listing: %v", err)
	}

	want := []genome.Genome{
		{Label: "B. longum NCC2705", Path: "/data/NCC2705.fasta"},
		{Label: "B. infantis ATCC15697", Path: filepath.Join(dir, "ATCC15697.fasta")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("listing: got %v, want %v", got, want)
	}

	if ls := genome.Labels(got); !reflect.DeepEqual(ls, []string{"B. longum NCC2705", "B. infantis ATCC15697"}) {
		t.Errorf("labels: got %v", ls)
	}
	if ps := genome.Paths(got); ps[1] != want[1].Path {
		t.Errorf("paths: got %v", ps)
	}
}

func TestLabelFromPath(t *testing.T) {
	tests := map[string]string{
		"genomes/NCC2705.fasta":    "NCC2705",
		"ATCC15697.fna.gz":         "ATCC15697",
		"/data/strain.v2.fa":       "strain.v2",
		"reads/sample.fastq":       "sample.fastq",
		"contigs/JCM1222.FASTA.gz": "JCM1222",
	}

	for path, want := range tests {
		if got := genome.LabelFromPath(path); got != want {
			t.Errorf("path %q: got label %q, want %q", path, got, want)
		}
	}
}

func TestComma(t *testing.T) {
	if c := genome.Comma("genomes.csv"); c != ',' {
		t.Errorf("csv: got %q", c)
	}
	if c := genome.Comma("genomes.TSV"); c != '\t' {
		t.Errorf("tsv: got %q", c)
	}
}
