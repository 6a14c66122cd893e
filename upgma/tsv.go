// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package upgma

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// AgeScale is the value used to scale node heights
// into integer node ages in a TSV tree file.
const AgeScale = 1_000_000

// TSV writes the tree as a tab-delimited tree file
// with the fields tree, node, parent, age, and taxon.
// Node ages are the node heights multiplied by AgeScale,
// and rounded to the nearest integer.
// Parent nodes are written before their children,
// and terminal labels are written as they are.
func (t *Tree) TSV(w io.Writer, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# UPGMA tree of k-mer distances\n")
	fmt.Fprintf(bw, "# node ages are distances multiplied by %d\n", AgeScale)
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tab := csv.NewWriter(bw)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"tree", "node", "parent", "age", "taxon"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	if err := t.tsv(tab, name, t.root); err != nil {
		return fmt.Errorf("while writing data: %v", err)
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

func (t *Tree) tsv(tab *csv.Writer, name string, id int) error {
	n := t.nodes[id]
	row := []string{
		name,
		strconv.Itoa(id),
		strconv.Itoa(n.parent),
		strconv.FormatInt(int64(math.Round(n.height*AgeScale)), 10),
		n.label,
	}
	if err := tab.Write(row); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := t.tsv(tab, name, c); err != nil {
			return err
		}
	}
	return nil
}
