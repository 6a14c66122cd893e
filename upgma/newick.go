// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package upgma

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Newick returns the tree in Newick (parenthetical) format.
//
// Terminals are printed with their labels,
// and internal nodes as (child1:len1,child2:len2),
// in which the lengths are the branch lengths
// printed with six decimals.
// Labels with spaces or Newick punctuation
// are single quoted.
func (t *Tree) Newick() string {
	var b strings.Builder
	t.newick(&b, t.root)
	b.WriteByte(';')
	return b.String()
}

func (t *Tree) newick(b *strings.Builder, id int) {
	n := t.nodes[id]
	if len(n.children) == 0 {
		b.WriteString(quoteLabel(n.label))
		return
	}

	b.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		t.newick(b, c)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(t.nodes[c].length, 'f', 6, 64))
	}
	b.WriteByte(')')
}

const newickPunct = " \t\r\n()[]':;,"

func quoteLabel(label string) string {
	if !strings.ContainsAny(label, newickPunct) {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}

// WriteNewick writes the tree in Newick format,
// followed by a new line.
func (t *Tree) WriteNewick(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", t.Newick()); err != nil {
		return err
	}
	return nil
}

// ReadNewick reads a tree in Newick format,
// as written by WriteNewick.
// Labels are kept as found in the file
// (quoted labels are unquoted).
//
// Terminals are numbered in the order
// in which they are found in the file,
// and the height of each internal node
// is the largest sum of branch lengths
// from the node to any of its terminals.
// Labels of internal nodes are ignored.
func ReadNewick(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &newickParser{data: data}
	root, err := p.subtree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos >= len(p.data) || p.data[p.pos] != ';' {
		return nil, fmt.Errorf("newick: at byte %d: expecting ';'", p.pos)
	}
	if len(root.children) == 0 {
		return nil, fmt.Errorf("newick: tree with a single terminal")
	}

	t := &Tree{}
	terms := make(map[string]int)
	if err := t.addTerms(root, terms); err != nil {
		return nil, err
	}
	t.root = t.addParsed(root, terms)
	return t, nil
}

type parsedNode struct {
	label    string
	length   float64
	children []*parsedNode
}

// addTerms adds the terminals of a parsed tree.
func (t *Tree) addTerms(n *parsedNode, terms map[string]int) error {
	if len(n.children) == 0 {
		if n.label == "" {
			return fmt.Errorf("newick: terminal without label")
		}
		if _, dup := terms[n.label]; dup {
			return fmt.Errorf("newick: repeated label %q", n.label)
		}
		terms[n.label] = t.addTerm(n.label)
		return nil
	}
	if len(n.children) == 1 {
		return fmt.Errorf("newick: node with a single descendant")
	}
	for _, c := range n.children {
		if err := t.addTerms(c, terms); err != nil {
			return err
		}
	}
	return nil
}

// addParsed adds the internal nodes of a parsed tree
// (in post-order)
// and returns the ID of the node.
func (t *Tree) addParsed(n *parsedNode, terms map[string]int) int {
	if len(n.children) == 0 {
		return terms[n.label]
	}

	ids := make([]int, 0, len(n.children))
	var height float64
	for _, c := range n.children {
		id := t.addParsed(c, terms)
		ids = append(ids, id)
		if h := t.nodes[id].height + c.length; h > height {
			height = h
		}
	}

	id := len(t.nodes)
	t.nodes = append(t.nodes, node{
		height:   height,
		parent:   -1,
		children: ids,
	})
	for i, c := range ids {
		t.nodes[c].parent = id
		t.nodes[c].length = n.children[i].length
	}
	return id
}

type newickParser struct {
	data []byte
	pos  int
}

func (p *newickParser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '[':
			// comment
			for p.pos < len(p.data) && p.data[p.pos] != ']' {
				p.pos++
			}
			p.pos++
		default:
			return
		}
	}
}

func (p *newickParser) subtree() (*parsedNode, error) {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("newick: unexpected end of data")
	}

	n := &parsedNode{}
	if p.data[p.pos] == '(' {
		p.pos++
		for {
			c, err := p.subtree()
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, c)

			p.skipSpace()
			if p.pos >= len(p.data) {
				return nil, fmt.Errorf("newick: unexpected end of data")
			}
			if p.data[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.data[p.pos] == ')' {
				p.pos++
				break
			}
			return nil, fmt.Errorf("newick: at byte %d: unexpected %q", p.pos, p.data[p.pos])
		}
	}

	label, err := p.label()
	if err != nil {
		return nil, err
	}
	n.label = label

	p.skipSpace()
	if p.pos < len(p.data) && p.data[p.pos] == ':' {
		p.pos++
		p.skipSpace()
		start := p.pos
		for p.pos < len(p.data) && !strings.ContainsRune(newickPunct, rune(p.data[p.pos])) {
			p.pos++
		}
		v, err := strconv.ParseFloat(string(p.data[start:p.pos]), 64)
		if err != nil {
			return nil, fmt.Errorf("newick: at byte %d: invalid branch length: %v", start, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("newick: at byte %d: negative branch length %v", start, v)
		}
		n.length = v
	}
	return n, nil
}

func (p *newickParser) label() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return "", nil
	}

	if p.data[p.pos] != '\'' {
		start := p.pos
		for p.pos < len(p.data) && !strings.ContainsRune(newickPunct, rune(p.data[p.pos])) {
			p.pos++
		}
		return string(p.data[start:p.pos]), nil
	}

	start := p.pos
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.data) {
			return "", fmt.Errorf("newick: at byte %d: unclosed quoted label", start)
		}
		c := p.data[p.pos]
		p.pos++
		if c != '\'' {
			b.WriteByte(c)
			continue
		}
		// doubled quote
		if p.pos < len(p.data) && p.data[p.pos] == '\'' {
			b.WriteByte('\'')
			p.pos++
			continue
		}
		return b.String(), nil
	}
}
