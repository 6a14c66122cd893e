// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/js-arias/blind"
	"github.com/js-arias/kmertree/upgma"
)

const yStep = 12

type node struct {
	x     float64
	y     int
	topY  int
	botY  int
	color color.Color

	id     int
	tax    string
	height float64

	anc  *node
	desc []*node
}

type svgTree struct {
	y     int
	x     float64
	step  float64
	taxSz int
	root  *node

	minTick   float64
	labelTick float64
}

func copyTree(t *upgma.Tree, xStep float64, tv tickValues) svgTree {
	maxSz := 0
	ids := make(map[int]*node, t.Len())
	for _, id := range t.Nodes() {
		n := &node{
			id:     id,
			tax:    t.Label(id),
			height: t.Height(id),
		}
		ids[id] = n
		if len(n.tax) > maxSz {
			maxSz = len(n.tax)
		}
	}
	for _, id := range t.Nodes() {
		n := ids[id]
		if p := t.Parent(id); p >= 0 {
			n.anc = ids[p]
		}
		for _, c := range t.Children(id) {
			n.desc = append(n.desc, ids[c])
		}
	}
	root := ids[t.Root()]

	s := svgTree{
		root:      root,
		step:      xStep,
		minTick:   tv.min,
		labelTick: tv.label,
	}
	s.prepare(root, xStep)
	s.y = s.y * yStep
	s.taxSz = maxSz
	root.setColor(root.height)

	return s
}

func (s *svgTree) prepare(n *node, xStep float64) {
	n.x = (s.root.height-n.height)*xStep + 10
	if s.x < n.x {
		s.x = n.x
	}

	if n.desc == nil {
		n.y = s.y*yStep + 5
		s.y += 1
		return
	}

	botY := 0
	topY := math.MaxInt
	for _, d := range n.desc {
		s.prepare(d, xStep)
		if d.y < topY {
			topY = d.y
		}
		if d.y > botY {
			botY = d.y
		}
	}
	n.topY = topY
	n.botY = botY
	n.y = topY + (botY-topY)/2
}

// setColor sets the color of the branch
// using the node height relative to the root.
func (n *node) setColor(rootH float64) {
	v := 1.0
	if rootH > 0 {
		v = 1 - n.height/rootH
	}
	n.color = blind.Sequential(blind.Iridescent, v)

	for _, d := range n.desc {
		d.setColor(rootH)
	}
}

func (s *svgTree) draw(w io.Writer) error {
	fmt.Fprintf(w, "%s", xml.Header)
	e := xml.NewEncoder(w)
	svg := xml.StartElement{
		Name: xml.Name{Local: "svg"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "height"}, Value: strconv.Itoa(s.y + 40)},
			// assume that each character has 6 pixels wide
			{Name: xml.Name{Local: "width"}, Value: strconv.Itoa(int(s.x) + s.taxSz*6 + 20)},
			{Name: xml.Name{Local: "xmlns"}, Value: "http://www.w3.org/2000/svg"},
		},
	}
	e.EncodeToken(svg)

	g := xml.StartElement{
		Name: xml.Name{Local: "g"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "stroke-width"}, Value: "2"},
			{Name: xml.Name{Local: "stroke"}, Value: "black"},
			{Name: xml.Name{Local: "stroke-linecap"}, Value: "round"},
			{Name: xml.Name{Local: "font-family"}, Value: "Verdana"},
			{Name: xml.Name{Local: "font-size"}, Value: "10"},
		},
	}
	e.EncodeToken(g)

	s.root.draw(e)
	s.root.label(e)
	s.scale(e)

	e.EncodeToken(g.End())
	e.EncodeToken(svg.End())
	if err := e.Flush(); err != nil {
		return err
	}
	return nil
}

func (n node) draw(e *xml.Encoder) {
	r, g, b, _ := n.color.RGBA()
	rgb := fmt.Sprintf("rgb(%d,%d,%d)", r>>8, g>>8, b>>8)

	// horizontal line
	ln := xml.StartElement{
		Name: xml.Name{Local: "line"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x1"}, Value: strconv.Itoa(int(n.x - 5))},
			{Name: xml.Name{Local: "y1"}, Value: strconv.Itoa(n.y)},
			{Name: xml.Name{Local: "x2"}, Value: strconv.Itoa(int(n.x))},
			{Name: xml.Name{Local: "y2"}, Value: strconv.Itoa(n.y)},
			{Name: xml.Name{Local: "stroke"}, Value: rgb},
		},
	}
	if n.anc != nil {
		ln.Attr[0].Value = strconv.Itoa(int(n.anc.x))
	}
	e.EncodeToken(ln)
	e.EncodeToken(ln.End())

	if n.desc == nil {
		return
	}

	// vertical line
	ln.Attr[0].Value = ln.Attr[2].Value
	ln.Attr[1].Value = strconv.Itoa(n.topY)
	ln.Attr[3].Value = strconv.Itoa(n.botY)
	e.EncodeToken(ln)
	e.EncodeToken(ln.End())

	for _, d := range n.desc {
		d.draw(e)
	}
}

func (n node) label(e *xml.Encoder) {
	if n.desc == nil {
		tx := xml.StartElement{
			Name: xml.Name{Local: "text"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: strconv.Itoa(int(n.x + 10))},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(n.y + 5)},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
			},
		}
		e.EncodeToken(tx)
		e.EncodeToken(xml.CharData(n.tax))
		e.EncodeToken(tx.End())
	}

	for _, d := range n.desc {
		d.label(e)
	}
}

// scale draws a distance scale
// at the bottom of the tree.
func (s *svgTree) scale(e *xml.Encoder) {
	y := s.y + 10

	ln := xml.StartElement{
		Name: xml.Name{Local: "line"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x1"}, Value: strconv.Itoa(int(s.root.x))},
			{Name: xml.Name{Local: "y1"}, Value: strconv.Itoa(y)},
			{Name: xml.Name{Local: "x2"}, Value: strconv.Itoa(int(s.x))},
			{Name: xml.Name{Local: "y2"}, Value: strconv.Itoa(y)},
			{Name: xml.Name{Local: "stroke-width"}, Value: "1"},
		},
	}
	e.EncodeToken(ln)
	e.EncodeToken(ln.End())

	if s.minTick <= 0 {
		return
	}

	// ticks are placed from the terminals
	// (distance 0) to the root.
	ticks := int(math.Floor(s.root.height/s.minTick + 1e-9))
	every := int(math.Round(s.labelTick / s.minTick))
	for i := 0; i <= ticks; i++ {
		d := float64(i) * s.minTick
		x := strconv.Itoa(int(s.x - d*s.step))
		sz := 3
		isLabel := every > 0 && i%every == 0
		if isLabel {
			sz = 6
		}

		tk := xml.StartElement{
			Name: xml.Name{Local: "line"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x1"}, Value: x},
				{Name: xml.Name{Local: "y1"}, Value: strconv.Itoa(y)},
				{Name: xml.Name{Local: "x2"}, Value: x},
				{Name: xml.Name{Local: "y2"}, Value: strconv.Itoa(y + sz)},
				{Name: xml.Name{Local: "stroke-width"}, Value: "1"},
			},
		}
		e.EncodeToken(tk)
		e.EncodeToken(tk.End())

		if !isLabel {
			continue
		}
		tx := xml.StartElement{
			Name: xml.Name{Local: "text"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: x},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(y + 18)},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
				{Name: xml.Name{Local: "text-anchor"}, Value: "middle"},
			},
		}
		e.EncodeToken(tx)
		e.EncodeToken(xml.CharData(strconv.FormatFloat(d, 'f', 2, 64)))
		e.EncodeToken(tx.End())
	}
}
