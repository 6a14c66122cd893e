// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the tree of a kmertree project as a SVG file.
package draw

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/project"
)

var Command = &command.Command{
	Usage: `draw [--step <value>] [--tick <tick-value>]
	[-o|--output <file>]
	<project-file>`,
	Short: "draw the project tree as a SVG file",
	Long: `
Command draw reads the Newick tree of a kmertree project and draws it into a
SVG-encoded file. Branches are colored by the height of the node, from the
root (dark) to the terminals (light). Genome labels are drawn as they are
found in the tree file.

The argument of the command is the name of the project file.

By default, 500 pixel units will be used per distance unit; use the flag
--step to define a different value (it can have decimal points).

By default, a distance scale with ticks every 0.05 units, and labels every 0.1
units will be added at the bottom of the drawing. Use the flag --tick to
define the ticks, using the following format: "<tick>,<label-tick>", for
example, the default is "0.05,0.1".

By default, the name of the Newick file, with the extension ".svg", will be
used as the output file name. Use the flag -o, or --output, to define a
different file name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var stepX float64
var tickFlag string
var outFile string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&stepX, "step", 500, "")
	c.Flags().StringVar(&outFile, "output", "", "")
	c.Flags().StringVar(&outFile, "o", "", "")
	c.Flags().StringVar(&tickFlag, "tick", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	tv, err := parseTick(tickFlag)
	if err != nil {
		return err
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}

	name := outFile
	if name == "" {
		nw := p.Path(project.Newick)
		name = strings.TrimSuffix(nw, filepath.Ext(nw)) + ".svg"
	}
	return writeSVG(name, copyTree(t, stepX, tv))
}

func writeSVG(name string, t svgTree) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := t.draw(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}

type tickValues struct {
	min   float64
	label float64
}

func parseTick(tick string) (tickValues, error) {
	if tick == "" {
		return tickValues{
			min:   0.05,
			label: 0.1,
		}, nil
	}

	vals := strings.Split(tick, ",")
	if len(vals) != 2 {
		return tickValues{}, fmt.Errorf("invalid tick values: %q", tick)
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
	if err != nil {
		return tickValues{}, fmt.Errorf("invalid tick value: %q: %v", tick, err)
	}

	label, err := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
	if err != nil {
		return tickValues{}, fmt.Errorf("invalid label tick value: %q: %v", tick, err)
	}

	return tickValues{
		min:   min,
		label: label,
	}, nil
}
