// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the genomes of a kmertree project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/project"
)

var Command = &command.Command{
	Usage: "list [--path] <project-file>",
	Short: "print a list of the genomes in a project",
	Long: `
Command list reads the genome listing of a kmertree project and prints the
genome labels in the standard output.

The argument of the command is the name of the project file.

If the flag --path is defined, the path of the genome file will be printed
after the label, separated by a tab.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pathFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&pathFlag, "path", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	gs, err := p.Genomes()
	if err != nil {
		return err
	}

	for _, g := range gs {
		if pathFlag {
			fmt.Fprintf(c.Stdout(), "%s\t%s\n", g.Label, g.Path)
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\n", g.Label)
	}
	return nil
}
