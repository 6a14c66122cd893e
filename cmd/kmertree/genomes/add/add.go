// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add genomes
// to a kmertree project.
package add

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/kmertree/genome"
	"github.com/js-arias/kmertree/project"
)

var Command = &command.Command{
	Usage: `add [-f|--file <listing-file>]
	[--label <name>] [--list <genome-listing>]
	<project-file> [<fasta-file>...]`,
	Short: "add genomes to a kmertree project",
	Long: `
Command add adds one or more genome assemblies to a kmertree project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more FASTA files can be given as arguments. By default, the label of
the genome will be the name of the file, without the directory and the FASTA
extension (and the ".gz" extension of compressed files). Use the flag --label
to set a different label. This flag can only be used when a single file is
added.

Genomes can also be read from a genome listing file, using the flag --list.
See 'kmertree help genome-files' for a description of a genome listing.

Labels must be unique, so if a label is already in the project, the command
will fail.

By default the genomes will be stored in the genome listing currently defined
for the project. If the project does not have a listing, or the listing is not
a tab-delimited file, a new one will be created with the name 'genomes.tab'. A
different listing file name can be defined using the flag --file, or -f; as
the listing is written as a tab-delimited file, the name must have the ".tab"
or ".tsv" extension. If this flag is used, previously defined genomes will be
kept in the new file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var listFile string
var labelFlag string
var inList string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&listFile, "file", "", "")
	c.Flags().StringVar(&listFile, "f", "", "")
	c.Flags().StringVar(&labelFlag, "label", "", "")
	c.Flags().StringVar(&inList, "list", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	pFile := args[0]
	args = args[1:]
	if len(args) == 0 && inList == "" {
		return c.UsageError("expecting genome files")
	}
	if labelFlag != "" && len(args) != 1 {
		return c.UsageError("flag --label requires a single genome file")
	}

	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	var gs []genome.Genome
	if p.Path(project.Genomes) != "" {
		gs, err = p.Genomes()
		if err != nil {
			return err
		}
	}

	if inList != "" {
		ls, err := genome.Read(inList)
		if err != nil {
			return err
		}
		gs = append(gs, ls...)
	}

	for _, a := range args {
		l := labelFlag
		if l == "" {
			l = genome.LabelFromPath(a)
		}
		gs = append(gs, genome.Genome{
			Label: l,
			Path:  a,
		})
	}
	if err := genome.Validate(gs); err != nil {
		return err
	}

	if listFile == "" {
		listFile = p.Path(project.Genomes)
		if listFile == "" || genome.Comma(listFile) != '\t' {
			listFile = "genomes.tab"
		}
	}
	if genome.Comma(listFile) != '\t' {
		return fmt.Errorf("invalid genome listing name %q: expecting \".tab\" or \".tsv\" extension", listFile)
	}

	if err := writeList(listFile, gs); err != nil {
		return err
	}
	p.Add(project.Genomes, listFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

// writeList writes the genome listing
// with genome paths relative to the listing directory.
func writeList(name string, gs []genome.Genome) (err error) {
	dir, err := filepath.Abs(filepath.Dir(name))
	if err != nil {
		return err
	}
	ls := make([]genome.Genome, 0, len(gs))
	for _, g := range gs {
		ls = append(ls, genome.Genome{
			Label: g.Label,
			Path:  relPath(dir, g.Path),
		})
	}

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

	if err := genome.WriteList(f, ls); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func relPath(dir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}
