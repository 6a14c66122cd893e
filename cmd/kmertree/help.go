// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(genomeFilesGuide)
	app.Add(matrixFilesGuide)
	app.Add(newickGuide)
	app.Add(projectsGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
KmerTree uses several files to build a tree of genome assemblies. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files used in the analysis. This guide explains the
structure of the file, but most of the time, the best and most secure way to
edit or view this file is by using kmertree commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# kmertree project files
	dataset	path
	genomes	genomes.tab
	matrix	distances.tab
	newick	output/phylogenetic_tree.newick
	trees	trees.tab

The valid file types are:

- Genome listings. Defined by the dataset keyword "genomes". This file
  contains the labels and the FASTA files of the genome assemblies. The
  recommended way to add genomes is by using the command
  'kmertree genomes add'.
- Distance matrices. Defined by the dataset keyword "matrix". This file
  contains the k-mer distances between each pair of genomes in the form of a
  tab-delimited file. The recommended way to build a distance matrix is by
  using the command 'kmertree matrix'.
- Newick trees. Defined by the dataset keyword "newick". This file contains
  the UPGMA tree of the genomes in Newick format. The recommended way to build
  the tree is by using the command 'kmertree tree'. This is the tree drawn by
  the command 'kmertree draw'.
- Tree files. Defined by the dataset keyword "trees". This file contains the
  UPGMA tree in the form of a tab-delimited tree file. It is created by the
  command 'kmertree tree' when the flag --tsv is used.
	`,
}

var genomeFilesGuide = &command.Command{
	Usage: "genome-files",
	Short: "about genome listing files",
	Long: `
A genome listing is a delimited text file that relates the label of a genome
with the FASTA file that contains the genome assembly. By default, a listing is
read as a comma-delimited file, but files with the extension ".tab" or ".tsv"
are read as tab-delimited files. Lines starting with '#' are ignored.

A genome listing has the following fields:

	- label   the name of the genome, it must be unique.
	- genome  the path of the FASTA file of the genome. Relative paths are
	          taken as relative to the directory of the listing file. If
	          the file name ends in ".gz", it will be read as a
	          gzip-compressed file.

Any other field will be ignored.

Here is an example file:

	label,genome
	NCC2705,assemblies/NCC2705.fasta
	DJO10A,assemblies/DJO10A.fasta.gz
	BBMN68,assemblies/BBMN68.fna

Each FASTA file can contain any number of records (for example, a chromosome
and one or more plasmids). K-mers are read from each record, and never span
two records. Sequences are read as uppercase, so "acgt" and "ACGT" are the
same k-mer. Any letter is a valid base (including ambiguity codes such as
"N"), but gaps ("-"), stops ("*"), or any other character that is not a
letter break the sequence, so no k-mer contains them.
	`,
}

var matrixFilesGuide = &command.Command{
	Usage: "matrix-files",
	Short: "about distance matrix files",
	Long: `
The k-mer distance between two genomes is defined as one minus the Jaccard
similarity of their k-mer sets, i.e., the number of shared k-mers divided by
the number of distinct k-mers found in any of the genomes. A distance of 0
means that both genomes have the same k-mers, and a distance of 1 means that
the genomes do not share any k-mer.

A distance matrix file is a tab-delimited file with the following fields:

	- label     the label of a genome
	- ref       the label of the other genome
	- distance  the k-mer distance between both genomes

Each pair of genomes must be defined once, in any order. Lines starting with
'#' are ignored.

Here is an example file:

	# k-mer distances
	label	ref	distance
	NCC2705	DJO10A	0.2
	NCC2705	BBMN68	0.85
	DJO10A	BBMN68	0.8475

In a KmerTree project, the file that contains the distance matrix is indicated
with the "matrix" keyword.
	`,
}

var newickGuide = &command.Command{
	Usage: "newick",
	Short: "about the newick output",
	Long: `
The tree of the genomes is built using UPGMA (i.e., average linkage
clustering). At each step, the two clusters with the minimum average distance
are merged. If several pairs of clusters have the same distance, the pair with
the lexicographically smallest list of sorted labels is merged first, so the
same input always produces the same tree.

The tree is written in Newick format in a file called
"phylogenetic_tree.newick". Branch lengths are in distance units, with six
decimal places. The height of each node is the average distance at which its
clusters were merged, so the sum of the branch lengths from any genome to the
root is equal to the height of the root.

Labels with spaces or any Newick special character are written between single
quotes.

Here is an example file:

	(BBMN68:0.848750,(DJO10A:0.200000,NCC2705:0.200000):0.648750);
	`,
}
