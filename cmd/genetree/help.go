// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(eventsFilesGuide)
	app.Add(projectsGuide)
	app.Add(speciesNamingGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Genetree requires several files to read and process gene trees. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files required in the analysis. This guide explains the
structure of the file, but most of the time, the best and most secure way to
edit or view this file is by using genetree commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# genetree project files
	dataset	path
	genetrees	gene-trees.tab
	params	params.tab
	species	species.tab
	sptree	species-tree.nwk

The valid file types are:

- Gene trees. Defined by the dataset keyword "genetrees". This file contains
  one or more gene trees in the form of a tab-delimited file. The recommended
  way to add gene trees is by using the command 'genetree tree add'.
- Parameters. Defined by the dataset keyword "params". This file contains the
  analysis parameters (the species overlap threshold, the method used to
  reconcile the trees, and the way in which the species of a gene is
  defined). The recommended way to edit the parameters is by using the
  command 'genetree param'.
- Species table. Defined by the dataset keyword "species". This file contains
  the species of each gene in the form of a tab-delimited file. It is only
  required if the genes are named with the "table" scheme (see 'genetree help
  species-naming'). The recommended way to add a species table is by using
  the command 'genetree tree species --table'.
- Species tree. Defined by the dataset keyword "sptree". This file contains
  the species tree in newick format. It is required by the "template" and
  "zmasek" reconciliation methods. The recommended way to add a species tree
  is by using the command 'genetree tree species'.
	`,
}

var speciesNamingGuide = &command.Command{
	Usage: "species-naming",
	Short: "about the species of the genes",
	Long: `
Each gene (i.e., each terminal of a gene tree) must belong to a species. In
genetree the species of a gene is taken from the name of the gene, using one
of the following schemes:

	delimiter  the name of the gene is split using a delimiter, and one
	           of the fields is used as the species code. By default the
	           delimiter is "_" and the last field is used. For example,
	           in "BRCA1_HUMAN" the species is "HUMAN".
	prefix     the first characters of the name of the gene are used as
	           the species code. By default, three characters are used. For
	           example, in "HUMBRCA1" the species is "HUM".
	table      the species of each gene is read from a species table.

The scheme, as well as its options, are defined in the project parameters. Use
the command 'genetree param' to set them.

Gene names are case sensitive. In the delimiter scheme, the field index starts
from 0, negative values count from the end, so -1 is the last field.

A species table is a tab-delimited file with the following columns:

	- gene     the name of the gene
	- species  the species code of the gene

Here is an example file:

	gene	species
	BRCA1_a	human
	BRCA1_b	mouse
	BRCA2_a	human

A gene can be assigned to only one species. If the species table scheme is
used, all the genes of the gene trees must be in the table.

Use the command 'genetree tree terms --species' to check the species assigned
to each gene.
	`,
}

var eventsFilesGuide = &command.Command{
	Usage: "events-files",
	Short: "about events files",
	Long: `
Evolutionary events detected in the gene trees are stored in tab-delimited
files with the following columns:

	-tree         the name of the gene tree
	-node         the ID of the node of the event
	-type         the type of the event ("S" for speciation, "D" for
	              duplication)
	-score        the species overlap score of the event
	-seed         the gene used as a seed, if the events were detected
	              from a leaf
	-in           the genes at one side of the event
	-out          the genes at the other side of the event
	-inparalogs   the genes at the side of the seed gene
	-outparalogs  the genes paralogous to the in-paralogs (only in
	              duplications)
	-orthologs    the genes orthologous to the in-paralogs (only in
	              speciations)

Lists of genes are separated by commas. The species overlap score is the
number of species shared by both sides of the event, divided by the number of
species in the node. Scores are between 0 and 1.

Here is an example file:

	# species overlap events
	tree	node	type	score	seed	in	out	inparalogs	outparalogs	orthologs
	fam1	0	D	0.5		A_human,A_mouse	B_human	A_human,A_mouse	B_human
	fam1	2	S	0		A_human	A_mouse	A_human		A_mouse

Events files are produced by the commands 'genetree events' and 'genetree
reconcile', and can be used as input of the commands 'genetree orthologs',
'genetree plot', and 'genetree stats'.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In genetree, gene trees are stored in a tab-delimited file. The advantage of
using a tab-delimited file is that it would be easier to manipulate trees
than in traditional newick files; for example, it would be easier for
commands in genetree, as well as for third-party applications, to understand
the node IDs.

The recommended way to interact with gene trees in a genetree project is by
using the commands in "genetree tree". Gene trees in newick format can be
imported with the command "genetree tree add --newick".

A genetree tree file is a tab-delimited file with the following columns:

	-tree     for the name of the tree.
	-node     for the ID of the node.
	-parent   for of ID of the parent node (-1 is used for the root).
	-length   the length of the branch (-1 if undefined).
	-support  the support of the branch (-1 if undefined).
	-taxon    the name of the gene (empty for internal nodes).

Here is an example file:

	# gene trees
	tree	node	parent	length	support	taxon
	fam1	0	-1	-1	-1
	fam1	1	0	0.5	-1	B_human
	fam1	2	0	0.2	95
	fam1	3	2	0.1	-1	A_human
	fam1	4	2	0.1	-1	A_mouse

In a genetree project, the file that contains the gene trees is indicated with
the "genetrees" keyword.
	`,
}
