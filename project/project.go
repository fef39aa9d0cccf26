// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of genetree project files.
//
// A project is a tab-delimited file (TSV)
// used to store the different data files
// required by genetree commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// File for the gene trees.
	GeneTrees Dataset = "genetrees"

	// File for the analysis parameters.
	Params Dataset = "params"

	// File for the table of gene species.
	Species Dataset = "species"

	// File for the species tree.
	SpeciesTree Dataset = "sptree"
)

// Datasets is the list of valid datasets,
// in the order in which they are written.
var Datasets = []Dataset{
	GeneTrees,
	SpeciesTree,
	Species,
	Params,
}

// ParseDataset returns the dataset
// of a keyword.
// Keywords are case insensitive.
func ParseDataset(s string) (Dataset, error) {
	set := Dataset(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Datasets, set) {
		return "", fmt.Errorf("unknown dataset %q", s)
	}
	return set, nil
}

// A Project stores the paths of the data files
// of a genetree analysis.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		paths: make(map[Dataset]string, len(Datasets)),
	}
}

var header = []string{
	"dataset",
	"path",
}

// Read reads a project file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//     (one of "genetrees", "params", "species", or "sptree")
//   - path, for the path of the file
//
// Each dataset can be defined only once.
// Rows without a path are ignored.
//
// Here is an example file:
//
//	# genetree project files
//	dataset	path
//	genetrees	gene-trees.tab
//	params	params.tab
//	species	species.tab
//	sptree	species-tree.nwk
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	p.name = name
	return p, nil
}

func read(r io.Reader) (*Project, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(h)] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		path := strings.TrimSpace(row[fields["path"]])
		if path == "" {
			continue
		}
		set, err := ParseDataset(row[fields["dataset"]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if prev, ok := p.paths[set]; ok {
			return nil, fmt.Errorf("on row %d: dataset %q already defined as %q", ln, set, prev)
		}
		p.paths[set] = path
	}
	return p, nil
}

// Add sets the path of a dataset,
// and returns the previous path.
// An empty path removes the dataset.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	if path == "" {
		delete(p.paths, set)
		return prev
	}
	p.paths[set] = path
	return prev
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the datasets defined on a project.
func (p *Project) Sets() []Dataset {
	var sets []Dataset
	for _, s := range Datasets {
		if _, ok := p.paths[s]; ok {
			sets = append(sets, s)
		}
	}
	return sets
}

// Name returns the project file name.
func (p *Project) Name() string {
	return p.name
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into a file.
func (p *Project) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := p.write(f); err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	return nil
}

func (p *Project) write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# genetree project files\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, s := range p.Sets() {
		if err := tsv.Write([]string{string(s), p.paths[s]}); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return bw.Flush()
}
