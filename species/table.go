// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package species

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// A Table is an explicit assignation
// of genes to species.
type Table struct {
	genes map[string]string
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{
		genes: make(map[string]string),
	}
}

// Add sets the species of a gene.
// It returns an error if the gene is already assigned
// to a different species.
func (tb *Table) Add(gene, sp string) error {
	gene = strings.Join(strings.Fields(gene), " ")
	sp = strings.Join(strings.Fields(sp), " ")
	if gene == "" || sp == "" {
		return nil
	}
	if prev, ok := tb.genes[gene]; ok && prev != sp {
		return fmt.Errorf("gene %q: assigned to species %q and %q", gene, prev, sp)
	}
	tb.genes[gene] = sp
	return nil
}

// Genes returns the sorted list of genes in the table.
func (tb *Table) Genes() []string {
	genes := make([]string, 0, len(tb.genes))
	for g := range tb.genes {
		genes = append(genes, g)
	}
	slices.Sort(genes)
	return genes
}

// Species returns the species of a gene.
func (tb *Table) Species(gene string) string {
	return tb.genes[gene]
}

// Naming returns a naming function based on the table.
func (tb *Table) Naming() Naming {
	return tb.Species
}

// ReadTSV reads a table of genes and species
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - gene, the identifier of the gene
//     (as used in the gene trees)
//   - species, the species code
//
// Here is an example file:
//
//	gene	species
//	ENSG00000139618	human
//	ENSMUSG00000041147	mouse
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"gene", "species"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	tb := NewTable()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "gene"
		gene := row[fields[f]]

		f = "species"
		sp := row[fields[f]]
		if err := tb.Add(gene, sp); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return tb, nil
}

// TSV writes a table as a TSV file.
func (tb *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"gene", "species"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, g := range tb.Genes() {
		row := []string{
			g,
			tb.genes[g],
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
