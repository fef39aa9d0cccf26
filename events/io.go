// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package events

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var header = []string{
	"tree",
	"node",
	"type",
	"score",
	"seed",
	"in",
	"out",
	"inparalogs",
	"outparalogs",
	"orthologs",
}

// ReadTSV reads a list of events from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - tree, the name of the gene tree
//   - node, the ID of the node of the event
//   - type, the type of the event
//     ("S" for speciation, "D" for duplication)
//   - score, the species overlap score
//   - in, the genes at one side of the event
//   - out, the genes at the other side of the event
//
// Optionally it can contain the fields
// seed, inparalogs, outparalogs,
// and orthologs.
// Lists of genes are separated by commas.
//
// Here is an example file:
//
//	tree	node	type	score	seed	in	out	inparalogs	outparalogs	orthologs
//	fam1	0	D	0.5		A_human,A_mouse	B_human	A_human,A_mouse	B_human
//	fam1	2	S	0		A_human	A_mouse	A_human		A_mouse
func ReadTSV(r io.Reader) ([]Event, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"tree", "node", "type", "score", "in", "out"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var evs []Event
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		var e Event
		f := "tree"
		e.Tree = strings.Join(strings.Fields(row[fields[f]]), " ")
		if e.Tree == "" {
			continue
		}

		f = "node"
		e.Node, err = strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "type"
		e.Type, err = ParseType(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "score"
		e.Score, err = strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if e.Score < 0 || e.Score > 1 {
			return nil, fmt.Errorf("on row %d: field %q: invalid score %.6f", ln, f, e.Score)
		}

		e.In = geneList(row[fields["in"]])
		e.Out = geneList(row[fields["out"]])
		if i, ok := fields["seed"]; ok {
			e.Seed = row[i]
		}
		if i, ok := fields["inparalogs"]; ok {
			e.InParalogs = geneList(row[i])
		}
		if i, ok := fields["outparalogs"]; ok {
			e.OutParalogs = geneList(row[i])
		}
		if i, ok := fields["orthologs"]; ok {
			e.Orthologs = geneList(row[i])
		}
		evs = append(evs, e)
	}
	return evs, nil
}

func geneList(s string) []string {
	var ls []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		ls = append(ls, g)
	}
	return ls
}

// WriteTSV writes a list of events as a TSV file.
func WriteTSV(w io.Writer, evs []Event) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, e := range evs {
		row := []string{
			e.Tree,
			strconv.Itoa(e.Node),
			e.Type.String(),
			strconv.FormatFloat(e.Score, 'g', -1, 64),
			e.Seed,
			strings.Join(e.In, ","),
			strings.Join(e.Out, ","),
			strings.Join(e.InParalogs, ","),
			strings.Join(e.OutParalogs, ","),
			strings.Join(e.Orthologs, ","),
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
