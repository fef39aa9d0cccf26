// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package events implements the detection
// of evolutionary events
// (speciations and duplications)
// in gene trees
// using the species overlap criterion.
//
// For every split of a gene tree,
// the species found at each side of the split are compared.
// If both sides share species,
// the split is a duplication,
// otherwise it is a speciation.
package events

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned when the structure of a tree
// is not valid for an analysis.
var (
	ErrNotRooted = errors.New("tree not rooted")
	ErrNotBinary = errors.New("nodes are expected to have two children")
)

// Type is the type of an evolutionary event.
type Type int

// Valid event types.
const (
	Undefined Type = iota

	// A speciation event,
	// both sides of the split have different species.
	Speciation

	// A duplication event,
	// both sides of the split share species.
	Duplication

	// A gene loss
	// (i.e., a lineage expected from the species tree
	// that is absent in the gene tree).
	Loss
)

// String returns the code of an event type.
func (tp Type) String() string {
	switch tp {
	case Speciation:
		return "S"
	case Duplication:
		return "D"
	case Loss:
		return "L"
	}
	return ""
}

// ParseType returns an event type from a string.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "speciation":
		return Speciation, nil
	case "d", "duplication":
		return Duplication, nil
	case "l", "loss":
		return Loss, nil
	}
	return Undefined, fmt.Errorf("unknown event type %q", s)
}

// Tags is a map of node IDs to event types.
// It is the classification of the nodes of a tree.
type Tags map[int]Type

// Tagger returns a function that returns
// the code of the event type of a node.
func (tg Tags) Tagger() func(id int) string {
	return func(id int) string {
		return tg[id].String()
	}
}

// Count returns the number of nodes
// with the indicated event type.
func (tg Tags) Count(tp Type) int {
	var n int
	for _, v := range tg {
		if v == tp {
			n++
		}
	}
	return n
}

// An Event is an evolutionary event
// inferred at a node of a gene tree.
type Event struct {
	Tree string // name of the tree
	Node int    // ID of the node
	Type Type

	// Genes at each side of the event.
	// In leaf-anchored scans,
	// In are the browsed genes
	// and Out are the genes of the sister lineages.
	// In root-anchored scans,
	// In and Out are the genes of each child.
	In  []string
	Out []string

	InParalogs  []string
	OutParalogs []string
	Orthologs   []string

	// Score is the species overlap score
	// of the event.
	Score float64

	// Outgroup are the genes of the outgroup
	// of the tree.
	Outgroup []string

	// Age is the number of levels
	// between the seed and the event
	// (only for leaf-anchored scans).
	Age int

	// FamSize is the number of genes in the tree.
	FamSize int

	// Seed is the gene used for a leaf-anchored scan.
	Seed string

	// Supports of the node and its two children.
	Supports []float64
}
