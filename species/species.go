// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package species implements species-naming functions
// and species sets
// used to compare gene trees.
package species

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/genetree/phylo"
)

// ErrNoSpecies is returned when a terminal of a tree
// can not be assigned to a species.
var ErrNoSpecies = errors.New("undefined species")

// A Naming is a function that returns the species code
// of a gene
// (i.e., a terminal name of a gene tree).
// It returns an empty string if the species is unknown.
type Naming func(gene string) string

// Prefix returns a naming function
// that uses the first n characters of the gene name
// as the species code.
// If n is not positive,
// the species is always unknown.
func Prefix(n int) Naming {
	return func(gene string) string {
		r := []rune(gene)
		if n <= 0 || len(r) < n {
			return ""
		}
		return string(r[:n])
	}
}

// Delimiter returns a naming function
// that split the gene name using sep,
// and uses the indicated field as the species code.
// Negative fields are counted from the end,
// so -1 is the last field.
func Delimiter(sep string, field int) Naming {
	return func(gene string) string {
		f := strings.Split(gene, sep)
		i := field
		if i < 0 {
			i += len(f)
		}
		if len(f) < 2 || i < 0 || i >= len(f) {
			return ""
		}
		return strings.TrimSpace(f[i])
	}
}

// Identity is a naming function
// in which the gene name is the species code.
// It is used for species trees.
func Identity(gene string) string {
	return gene
}

// A Set is a set of species.
type Set map[string]bool

// NewSet returns a set with the given species.
func NewSet(sp ...string) Set {
	s := make(Set, len(sp))
	for _, v := range sp {
		s.Add(v)
	}
	return s
}

// Add adds a species to the set.
func (s Set) Add(sp string) {
	s[sp] = true
}

// Has returns true if the species is in the set.
func (s Set) Has(sp string) bool {
	return s[sp]
}

// Len returns the number of species in the set.
func (s Set) Len() int {
	return len(s)
}

// List returns the sorted list of species in the set.
func (s Set) List() []string {
	ls := make([]string, 0, len(s))
	for sp := range s {
		ls = append(ls, sp)
	}
	slices.Sort(ls)
	return ls
}

// Union returns a new set
// with the species of both sets.
func (s Set) Union(o Set) Set {
	u := make(Set, len(s)+len(o))
	for sp := range s {
		u[sp] = true
	}
	for sp := range o {
		u[sp] = true
	}
	return u
}

// Intersection returns a new set
// with the species shared by both sets.
func (s Set) Intersection(o Set) Set {
	a, b := s, o
	if len(b) < len(a) {
		a, b = b, a
	}
	in := make(Set)
	for sp := range a {
		if b[sp] {
			in[sp] = true
		}
	}
	return in
}

// Overlaps returns true if both sets share at least one species.
func (s Set) Overlaps(o Set) bool {
	a, b := s, o
	if len(b) < len(a) {
		a, b = b, a
	}
	for sp := range a {
		if b[sp] {
			return true
		}
	}
	return false
}

// Contains returns true
// if all species of o are in s.
func (s Set) Contains(o Set) bool {
	for sp := range o {
		if !s[sp] {
			return false
		}
	}
	return true
}

// Overlap returns the species overlap score
// of two sets:
// the number of shared species
// divided by the number of species in the union.
// If both sets are empty,
// the overlap is zero.
func Overlap(a, b Set) float64 {
	shared := a.Intersection(b).Len()
	total := len(a) + len(b) - shared
	if total == 0 {
		return 0
	}
	return float64(shared) / float64(total)
}

// Of returns the species set
// of the terminals of the clade of a node.
func Of(t *phylo.Tree, id int, nm Naming) (Set, error) {
	s := make(Set)
	for _, n := range t.TermIDs(id) {
		sp, err := Code(t, n, nm)
		if err != nil {
			return nil, err
		}
		s[sp] = true
	}
	return s, nil
}

// Code returns the species of a terminal node.
func Code(t *phylo.Tree, id int, nm Naming) (string, error) {
	g := t.Taxon(id)
	sp := nm(g)
	if sp == "" {
		return "", fmt.Errorf("tree %q: gene %q: %w", t.Name(), g, ErrNoSpecies)
	}
	return sp, nil
}
