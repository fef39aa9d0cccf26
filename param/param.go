// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements reading and writing
// of the parameters of an analysis
// of evolutionary events.
package param

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/genetree/species"
)

// Param is a keyword to identify
// the type of parameter in a parameters file.
type Param string

// Valid parameters
const (
	// Delimiter is the string that separates
	// the fields of a gene name.
	Delimiter Param = "delimiter"

	// Field is the field of a gene name
	// that contains the species code.
	// Negative values are counted from the end.
	Field Param = "field"

	// Method is the method used to detect
	// evolutionary events.
	Method Param = "method"

	// Naming is the scheme used
	// to retrieve the species of a gene.
	Naming Param = "naming"

	// Prefix is the number of characters
	// of the species code
	// at the start of a gene name.
	Prefix Param = "prefix"

	// Threshold is the species overlap threshold.
	Threshold Param = "threshold"
)

// Valid naming schemes.
const (
	ByPrefix    = "prefix"
	ByDelimiter = "delimiter"
	ByTable     = "table"
)

// Valid methods.
const (
	Overlap  = "overlap"
	Template = "template"
	Zmasek   = "zmasek"
)

// P is a collection of analysis parameters.
type P struct {
	name string // file name

	thr    float64
	method string

	// species naming
	naming string
	prefix int
	delim  string
	field  int
}

// New creates a new parameter collection
// with the default values.
func New(name string) *P {
	return &P{
		name:   name,
		method: Overlap,
		naming: ByDelimiter,
		prefix: 3,
		delim:  "_",
		field:  -1,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameters file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Parameters not defined in the file
// take their default values.
//
// Here is an example file:
//
//	# genetree parameters
//	parameter	value
//	threshold	0
//	method	overlap
//	naming	delimiter
//	delimiter	_
//	field	-1
func Read(name string) (*P, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := read(f, name)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}

func read(r io.Reader, name string) (*P, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "parameter"
		pm := Param(strings.ToLower(strings.TrimSpace(row[fields[f]])))

		f = "value"
		v := row[fields[f]]
		switch pm {
		case Delimiter:
			err = p.SetDelimiter(v)
		case Field:
			var i int
			i, err = strconv.Atoi(strings.TrimSpace(v))
			if err == nil {
				p.SetField(i)
			}
		case Method:
			err = p.SetMethod(v)
		case Naming:
			err = p.SetNaming(v)
		case Prefix:
			var i int
			i, err = strconv.Atoi(strings.TrimSpace(v))
			if err == nil {
				err = p.SetPrefix(i)
			}
		case Threshold:
			var t float64
			t, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err == nil {
				err = p.SetThreshold(t)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}
	}
	return p, nil
}

// Delimiter returns the delimiter of the fields
// of a gene name.
func (p *P) Delimiter() string {
	return p.delim
}

// Field returns the field of the gene name
// that contains the species code.
func (p *P) Field() int {
	return p.field
}

// Method returns the method used to detect
// the evolutionary events.
func (p *P) Method() string {
	return p.method
}

// Name returns the name of the parameters file.
func (p *P) Name() string {
	return p.name
}

// Naming returns the naming scheme.
func (p *P) Naming() string {
	return p.naming
}

// Prefix returns the number of characters of a species prefix.
func (p *P) Prefix() int {
	return p.prefix
}

// Threshold returns the species overlap threshold.
func (p *P) Threshold() float64 {
	return p.thr
}

// Species returns the species naming function
// defined by the parameters.
// A table is required
// if the naming scheme is "table".
func (p *P) Species(tb *species.Table) (species.Naming, error) {
	switch p.naming {
	case ByPrefix:
		return species.Prefix(p.prefix), nil
	case ByDelimiter:
		return species.Delimiter(p.delim, p.field), nil
	case ByTable:
		if tb == nil {
			return nil, errors.New("naming scheme \"table\" without a species table")
		}
		return tb.Naming(), nil
	}
	return nil, fmt.Errorf("unknown naming scheme %q", p.naming)
}

// SetDelimiter sets the delimiter of the fields
// of a gene name.
func (p *P) SetDelimiter(d string) error {
	if d == "" {
		return errors.New("empty delimiter")
	}
	p.delim = d
	return nil
}

// SetField sets the field of a gene name
// that contains the species code.
func (p *P) SetField(f int) {
	p.field = f
}

// SetMethod sets the method used to detect
// evolutionary events.
func (p *P) SetMethod(m string) error {
	m = strings.ToLower(strings.TrimSpace(m))
	switch m {
	case Overlap:
	case Template:
	case Zmasek:
	default:
		return fmt.Errorf("unknown method %q", m)
	}
	p.method = m
	return nil
}

// SetName sets the name of a parameter collection.
func (p *P) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.name = name
}

// SetNaming sets the naming scheme.
func (p *P) SetNaming(n string) error {
	n = strings.ToLower(strings.TrimSpace(n))
	switch n {
	case ByPrefix:
	case ByDelimiter:
	case ByTable:
	default:
		return fmt.Errorf("unknown naming scheme %q", n)
	}
	p.naming = n
	return nil
}

// SetPrefix sets the number of characters
// of a species prefix.
func (p *P) SetPrefix(n int) error {
	if n < 1 {
		return fmt.Errorf("invalid prefix size: %d", n)
	}
	p.prefix = n
	return nil
}

// SetThreshold sets the species overlap threshold.
// It must be between 0 and 1.
func (p *P) SetThreshold(t float64) error {
	if t < 0 || t > 1 {
		return fmt.Errorf("invalid threshold value: %.6f", t)
	}
	p.thr = t
	return nil
}

// Write writes a parameter collection into a file.
func (p *P) Write() (err error) {
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

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# genetree parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	rows := [][]string{
		{string(Threshold), strconv.FormatFloat(p.thr, 'f', -1, 64)},
		{string(Method), p.method},
		{string(Naming), p.naming},
		{string(Prefix), strconv.Itoa(p.prefix)},
		{string(Delimiter), p.delim},
		{string(Field), strconv.Itoa(p.field)},
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", p.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}
