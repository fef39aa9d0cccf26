// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/genetree/events"
)

// Key stores the color values
// for each event type.
type Key struct {
	color map[events.Type]color.Color
}

// NewKey returns a key
// with colors for speciations and duplications
// taken from a gradient.
func NewKey(g Gradienter) *Key {
	return &Key{
		color: map[events.Type]color.Color{
			events.Speciation:  g.Gradient(0.2),
			events.Duplication: g.Gradient(0.8),
		},
	}
}

// Color returns the color associated with an event type.
// If no color is defined for the type,
// it will return a light gray.
func (k *Key) Color(tp events.Type) color.Color {
	c, ok := k.color[tp]
	if !ok {
		return color.RGBA{211, 211, 211, 255}
	}
	return c
}

// Set sets the color of an event type.
func (k *Key) Set(tp events.Type, c color.Color) {
	k.color[tp] = c
}

// ReadKey reads a key file used to define the colors
// of the event types.
//
// A key file is a tab-delimited file
// with the following required columns:
//
//	-type	the event type ("S" or "D")
//	-color	an RGB value separated by commas,
//		for example "125,132,148".
//
// Any other columns, will be ignored.
// Here is an example of a key file:
//
//	type	color	comment
//	S	68, 119, 170	speciation
//	D	238, 102, 119	duplication
func ReadKey(r io.Reader, g Gradienter) (*Key, error) {
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
	for _, h := range []string{"type", "color"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	k := NewKey(g)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "type"
		tp, err := events.ParseType(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "color"
		c, err := parseRGB(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		k.color[tp] = c
	}
	return k, nil
}

func parseRGB(s string) (color.Color, error) {
	val := strings.Split(s, ",")
	if len(val) != 3 {
		return nil, fmt.Errorf("found %d values, want 3", len(val))
	}

	var rgb [3]uint8
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.Atoi(strings.TrimSpace(val[i]))
		if err != nil {
			return nil, fmt.Errorf("[%s value]: %v", name, err)
		}
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("[%s value]: invalid value %d", name, v)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
