// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package chart implements charts
// of the species overlap scores
// of evolutionary events.
package chart

import (
	"image/color"

	"github.com/js-arias/genetree/events"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// stacking order of the bars
var types = []events.Type{
	events.Speciation,
	events.Duplication,
}

// A Histogram is a histogram
// of the species overlap scores,
// with bars stacked by event type.
type Histogram struct {
	bins   int
	counts map[events.Type][]int
	key    *Key
}

// NewHistogram returns a histogram
// of the scores of a list of events
// using the indicated number of bins.
func NewHistogram(evs []events.Event, bins int, key *Key) *Histogram {
	if bins < 1 {
		bins = 1
	}
	h := &Histogram{
		bins:   bins,
		counts: make(map[events.Type][]int, len(types)),
		key:    key,
	}
	for _, tp := range types {
		h.counts[tp] = make([]int, bins)
	}

	for _, e := range evs {
		c, ok := h.counts[e.Type]
		if !ok {
			continue
		}
		c[h.bin(e.Score)]++
	}
	return h
}

func (h *Histogram) bin(score float64) int {
	b := int(score * float64(h.bins))
	if b >= h.bins {
		b = h.bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// Count returns the number of events of a type
// in a bin.
func (h *Histogram) Count(tp events.Type, bin int) int {
	c, ok := h.counts[tp]
	if !ok || bin < 0 || bin >= len(c) {
		return 0
	}
	return c[bin]
}

// DataRange implements the plot.DataRanger interface.
func (h *Histogram) DataRange() (xMin, xMax, yMin, yMax float64) {
	for b := 0; b < h.bins; b++ {
		var sum int
		for _, tp := range types {
			sum += h.counts[tp][b]
		}
		if v := float64(sum); v > yMax {
			yMax = v
		}
	}
	return 0, 1, 0, yMax
}

// Plot implements the plot.Plotter interface.
func (h *Histogram) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	w := 1 / float64(h.bins)
	for b := 0; b < h.bins; b++ {
		x0 := trX(float64(b) * w)
		x1 := trX(float64(b+1) * w)
		var base int
		for _, tp := range types {
			n := h.counts[tp][b]
			if n == 0 {
				continue
			}
			y0 := trY(float64(base))
			y1 := trY(float64(base + n))
			pts := []vg.Point{
				{X: x0, Y: y0},
				{X: x0, Y: y1},
				{X: x1, Y: y1},
				{X: x1, Y: y0},
				{X: x0, Y: y0},
			}
			c.FillPolygon(h.key.Color(tp), pts)
			base += n
		}
	}
}

// Save writes the histogram as an image file.
// The format is taken from the file extension.
func (h *Histogram) Save(name, title string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "species overlap score"
	p.Y.Label.Text = "events"

	p.Add(h)
	for _, tp := range types {
		name := "speciation"
		if tp == events.Duplication {
			name = "duplication"
		}
		p.Legend.Add(name, swatch{h.key.Color(tp)})
	}
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 4*vg.Inch, name)
}

// A swatch is a legend thumbnail
// filled with a color.
type swatch struct {
	c color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.c, pts)
}
