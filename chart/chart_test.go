// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package chart_test

import (
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/js-arias/genetree/chart"
	"github.com/js-arias/genetree/events"
)

func TestGradient(t *testing.T) {
	for _, name := range []string{"", "rainbow", "Incandescent", "iridescent", "gray"} {
		g, err := chart.ParseGradient(name)
		if err != nil {
			t.Errorf("scale %q: unexpected error: %v", name, err)
			continue
		}
		if g.Gradient(-1) != g.Gradient(0) {
			t.Errorf("scale %q: values below 0 must be clamped", name)
		}
		if g.Gradient(2) != g.Gradient(1) {
			t.Errorf("scale %q: values above 1 must be clamped", name)
		}
	}

	if _, err := chart.ParseGradient("sepia"); err == nil {
		t.Errorf("expecting error on unknown scale")
	}

	g := chart.LightGrayScale{}
	if got, want := g.Gradient(0), (color.RGBA{200, 200, 200, 255}); got != want {
		t.Errorf("gray scale: got %v, want %v", got, want)
	}
}

func TestReadKey(t *testing.T) {
	data := `# event colors
type	color	comment
S	68, 119, 170	speciation
d	238,102,119	duplication
`
	k, err := chart.ReadKey(strings.NewReader(data), chart.Iridescent{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := k.Color(events.Speciation), (color.RGBA{68, 119, 170, 255}); got != want {
		t.Errorf("speciation: got %v, want %v", got, want)
	}
	if got, want := k.Color(events.Duplication), (color.RGBA{238, 102, 119, 255}); got != want {
		t.Errorf("duplication: got %v, want %v", got, want)
	}
	if got, want := k.Color(events.Undefined), (color.RGBA{211, 211, 211, 255}); got != want {
		t.Errorf("undefined: got %v, want %v", got, want)
	}

	bad := map[string]string{
		"no color field": "type\tvalue\nS\t1\n",
		"bad type":       "type\tcolor\nX\t1,2,3\n",
		"short color":    "type\tcolor\nS\t1,2\n",
		"out of range":   "type\tcolor\nS\t1,2,300\n",
	}
	for name, d := range bad {
		if _, err := chart.ReadKey(strings.NewReader(d), chart.Iridescent{}); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestHistogram(t *testing.T) {
	evs := []events.Event{
		{Type: events.Speciation, Score: 0},
		{Type: events.Speciation, Score: 0.05},
		{Type: events.Duplication, Score: 0.5},
		{Type: events.Duplication, Score: 1},
		{Type: events.Duplication, Score: 0.95},
	}

	h := chart.NewHistogram(evs, 10, chart.NewKey(chart.RainbowPurpleToRed{}))
	tests := []struct {
		tp   events.Type
		bin  int
		want int
	}{
		{events.Speciation, 0, 2},
		{events.Duplication, 5, 1},
		{events.Duplication, 9, 2},
		{events.Duplication, 0, 0},
		{events.Speciation, 10, 0},
	}
	for _, test := range tests {
		if got := h.Count(test.tp, test.bin); got != test.want {
			t.Errorf("%v bin %d: got %d, want %d", test.tp, test.bin, got, test.want)
		}
	}

	xMin, xMax, _, yMax := h.DataRange()
	if xMin != 0 || xMax != 1 {
		t.Errorf("x range: got %.2f-%.2f, want 0-1", xMin, xMax)
	}
	if yMax != 2 {
		t.Errorf("y max: got %.2f, want %.2f", yMax, 2.0)
	}

	name := "tmp-histogram-for-test.png"
	defer os.Remove(name)
	if err := h.Save(name, "scores"); err != nil {
		t.Fatalf("unable to save image: %v", err)
	}
}
