// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package events

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// A Summary is a description
// of the events of a collection of trees.
type Summary struct {
	Trees int
	Count map[Type]int

	// Statistics of the species overlap scores.
	Mean   float64
	StdDev float64
	Median float64
	Low    float64 // 2.5% quantile
	High   float64 // 97.5% quantile
}

// Summarize returns the summary of a list of events.
func Summarize(evs []Event) Summary {
	s := Summary{
		Count: make(map[Type]int),
	}
	if len(evs) == 0 {
		return s
	}

	trees := make(map[string]bool)
	scores := make([]float64, 0, len(evs))
	for _, e := range evs {
		trees[e.Tree] = true
		s.Count[e.Type]++
		scores = append(scores, e.Score)
	}
	s.Trees = len(trees)
	slices.Sort(scores)

	s.Mean, s.StdDev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		s.StdDev = 0
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	s.Low = stat.Quantile(0.025, stat.Empirical, scores, nil)
	s.High = stat.Quantile(0.975, stat.Empirical, scores, nil)
	return s
}
