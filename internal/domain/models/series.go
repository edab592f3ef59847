package models

import (
	"sort"
	"time"
)

// Observation is a single (timestamp, value) pair at a source's native frequency.
type Observation struct {
	Time  time.Time
	Value float64
}

// ObservationSeries holds the raw observations of one (source, indicator) pair.
// Immutable once ingested.
type ObservationSeries struct {
	Source    string
	Indicator Indicator
	Frequency Frequency
	Points    []Observation
}

// AnnualSeries maps calendar year to one consolidated value for a
// (source, indicator) pair. At most one value per year.
type AnnualSeries struct {
	Source    string
	Indicator Indicator
	Values    map[int]float64
}

// Value returns the value for a year, if present.
func (s AnnualSeries) Value(year int) (float64, bool) {
	v, ok := s.Values[year]
	return v, ok
}

// Years returns the covered years in ascending order.
func (s AnnualSeries) Years() []int {
	ys := make([]int, 0, len(s.Values))
	for y := range s.Values {
		ys = append(ys, y)
	}
	sort.Ints(ys)
	return ys
}

// Len returns the number of covered years.
func (s AnnualSeries) Len() int { return len(s.Values) }
