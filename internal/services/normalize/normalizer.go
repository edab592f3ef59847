package normalize

import (
	"errors"
	"fmt"
	"sort"

	"MacroSim/internal/domain/models"
)

var (
	// ErrMalformedTimestamp marks a source row whose date cannot be parsed.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrAmbiguousYear marks conflicting values collapsing onto the same
	// year. A correct deterministic rule never produces this; treat it as
	// a defect in the source or the rule, not user error.
	ErrAmbiguousYear = errors.New("ambiguous year")
)

// Rule is the deterministic downsampling rule collapsing sub-annual
// observations to one value per calendar year. The rule per source is
// versioned configuration.
type Rule string

const (
	// RuleAnnualMean averages all observations within a calendar year.
	RuleAnnualMean Rule = "annual-mean"
	// RuleYearEnd takes the last observation of the calendar year.
	RuleYearEnd Rule = "year-end"
)

// Valid reports whether the rule is supported.
func (r Rule) Valid() bool { return r == RuleAnnualMean || r == RuleYearEnd }

// Normalize collapses an observation series to one value per calendar year.
// Annual sources pass through unchanged apart from duplicate checking; the
// rule only applies to sub-annual frequencies. Gaps are not an error: a
// missing year simply has no entry. The result is independent of input
// row order.
func Normalize(s models.ObservationSeries, rule Rule) (models.AnnualSeries, error) {
	out := models.AnnualSeries{
		Source:    s.Source,
		Indicator: s.Indicator,
		Values:    make(map[int]float64, len(s.Points)),
	}

	if s.Frequency == models.FreqAnnual {
		for _, p := range s.Points {
			y := p.Time.Year()
			if prev, ok := out.Values[y]; ok && prev != p.Value {
				return models.AnnualSeries{}, fmt.Errorf("%w: source %s year %d has values %v and %v",
					ErrAmbiguousYear, s.Source, y, prev, p.Value)
			}
			out.Values[y] = p.Value
		}
		return out, nil
	}

	if !rule.Valid() {
		return models.AnnualSeries{}, fmt.Errorf("source %s: unknown downsample rule %q", s.Source, rule)
	}

	// Sort a copy so the aggregation order, and therefore the float
	// arithmetic, is identical on every run regardless of input order.
	pts := make([]models.Observation, len(s.Points))
	copy(pts, s.Points)
	sort.Slice(pts, func(i, j int) bool {
		if !pts[i].Time.Equal(pts[j].Time) {
			return pts[i].Time.Before(pts[j].Time)
		}
		return pts[i].Value < pts[j].Value
	})

	switch rule {
	case RuleAnnualMean:
		sums := make(map[int]float64)
		counts := make(map[int]int)
		for _, p := range pts {
			y := p.Time.Year()
			sums[y] += p.Value
			counts[y]++
		}
		for y, sum := range sums {
			out.Values[y] = sum / float64(counts[y])
		}

	case RuleYearEnd:
		last := make(map[int]models.Observation)
		for _, p := range pts {
			y := p.Time.Year()
			prev, ok := last[y]
			if !ok || p.Time.After(prev.Time) {
				last[y] = p
				continue
			}
			if p.Time.Equal(prev.Time) && p.Value != prev.Value {
				return models.AnnualSeries{}, fmt.Errorf("%w: source %s year %d has conflicting year-end values %v and %v",
					ErrAmbiguousYear, s.Source, y, prev.Value, p.Value)
			}
		}
		for y, p := range last {
			out.Values[y] = p.Value
		}
	}

	return out, nil
}
