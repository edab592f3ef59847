package normalize

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"MacroSim/internal/domain/models"
)

func obs(y, m, d int, v float64) models.Observation {
	return models.Observation{Time: time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), Value: v}
}

func TestNormalizeAnnualPassThrough(t *testing.T) {
	s := models.ObservationSeries{
		Source:    "inflation",
		Indicator: models.IndicatorInflation,
		Frequency: models.FreqAnnual,
		Points:    []models.Observation{obs(2020, 1, 1, 21.5), obs(2021, 1, 1, 23.0)},
	}
	got, err := Normalize(s, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 years, got %d", got.Len())
	}
	if v, _ := got.Value(2021); v != 23.0 {
		t.Fatalf("unexpected 2021 value %v", v)
	}
}

func TestNormalizeAnnualConflictingDuplicate(t *testing.T) {
	s := models.ObservationSeries{
		Source:    "inflation",
		Frequency: models.FreqAnnual,
		Points:    []models.Observation{obs(2020, 1, 1, 21.5), obs(2020, 6, 1, 22.0)},
	}
	_, err := Normalize(s, "")
	if !errors.Is(err, ErrAmbiguousYear) {
		t.Fatalf("expected ErrAmbiguousYear, got %v", err)
	}
}

func TestNormalizeAnnualMean(t *testing.T) {
	s := models.ObservationSeries{
		Source:    "unemployment",
		Frequency: models.FreqMonthly,
		Points:    []models.Observation{obs(2020, 1, 31, 10.0), obs(2020, 2, 29, 12.0), obs(2020, 3, 31, 14.0)},
	}
	got, err := Normalize(s, RuleAnnualMean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := got.Value(2020)
	if !ok || math.Abs(v-12.0) > 1e-12 {
		t.Fatalf("expected mean 12.0, got %v ok=%v", v, ok)
	}
}

func TestNormalizeYearEnd(t *testing.T) {
	s := models.ObservationSeries{
		Source:    "unemployment",
		Frequency: models.FreqQuarterly,
		Points:    []models.Observation{obs(2020, 12, 31, 14.0), obs(2020, 3, 31, 10.0), obs(2020, 6, 30, 12.0)},
	}
	got, err := Normalize(s, RuleYearEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := got.Value(2020); v != 14.0 {
		t.Fatalf("expected year-end 14.0, got %v", v)
	}
}

func TestNormalizeOrderIndependent(t *testing.T) {
	pts := []models.Observation{obs(2020, 1, 31, 10.1), obs(2020, 2, 29, 10.7), obs(2020, 3, 31, 11.3), obs(2021, 1, 31, 9.9)}
	fwd := models.ObservationSeries{Source: "u", Frequency: models.FreqMonthly, Points: pts}
	rev := models.ObservationSeries{Source: "u", Frequency: models.FreqMonthly,
		Points: []models.Observation{pts[3], pts[2], pts[1], pts[0]}}

	a, err := Normalize(fwd, RuleAnnualMean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Normalize(rev, RuleAnnualMean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, y := range a.Years() {
		av, _ := a.Value(y)
		bv, _ := b.Value(y)
		if av != bv {
			t.Fatalf("year %d: %v != %v", y, av, bv)
		}
	}
}

func TestNormalizeUnknownRule(t *testing.T) {
	s := models.ObservationSeries{Source: "u", Frequency: models.FreqMonthly, Points: []models.Observation{obs(2020, 1, 31, 10.0)}}
	if _, err := Normalize(s, "median"); err == nil {
		t.Fatalf("expected error for unknown rule")
	}
}

func TestReadCSVGapsAndValues(t *testing.T) {
	in := "date,rate,extra\n2020-01-31,10.5,x\n2020-02-29,,x\n2020-03-31,11.5,x\n"
	spec := SourceSpec{
		Name:            "unemployment",
		Indicator:       models.IndicatorUnemployment,
		Frequency:       models.FreqMonthly,
		TimestampColumn: "date",
		ValueColumn:     "rate",
		TimestampLayout: "2006-01-02",
	}
	got, err := readCSV(strings.NewReader(in), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Points) != 2 {
		t.Fatalf("expected 2 points (empty cell is a gap), got %d", len(got.Points))
	}
	if got.Points[1].Value != 11.5 {
		t.Fatalf("unexpected value %v", got.Points[1].Value)
	}
}

func TestReadCSVMalformedTimestampAbortsSource(t *testing.T) {
	in := "date,rate\n2020-01-31,10.5\nnot-a-date,11.0\n"
	spec := SourceSpec{
		Name:            "unemployment",
		TimestampColumn: "date",
		ValueColumn:     "rate",
		TimestampLayout: "2006-01-02",
	}
	_, err := readCSV(strings.NewReader(in), spec)
	if !errors.Is(err, ErrMalformedTimestamp) {
		t.Fatalf("expected ErrMalformedTimestamp, got %v", err)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	in := "year,value\n2020,10.5\n"
	spec := SourceSpec{Name: "x", TimestampColumn: "date", ValueColumn: "value"}
	if _, err := readCSV(strings.NewReader(in), spec); err == nil {
		t.Fatalf("expected error for missing column")
	}
}
