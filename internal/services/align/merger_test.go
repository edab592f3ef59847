package align

import (
	"errors"
	"math"
	"testing"

	"MacroSim/internal/domain/models"
)

func series(ind models.Indicator, vals map[int]float64) models.AnnualSeries {
	return models.AnnualSeries{Source: string(ind), Indicator: ind, Values: vals}
}

func TestMergeInnerJoin(t *testing.T) {
	got, err := Merge(Inputs{
		LendingRate:  series(models.IndicatorLendingRate, map[int]float64{2019: 20, 2020: 21, 2021: 22}),
		Inflation:    series(models.IndicatorInflation, map[int]float64{2020: 25, 2021: 26}),
		Unemployment: series(models.IndicatorUnemployment, map[int]float64{2019: 13, 2020: 14, 2021: 15}),
		GDPGrowth:    series(models.IndicatorGDPGrowth, map[int]float64{2019: 1, 2020: 2, 2021: 3}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 joined years, got %d", len(got))
	}
	// 2019 is missing from inflation and must not appear.
	if got[0].Year != 2020 || got[1].Year != 2021 {
		t.Fatalf("unexpected years %d, %d", got[0].Year, got[1].Year)
	}
	if got[0].LendingRate != 21 || got[0].Inflation != 25 || got[0].Unemployment != 14 || got[0].GDPGrowth != 2 {
		t.Fatalf("unexpected 2020 row %+v", got[0])
	}
}

func TestMergeAscendingOrder(t *testing.T) {
	vals := map[int]float64{2021: 1, 2018: 2, 2020: 3, 2019: 4}
	got, err := Merge(Inputs{
		LendingRate:  series(models.IndicatorLendingRate, vals),
		Inflation:    series(models.IndicatorInflation, vals),
		Unemployment: series(models.IndicatorUnemployment, vals),
		GDPGrowth:    series(models.IndicatorGDPGrowth, vals),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Year <= got[i-1].Year {
			t.Fatalf("years not ascending: %d after %d", got[i].Year, got[i-1].Year)
		}
	}
}

func TestMergeDisjointYears(t *testing.T) {
	_, err := Merge(Inputs{
		LendingRate:  series(models.IndicatorLendingRate, map[int]float64{2010: 1}),
		Inflation:    series(models.IndicatorInflation, map[int]float64{2020: 1}),
		Unemployment: series(models.IndicatorUnemployment, map[int]float64{2020: 1}),
		GDPGrowth:    series(models.IndicatorGDPGrowth, map[int]float64{2020: 1}),
	})
	if !errors.Is(err, ErrEmptyIntersection) {
		t.Fatalf("expected ErrEmptyIntersection, got %v", err)
	}
}

func TestMergeEmptySeries(t *testing.T) {
	_, err := Merge(Inputs{
		LendingRate:  series(models.IndicatorLendingRate, nil),
		Inflation:    series(models.IndicatorInflation, map[int]float64{2020: 1}),
		Unemployment: series(models.IndicatorUnemployment, map[int]float64{2020: 1}),
		GDPGrowth:    series(models.IndicatorGDPGrowth, map[int]float64{2020: 1}),
	})
	if !errors.Is(err, ErrEmptyIntersection) {
		t.Fatalf("expected ErrEmptyIntersection, got %v", err)
	}
}

func TestDeriveGrowth(t *testing.T) {
	gdp := series(models.IndicatorGDPLevel, map[int]float64{2019: 100e9, 2020: 110e9, 2021: 99e9})
	got := DeriveGrowth(gdp)

	if _, ok := got.Value(2019); ok {
		t.Fatalf("first year has no predecessor, must not get a growth value")
	}
	v, ok := got.Value(2020)
	if !ok || math.Abs(v-10.0) > 1e-9 {
		t.Fatalf("expected 2020 growth 10.0, got %v ok=%v", v, ok)
	}
	v, _ = got.Value(2021)
	if math.Abs(v-(-10.0)) > 1e-9 {
		t.Fatalf("expected 2021 growth -10.0, got %v", v)
	}
	if got.Indicator != models.IndicatorGDPGrowth {
		t.Fatalf("unexpected indicator %s", got.Indicator)
	}
}

func TestDeriveGrowthSkipsNonPositiveLevels(t *testing.T) {
	gdp := series(models.IndicatorGDPLevel, map[int]float64{2019: 0, 2020: 110e9, 2021: 120e9})
	got := DeriveGrowth(gdp)
	if _, ok := got.Value(2020); ok {
		t.Fatalf("zero predecessor level must not produce a growth value")
	}
	if _, ok := got.Value(2021); !ok {
		t.Fatalf("expected 2021 growth")
	}
}
