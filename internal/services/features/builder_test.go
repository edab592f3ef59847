package features

import (
	"testing"

	"MacroSim/internal/domain/models"
)

func row(year int, rate, inf, unemp, growth float64) models.MasterRecord {
	return models.MasterRecord{Year: year, LendingRate: rate, Inflation: inf, Unemployment: unemp, GDPGrowth: growth}
}

func TestBuildLagAlignment(t *testing.T) {
	master := []models.MasterRecord{
		row(2019, 20, 25, 13, 1.0),
		row(2020, 21, 26, 14, 2.0),
		row(2021, 22, 27, 15, 3.0),
	}
	got := Build(master)
	if len(got) != 3-1 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}

	s := got[0]
	if s.Year != 2020 {
		t.Fatalf("unexpected sample year %d", s.Year)
	}
	// Lever is current-year, indicators are strictly previous-year.
	if s.Features.LendingRate != 21 {
		t.Fatalf("lever must be year-t value, got %v", s.Features.LendingRate)
	}
	if s.Features.InflationLag != 25 || s.Features.UnemploymentLag != 13 || s.Features.GDPGrowthLag != 1.0 {
		t.Fatalf("lag features must come from year t-1, got %+v", s.Features)
	}
	if s.Targets.Inflation != 26 || s.Targets.Unemployment != 14 || s.Targets.GDPGrowth != 2.0 {
		t.Fatalf("targets must come from year t, got %+v", s.Targets)
	}
}

func TestBuildSkipsGapYears(t *testing.T) {
	master := []models.MasterRecord{
		row(2018, 20, 25, 13, 1.0),
		row(2019, 21, 26, 14, 2.0),
		row(2021, 22, 27, 15, 3.0), // 2020 missing
	}
	got := Build(master)
	if len(got) != 1 {
		t.Fatalf("expected 1 sample across the gap, got %d", len(got))
	}
	if got[0].Year != 2019 {
		t.Fatalf("unexpected sample year %d", got[0].Year)
	}
}

func TestBuildTooShort(t *testing.T) {
	if got := Build([]models.MasterRecord{row(2020, 1, 2, 3, 4)}); got != nil {
		t.Fatalf("expected nil for single-row table, got %v", got)
	}
}

func TestLatestLagState(t *testing.T) {
	master := []models.MasterRecord{
		row(2020, 21, 26, 14, 2.0),
		row(2021, 22, 27, 15, 3.0),
	}
	ls, ok := LatestLagState(master)
	if !ok {
		t.Fatalf("expected lag state")
	}
	if ls.Year != 2021 || ls.Inflation != 27 || ls.Unemployment != 15 || ls.GDPGrowth != 3.0 {
		t.Fatalf("unexpected lag state %+v", ls)
	}

	if _, ok := LatestLagState(nil); ok {
		t.Fatalf("expected no lag state for empty table")
	}
}
