package repository

import (
	"context"
	"testing"
	"time"

	"MacroSim/internal/domain/models"
)

func fittedFixture(target models.Indicator) models.FittedModel {
	return models.FittedModel{
		Target:    target,
		Means:     []float64{18.2, 24.7, 13.9, 1.8},
		Stds:      []float64{4.1, 8.9, 2.3, 2.7},
		Weights:   []float64{-0.42, 0.87, 0.11, -0.23},
		Intercept: 26.4,
		Alpha:     1.0,
		TrainedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileModelStoreRoundTrip(t *testing.T) {
	s := NewFileModelStore(t.TempDir())
	ctx := context.Background()

	want := fittedFixture(models.IndicatorInflation)
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, models.IndicatorInflation)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// The loaded model must predict bit-identically to the saved one.
	fv := models.FeatureVector{LendingRate: 22.5, InflationLag: 28.1, UnemploymentLag: 14.6, GDPGrowthLag: -0.7}
	if got.Predict(fv) != want.Predict(fv) {
		t.Fatalf("loaded model predicts %v, saved predicts %v", got.Predict(fv), want.Predict(fv))
	}
	for j := range want.Weights {
		if got.Weights[j] != want.Weights[j] || got.Means[j] != want.Means[j] || got.Stds[j] != want.Stds[j] {
			t.Fatalf("column %d differs after round trip", j)
		}
	}
}

func TestFileModelStoreMissingArtifact(t *testing.T) {
	s := NewFileModelStore(t.TempDir())
	if _, err := s.Load(context.Background(), models.IndicatorGDPGrowth); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestFileModelStoreRejectsInvalidModel(t *testing.T) {
	s := NewFileModelStore(t.TempDir())
	bad := fittedFixture(models.IndicatorInflation)
	bad.Stds = []float64{4.1, 0, 2.3, 2.7}
	if err := s.Save(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error for zero std")
	}
}

func TestFileModelStoreOverwriteIsAtomicSwap(t *testing.T) {
	s := NewFileModelStore(t.TempDir())
	ctx := context.Background()

	first := fittedFixture(models.IndicatorUnemployment)
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := fittedFixture(models.IndicatorUnemployment)
	second.Intercept = 99.9
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	got, err := s.Load(ctx, models.IndicatorUnemployment)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Intercept != 99.9 {
		t.Fatalf("expected replaced model, got intercept %v", got.Intercept)
	}
}
