package predict

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"MacroSim/internal/domain/models"
)

// constModel builds a fitted model whose raw prediction is always c:
// identity transform, zero weights, intercept c.
func constModel(target models.Indicator, c float64) models.FittedModel {
	return models.FittedModel{
		Target:    target,
		Means:     make([]float64, models.NumFeatures),
		Stds:      []float64{1, 1, 1, 1},
		Weights:   make([]float64, models.NumFeatures),
		Intercept: c,
		Alpha:     1.0,
		TrainedAt: time.Now().UTC(),
	}
}

func testSet(t *testing.T, inf, unemp, growth float64) ModelSet {
	t.Helper()
	set, err := NewModelSet(
		constModel(models.IndicatorInflation, inf),
		constModel(models.IndicatorUnemployment, unemp),
		constModel(models.IndicatorGDPGrowth, growth),
	)
	if err != nil {
		t.Fatalf("build model set: %v", err)
	}
	return set
}

func testLag() models.LagState {
	return models.LagState{Year: 2023, Inflation: 28.5, Unemployment: 14.1, GDPGrowth: 2.2}
}

func TestPredictClampsToBounds(t *testing.T) {
	set := testSet(t, 20.0, 999.0, -999.0)
	p, err := New(set, DefaultBounds(), testLag())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := p.Predict(25.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year != 2024 {
		t.Fatalf("expected forecast year 2024, got %d", got.Year)
	}

	inf := got.Targets[models.IndicatorInflation]
	if inf.Clamped || inf.Bounded != 20.0 || inf.Raw != 20.0 {
		t.Fatalf("in-range value must pass through: %+v", inf)
	}
	unemp := got.Targets[models.IndicatorUnemployment]
	if !unemp.Clamped || unemp.Bounded != 40.0 || unemp.Raw != 999.0 {
		t.Fatalf("expected clamp to max with raw kept: %+v", unemp)
	}
	growth := got.Targets[models.IndicatorGDPGrowth]
	if !growth.Clamped || growth.Bounded != -5.0 || growth.Raw != -999.0 {
		t.Fatalf("expected clamp to min with raw kept: %+v", growth)
	}
}

func TestPredictBoundaryValueNotClamped(t *testing.T) {
	set := testSet(t, 15.0, 40.0, 5.0) // each exactly on a bound edge
	p, err := New(set, DefaultBounds(), testLag())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := p.Predict(10.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for target, tf := range got.Targets {
		if tf.Clamped {
			t.Fatalf("target %s: boundary value must not count as clamped: %+v", target, tf)
		}
	}
}

func TestValidateLever(t *testing.T) {
	cases := []struct {
		v  float64
		ok bool
	}{
		{0, true},
		{25.5, true},
		{100, true},
		{-0.1, false},
		{100.1, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, c := range cases {
		err := ValidateLever(c.v)
		if c.ok && err != nil {
			t.Fatalf("lever %v: unexpected error %v", c.v, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidLever) {
			t.Fatalf("lever %v: expected ErrInvalidLever, got %v", c.v, err)
		}
	}
}

func TestPredictInvalidLever(t *testing.T) {
	p, err := New(testSet(t, 20, 14, 2), DefaultBounds(), testLag())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Predict(-1); !errors.Is(err, ErrInvalidLever) {
		t.Fatalf("expected ErrInvalidLever, got %v", err)
	}
}

func TestNewModelSetMissingTarget(t *testing.T) {
	_, err := NewModelSet(
		constModel(models.IndicatorInflation, 20),
		constModel(models.IndicatorUnemployment, 14),
	)
	if !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestNewRejectsBadBounds(t *testing.T) {
	bad := Bounds{
		models.IndicatorInflation:    {Min: 15, Max: 40},
		models.IndicatorUnemployment: {Min: 40, Max: 8},
		models.IndicatorGDPGrowth:    {Min: -5, Max: 5},
	}
	if _, err := New(testSet(t, 20, 14, 2), bad, testLag()); err == nil {
		t.Fatalf("expected error for inverted interval")
	}
}

func TestPredictConcurrent(t *testing.T) {
	p, err := New(testSet(t, 20, 14, 2), DefaultBounds(), testLag())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := p.Predict(float64(i))
			if err != nil {
				errs <- err
				return
			}
			if got.Targets[models.IndicatorInflation].Bounded != 20.0 {
				errs <- errors.New("unexpected forecast under concurrency")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent predict: %v", err)
	}
}
