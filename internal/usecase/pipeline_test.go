package usecase

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"MacroSim/internal/domain/models"
	"MacroSim/internal/repository"
	"MacroSim/internal/services/normalize"
	"MacroSim/internal/services/predict"
	"MacroSim/internal/services/train"
	applogger "MacroSim/pkg/logger"
)

func writeSource(t *testing.T, dir, name string, years []int, value func(int) float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("year,value\n")
	for _, y := range years {
		fmt.Fprintf(&b, "%d,%g\n", y, value(y))
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func annualSpec(name, path string, ind models.Indicator) normalize.SourceSpec {
	return normalize.SourceSpec{
		Name:            name,
		Path:            path,
		Indicator:       ind,
		Frequency:       models.FreqAnnual,
		TimestampColumn: "year",
		ValueColumn:     "value",
		TimestampLayout: "2006",
	}
}

func TestPipelineRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	years := make([]int, 0, 20)
	for y := 1995; y < 2015; y++ {
		years = append(years, y)
	}

	specs := []normalize.SourceSpec{
		annualSpec("lending_rate", writeSource(t, dir, "rate.csv", years, func(y int) float64 {
			return 15 + 5*math.Sin(float64(y))
		}), models.IndicatorLendingRate),
		annualSpec("inflation", writeSource(t, dir, "inflation.csv", years, func(y int) float64 {
			return 20 + 6*math.Cos(float64(y)*0.7)
		}), models.IndicatorInflation),
		annualSpec("unemployment", writeSource(t, dir, "unemployment.csv", years, func(y int) float64 {
			return 12 + 3*math.Sin(float64(y)*1.3)
		}), models.IndicatorUnemployment),
		annualSpec("gdp", writeSource(t, dir, "gdp.csv", years, func(y int) float64 {
			return 100e9 * math.Pow(1.03, float64(y-1995))
		}), models.IndicatorGDPLevel),
	}

	masterPath := filepath.Join(dir, "master.csv")
	store := repository.NewCSVMasterStore(masterPath)
	registry := repository.NewFileModelStore(filepath.Join(dir, "models"))
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	p := NewPipeline(specs, store, train.New(1.0), registry, nopMetrics{}, l)
	ctx := context.Background()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("pipeline run: %v", err)
	}

	// The master table loses the first year to growth derivation.
	master, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load master: %v", err)
	}
	if len(master) != len(years)-1 {
		t.Fatalf("expected %d master rows, got %d", len(years)-1, len(master))
	}
	if master[0].Year != 1996 {
		t.Fatalf("expected first master year 1996, got %d", master[0].Year)
	}

	// Every target artifact must load into a ready serving context.
	fitted := make([]models.FittedModel, 0, 3)
	for _, target := range models.Targets() {
		m, err := registry.Load(ctx, target)
		if err != nil {
			t.Fatalf("load model %s: %v", target, err)
		}
		fitted = append(fitted, m)
	}
	set, err := predict.NewModelSet(fitted...)
	if err != nil {
		t.Fatalf("model set: %v", err)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	pred, err := predict.New(set, predict.DefaultBounds(), models.LagStateOf(latest))
	if err != nil {
		t.Fatalf("predictor: %v", err)
	}
	got, err := pred.Predict(18.0)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got.Year != 2015 {
		t.Fatalf("expected forecast year 2015, got %d", got.Year)
	}
	for target, tf := range got.Targets {
		if math.IsNaN(tf.Bounded) || math.IsInf(tf.Bounded, 0) {
			t.Fatalf("target %s: non-finite forecast %v", target, tf.Bounded)
		}
	}
}

func TestPipelineRunMissingRequiredSource(t *testing.T) {
	dir := t.TempDir()
	years := []int{2000, 2001, 2002}
	specs := []normalize.SourceSpec{
		annualSpec("inflation", writeSource(t, dir, "inflation.csv", years, func(int) float64 { return 20 }), models.IndicatorInflation),
	}

	store := repository.NewCSVMasterStore(filepath.Join(dir, "master.csv"))
	registry := repository.NewFileModelStore(filepath.Join(dir, "models"))
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	p := NewPipeline(specs, store, train.New(1.0), registry, nopMetrics{}, l)
	if err := p.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing sources")
	}
}
