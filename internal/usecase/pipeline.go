package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MacroSim/internal/domain/models"
	domrepo "MacroSim/internal/domain/repository"
	"MacroSim/internal/services/align"
	"MacroSim/internal/services/features"
	"MacroSim/internal/services/normalize"
	"MacroSim/internal/services/train"
	applogger "MacroSim/pkg/logger"
)

// Pipeline is the offline batch job: ingest raw sources, normalize to
// annual series, align into the master table, build lagged samples, fit
// and persist the three target models. Everything is rebuilt in full on
// every run; nothing is updated incrementally.
type Pipeline struct {
	sources  []normalize.SourceSpec
	store    domrepo.MasterStore
	trainer  *train.Trainer
	registry domrepo.ModelStore
	metrics  domrepo.Metrics
	l        *applogger.Logger
}

// NewPipeline creates the training pipeline.
func NewPipeline(
	sources []normalize.SourceSpec,
	store domrepo.MasterStore,
	trainer *train.Trainer,
	registry domrepo.ModelStore,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *Pipeline {
	return &Pipeline{
		sources:  sources,
		store:    store,
		trainer:  trainer,
		registry: registry,
		metrics:  metrics,
		l:        l,
	}
}

// Run executes one full pipeline pass. Ingestion and alignment errors are
// fatal: no model is trained against partial or misread data. A single
// underdetermined target halts only that target; the other models still
// train and persist, and the error is reported at the end.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()

	annual, err := p.ingest(ctx)
	if err != nil {
		p.metrics.RecordError("ingest")
		return err
	}

	master, err := p.alignStage(annual)
	if err != nil {
		p.metrics.RecordError("align")
		return err
	}

	if err := p.store.Replace(ctx, master); err != nil {
		p.metrics.RecordError("store")
		return fmt.Errorf("persist master table: %w", err)
	}

	samples := features.Build(master)
	p.metrics.RecordStageRows("features", len(samples))
	p.l.Info("lag features built",
		applogger.Int("samples", len(samples)),
		applogger.Int("master_rows", len(master)),
	)

	fitted, failed := p.trainer.FitAll(ctx, samples)
	for target, m := range fitted {
		if err := p.registry.Save(ctx, m); err != nil {
			p.metrics.RecordError("persist_model")
			failed[target] = fmt.Errorf("persist model: %w", err)
			continue
		}
		p.l.Info("model trained",
			applogger.String("target", target.String()),
			applogger.Float64("alpha", m.Alpha),
			applogger.Int("samples", len(samples)),
		)
	}

	p.metrics.RecordLatency("pipeline_run", time.Since(start).Seconds())

	if len(failed) > 0 {
		errs := make([]error, 0, len(failed))
		for target, err := range failed {
			p.metrics.RecordError("train")
			p.l.Error("target training failed",
				applogger.String("target", target.String()),
				applogger.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
		}
		return errors.Join(errs...)
	}

	p.l.Info("pipeline complete",
		applogger.Int("years", len(master)),
		applogger.Int("models", len(fitted)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

// ingest reads and normalizes every configured source. An unreadable row
// aborts its source, and a missing required indicator aborts the run;
// defaults are never substituted.
func (p *Pipeline) ingest(ctx context.Context) (map[models.Indicator]models.AnnualSeries, error) {
	annual := make(map[models.Indicator]models.AnnualSeries, len(p.sources))
	for _, spec := range p.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		series, err := normalize.ReadCSV(spec)
		if err != nil {
			return nil, fmt.Errorf("ingest source %s: %w", spec.Name, err)
		}
		as, err := normalize.Normalize(series, spec.Downsample)
		if err != nil {
			return nil, fmt.Errorf("normalize source %s: %w", spec.Name, err)
		}
		annual[spec.Indicator] = as
		p.l.Info("source normalized",
			applogger.String("source", spec.Name),
			applogger.String("indicator", spec.Indicator.String()),
			applogger.Int("observations", len(series.Points)),
			applogger.Int("years", as.Len()),
		)
	}

	required := []models.Indicator{
		models.IndicatorLendingRate,
		models.IndicatorInflation,
		models.IndicatorUnemployment,
		models.IndicatorGDPLevel,
	}
	for _, ind := range required {
		if _, ok := annual[ind]; !ok {
			return nil, fmt.Errorf("no configured source feeds indicator %s", ind)
		}
	}
	return annual, nil
}

func (p *Pipeline) alignStage(annual map[models.Indicator]models.AnnualSeries) ([]models.MasterRecord, error) {
	growth := align.DeriveGrowth(annual[models.IndicatorGDPLevel])
	master, err := align.Merge(align.Inputs{
		LendingRate:  annual[models.IndicatorLendingRate],
		Inflation:    annual[models.IndicatorInflation],
		Unemployment: annual[models.IndicatorUnemployment],
		GDPGrowth:    growth,
	})
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	p.metrics.RecordStageRows("master", len(master))
	p.l.Info("master table aligned",
		applogger.Int("years", len(master)),
		applogger.Int("first_year", master[0].Year),
		applogger.Int("last_year", master[len(master)-1].Year),
	)
	return master, nil
}
