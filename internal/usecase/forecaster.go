package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"MacroSim/internal/domain/models"
	domrepo "MacroSim/internal/domain/repository"
	"MacroSim/internal/services/predict"
	"MacroSim/pkg/cache"
	applogger "MacroSim/pkg/logger"
)

// Forecaster is the serving-path use case: validate the lever, run the
// bounded predictor, shape the response, cache it. The predictor it wraps
// is immutable, so concurrent requests need no locking.
type Forecaster struct {
	pred    *predict.Predictor
	cache   cache.BytesCache
	ttl     time.Duration
	metrics domrepo.Metrics
	l       *applogger.Logger
}

// NewForecaster creates the serving use case. Cache may be nil to disable
// response caching.
func NewForecaster(pred *predict.Predictor, c cache.BytesCache, ttl time.Duration, metrics domrepo.Metrics, l *applogger.Logger) *Forecaster {
	return &Forecaster{pred: pred, cache: c, ttl: ttl, metrics: metrics, l: l}
}

// LagState exposes the lag state forecasts are built on.
func (f *Forecaster) LagState() models.LagState { return f.pred.LagState() }

// Forecast serves one bounded forecast for a lever value.
func (f *Forecaster) Forecast(ctx context.Context, lever float64) (models.ForecastResponse, error) {
	start := time.Now()

	key := cacheKey(lever)
	if f.cache != nil {
		if b, ok, err := f.cache.GetBytes(key); err == nil && ok {
			var resp models.ForecastResponse
			if err := json.Unmarshal(b, &resp); err == nil {
				f.metrics.RecordLatency("forecast_cached", time.Since(start).Seconds())
				return resp, nil
			}
		}
	}

	fc, err := f.pred.Predict(lever)
	if err != nil {
		f.metrics.RecordError("predict")
		return models.ForecastResponse{}, err
	}

	resp := models.ForecastResponse{
		LendingRate:  fc.Lever,
		ForecastYear: fc.Year,
	}
	for target, tf := range fc.Targets {
		out := models.TargetForecast{Value: tf.Bounded, Raw: tf.Raw, Clamped: tf.Clamped}
		switch target {
		case models.IndicatorInflation:
			resp.Inflation = out
		case models.IndicatorGDPGrowth:
			resp.GDPGrowth = out
		case models.IndicatorUnemployment:
			resp.Unemployment = out
		}

		f.metrics.RecordForecast(target.String(), tf.Bounded, tf.Raw)
		if tf.Clamped {
			bound := "min"
			if tf.Bounded < tf.Raw {
				bound = "max"
			}
			f.metrics.RecordClamp(target.String(), bound)
			f.l.Warn("forecast clamped",
				applogger.String("target", target.String()),
				applogger.Float64("raw", tf.Raw),
				applogger.Float64("bounded", tf.Bounded),
			)
		}
	}

	if f.cache != nil {
		if b, err := json.Marshal(resp); err == nil {
			if err := f.cache.SetBytes(key, b, f.ttl); err != nil {
				f.l.Warn("forecast cache write failed", applogger.Error(err))
			}
		}
	}

	f.metrics.RecordLatency("forecast", time.Since(start).Seconds())
	return resp, nil
}

func cacheKey(lever float64) string {
	return fmt.Sprintf("forecast:%s", strconv.FormatFloat(lever, 'g', -1, 64))
}
