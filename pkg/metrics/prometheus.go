package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal *prometheus.CounterVec
	clampsTotal    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastForecast   *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
	stageRows      *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrosim_forecasts_total",
				Help: "Total number of forecasts served per target",
			},
			[]string{"target"},
		),
		clampsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrosim_clamps_total",
				Help: "Forecasts clamped to a bound, per target and bound end",
			},
			[]string{"target", "bound"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrosim_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastForecast: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrosim_last_forecast",
				Help: "Last bounded forecast value per target",
			},
			[]string{"target"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macrosim_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		stageRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrosim_pipeline_stage_rows",
				Help: "Rows produced by each pipeline stage on the last run",
			},
			[]string{"stage"},
		),
	}
}

// RecordForecast records a served forecast for a target.
func (r *Recorder) RecordForecast(target string, bounded, raw float64) {
	r.forecastsTotal.WithLabelValues(target).Inc()
	r.lastForecast.WithLabelValues(target).Set(bounded)
}

// RecordClamp records a forecast clamped to the min or max bound.
func (r *Recorder) RecordClamp(target, bound string) {
	r.clampsTotal.WithLabelValues(target, bound).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordStageRows records row counts flowing out of a pipeline stage.
func (r *Recorder) RecordStageRows(stage string, rows int) {
	r.stageRows.WithLabelValues(stage).Set(float64(rows))
}
