package models

import (
	"fmt"
	"time"
)

// FittedModel is one trained (standardizer + ridge regression) pair for a
// single target indicator. The transform and the coefficients were fitted
// together and are only ever persisted, loaded, and applied together;
// there is deliberately no way to get at one half without the other.
// Immutable after training.
type FittedModel struct {
	Target    Indicator `json:"target"`
	Means     []float64 `json:"means"`
	Stds      []float64 `json:"stds"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Alpha     float64   `json:"alpha"`
	TrainedAt time.Time `json:"trained_at"`
}

// Validate checks structural consistency of a model, e.g. after loading
// a persisted artifact.
func (m FittedModel) Validate() error {
	if !m.Target.IsTarget() {
		return fmt.Errorf("fitted model: unknown target %q", m.Target)
	}
	if len(m.Means) != NumFeatures || len(m.Stds) != NumFeatures || len(m.Weights) != NumFeatures {
		return fmt.Errorf("fitted model %s: expected %d-dimensional transform and weights, got means=%d stds=%d weights=%d",
			m.Target, NumFeatures, len(m.Means), len(m.Stds), len(m.Weights))
	}
	for i, s := range m.Stds {
		if s <= 0 {
			return fmt.Errorf("fitted model %s: non-positive std at column %d", m.Target, i)
		}
	}
	return nil
}

// Predict applies the stored transform and coefficients to one feature
// vector and returns the raw, unclamped prediction.
func (m FittedModel) Predict(v FeatureVector) float64 {
	x := v.Slice()
	out := m.Intercept
	for i, xi := range x {
		out += m.Weights[i] * (xi - m.Means[i]) / m.Stds[i]
	}
	return out
}
