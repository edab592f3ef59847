package predict

import (
	"errors"
	"fmt"
	"math"

	"MacroSim/internal/domain/models"
)

var (
	// ErrModelNotLoaded means the serving context is missing a fitted
	// model; requests must be rejected, never answered with a guess.
	ErrModelNotLoaded = errors.New("model not loaded")
	// ErrInvalidLever marks a caller-supplied lever that is not a sane
	// lending rate. A caller-input error, not a model error.
	ErrInvalidLever = errors.New("invalid lever")
)

// leverMax is the upper end of the sane lending-rate input range, in
// percent. Nothing above it is a plausible policy input.
const leverMax = 100.0

// ValidateLever rejects non-finite, negative, or absurdly large rates.
func ValidateLever(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: not a finite number", ErrInvalidLever)
	}
	if v < 0 {
		return fmt.Errorf("%w: negative rate %v", ErrInvalidLever, v)
	}
	if v > leverMax {
		return fmt.Errorf("%w: rate %v above %v", ErrInvalidLever, v, leverMax)
	}
	return nil
}

// TargetForecast is one bounded forecast with its raw value kept for
// diagnostics.
type TargetForecast struct {
	Raw     float64
	Bounded float64
	Clamped bool
}

// Forecast is the result of one prediction call: a bounded scalar per
// target.
type Forecast struct {
	Lever   float64
	Year    int
	Targets map[models.Indicator]TargetForecast
}

// Predictor produces bounded single-step forecasts from an immutable
// model set, static bounds, and the latest lag state. Safe for concurrent
// use: nothing is mutated after construction.
type Predictor struct {
	set    ModelSet
	bounds Bounds
	lag    models.LagState
}

// New constructs a predictor. The model set and bounds are validated up
// front so a request can only fail on its own input.
func New(set ModelSet, bounds Bounds, lag models.LagState) (*Predictor, error) {
	if set.Len() < len(models.Targets()) {
		return nil, ErrModelNotLoaded
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &Predictor{set: set, bounds: bounds, lag: lag}, nil
}

// LagState returns the lag state forecasts are built on.
func (p *Predictor) LagState() models.LagState { return p.lag }

// Predict builds one feature vector from the lever and the lag state,
// runs each target's model, and clamps the raw output into the target's
// interval. Clamping happens here and only here, so the raw value stays
// observable.
func (p *Predictor) Predict(lever float64) (Forecast, error) {
	if err := ValidateLever(lever); err != nil {
		return Forecast{}, err
	}

	fv := p.lag.Features(lever)
	out := Forecast{
		Lever:   lever,
		Year:    p.lag.Year + 1,
		Targets: make(map[models.Indicator]TargetForecast, len(models.Targets())),
	}
	for _, target := range models.Targets() {
		m, ok := p.set.Model(target)
		if !ok {
			return Forecast{}, fmt.Errorf("%w: target %s", ErrModelNotLoaded, target)
		}
		raw := m.Predict(fv)
		bounded, clamped := p.bounds[target].Clamp(raw)
		out.Targets[target] = TargetForecast{Raw: raw, Bounded: bounded, Clamped: clamped}
	}
	return out, nil
}
