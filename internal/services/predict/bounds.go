package predict

import (
	"fmt"

	"MacroSim/internal/domain/models"
)

// BoundSpec is the closed interval a raw forecast is clamped into. The
// bounds encode domain plausibility, not statistics; they are static
// configuration and are versioned alongside the model artifacts.
type BoundSpec struct {
	Min float64
	Max float64
}

// Clamp restricts v to the interval and reports whether it was moved.
// Clamping is a deliberate, silent transform of implausible output; it is
// not an error condition.
func (b BoundSpec) Clamp(v float64) (float64, bool) {
	if v < b.Min {
		return b.Min, true
	}
	if v > b.Max {
		return b.Max, true
	}
	return v, false
}

// Bounds maps each target indicator to its interval.
type Bounds map[models.Indicator]BoundSpec

// DefaultBounds returns the built-in plausibility intervals.
func DefaultBounds() Bounds {
	return Bounds{
		models.IndicatorUnemployment: {Min: 8.0, Max: 40.0},
		models.IndicatorInflation:    {Min: 15.0, Max: 40.0},
		models.IndicatorGDPGrowth:    {Min: -5.0, Max: 5.0},
	}
}

// Validate checks that every target has a well-formed interval.
func (b Bounds) Validate() error {
	for _, target := range models.Targets() {
		spec, ok := b[target]
		if !ok {
			return fmt.Errorf("bounds: missing interval for target %s", target)
		}
		if spec.Min >= spec.Max {
			return fmt.Errorf("bounds: target %s has min %v >= max %v", target, spec.Min, spec.Max)
		}
	}
	return nil
}
