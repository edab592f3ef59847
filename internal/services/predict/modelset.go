package predict

import (
	"fmt"

	"MacroSim/internal/domain/models"
)

// ModelSet is the immutable serving context: all three fitted models,
// loaded once and passed around by value. Replacing models after a
// retraining run means building a whole new ModelSet and swapping the
// reference, never mutating fields of a live one. That keeps a concurrent
// reader from ever pairing a transform from one training run with
// coefficients from another.
type ModelSet struct {
	byTarget map[models.Indicator]models.FittedModel
}

// NewModelSet builds a model set from fitted models. Every target must be
// present and structurally valid, otherwise ErrModelNotLoaded.
func NewModelSet(fitted ...models.FittedModel) (ModelSet, error) {
	byTarget := make(map[models.Indicator]models.FittedModel, len(fitted))
	for _, m := range fitted {
		if err := m.Validate(); err != nil {
			return ModelSet{}, err
		}
		byTarget[m.Target] = m
	}
	for _, target := range models.Targets() {
		if _, ok := byTarget[target]; !ok {
			return ModelSet{}, fmt.Errorf("%w: target %s", ErrModelNotLoaded, target)
		}
	}
	return ModelSet{byTarget: byTarget}, nil
}

// Model returns the fitted model for a target.
func (s ModelSet) Model(target models.Indicator) (models.FittedModel, bool) {
	m, ok := s.byTarget[target]
	return m, ok
}

// Len returns the number of loaded models.
func (s ModelSet) Len() int { return len(s.byTarget) }
