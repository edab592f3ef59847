package train

import (
	"context"
	"sync"

	"MacroSim/internal/domain/models"
)

// FitAll fits the three target models over the shared, read-only sample
// set. The targets are independent, so they fan out across goroutines.
// Errors are collected per target: one underdetermined target does not
// block the other two.
func (t *Trainer) FitAll(ctx context.Context, samples []models.Sample) (map[models.Indicator]models.FittedModel, map[models.Indicator]error) {
	fitted := make(map[models.Indicator]models.FittedModel)
	failed := make(map[models.Indicator]error)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, target := range models.Targets() {
		wg.Add(1)
		go func(target models.Indicator) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				mu.Lock()
				failed[target] = err
				mu.Unlock()
				return
			}
			m, err := t.Fit(target, samples)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[target] = err
				return
			}
			fitted[target] = m
		}(target)
	}
	wg.Wait()
	return fitted, failed
}
