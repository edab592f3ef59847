package repository

import (
	"context"

	"MacroSim/internal/domain/models"
)

// MasterStore persists the aligned master record table. The table is always
// replaced in full; there is no incremental update.
type MasterStore interface {
	Init(ctx context.Context) error
	Replace(ctx context.Context, records []models.MasterRecord) error
	Load(ctx context.Context) ([]models.MasterRecord, error)
	Latest(ctx context.Context) (models.MasterRecord, error)
	Close() error
}

// ModelStore persists fitted models as atomic artifacts keyed by target.
// Save overwrites any prior artifact for the same target wholesale.
type ModelStore interface {
	Save(ctx context.Context, m models.FittedModel) error
	Load(ctx context.Context, target models.Indicator) (models.FittedModel, error)
}

// Metrics records operational measurements.
type Metrics interface {
	RecordForecast(target string, bounded, raw float64)
	RecordClamp(target, bound string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordStageRows(stage string, rows int)
}
