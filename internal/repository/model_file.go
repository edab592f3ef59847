package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"MacroSim/internal/domain/models"
	domrepo "MacroSim/internal/domain/repository"
)

// FileModelStore persists each fitted model as one JSON artifact per
// target under a directory. The transform and coefficients travel in the
// same file always; nothing ever writes or reads half a model.
type FileModelStore struct {
	dir string
}

// NewFileModelStore creates a file-backed model registry.
func NewFileModelStore(dir string) *FileModelStore {
	return &FileModelStore{dir: dir}
}

func (s *FileModelStore) path(target models.Indicator) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.model.json", target))
}

// Save writes the model atomically: temp file then rename, so a loader
// never observes a partially written artifact.
func (s *FileModelStore) Save(ctx context.Context, m models.FittedModel) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("model store: mkdir: %w", err)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("model store: marshal %s: %w", m.Target, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("model store: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("model store: write %s: %w", m.Target, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("model store: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(m.Target)); err != nil {
		return fmt.Errorf("model store: rename %s: %w", m.Target, err)
	}
	return nil
}

// Load reads one target's artifact back. The loaded model is exactly the
// transform+coefficients pair persisted at training time.
func (s *FileModelStore) Load(ctx context.Context, target models.Indicator) (models.FittedModel, error) {
	b, err := os.ReadFile(s.path(target))
	if err != nil {
		return models.FittedModel{}, fmt.Errorf("model store: read %s: %w", target, err)
	}
	var m models.FittedModel
	if err := json.Unmarshal(b, &m); err != nil {
		return models.FittedModel{}, fmt.Errorf("model store: unmarshal %s: %w", target, err)
	}
	if m.Target != target {
		return models.FittedModel{}, fmt.Errorf("model store: artifact %s tagged for %s", s.path(target), m.Target)
	}
	if err := m.Validate(); err != nil {
		return models.FittedModel{}, err
	}
	return m, nil
}

var _ domrepo.ModelStore = (*FileModelStore)(nil)
