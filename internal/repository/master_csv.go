package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"MacroSim/internal/domain/models"
	domrepo "MacroSim/internal/domain/repository"
)

var masterHeader = []string{"year", "lending_rate", "inflation", "unemployment", "gdp_growth"}

// CSVMasterStore persists the master record table as a single CSV file.
// The default backend: one tabular artifact keyed by year, rewritten in
// full on every pipeline run.
type CSVMasterStore struct {
	path string
}

// NewCSVMasterStore creates a CSV-file-backed master store.
func NewCSVMasterStore(path string) *CSVMasterStore {
	return &CSVMasterStore{path: path}
}

func (s *CSVMasterStore) Init(ctx context.Context) error {
	return os.MkdirAll(filepath.Dir(s.path), 0o755)
}

// Replace writes the whole table to a temp file and renames it into
// place, so a concurrent reader only ever sees a complete table. The
// float formatting is fixed, making re-runs on identical input
// byte-identical.
func (s *CSVMasterStore) Replace(ctx context.Context, records []models.MasterRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".master-*.csv")
	if err != nil {
		return fmt.Errorf("master csv: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(masterHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("master csv: write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Year),
			formatFloat(r.LendingRate),
			formatFloat(r.Inflation),
			formatFloat(r.Unemployment),
			formatFloat(r.GDPGrowth),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("master csv: write year %d: %w", r.Year, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("master csv: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("master csv: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("master csv: rename: %w", err)
	}
	return nil
}

func (s *CSVMasterStore) Load(ctx context.Context) ([]models.MasterRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("master csv: open: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("master csv: read: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]models.MasterRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(masterHeader) {
			return nil, fmt.Errorf("master csv: row %d has %d columns, want %d", i+2, len(row), len(masterHeader))
		}
		var r models.MasterRecord
		if r.Year, err = strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("master csv: row %d year: %w", i+2, err)
		}
		vals := make([]float64, 4)
		for j := 0; j < 4; j++ {
			if vals[j], err = strconv.ParseFloat(row[j+1], 64); err != nil {
				return nil, fmt.Errorf("master csv: row %d column %s: %w", i+2, masterHeader[j+1], err)
			}
		}
		r.LendingRate, r.Inflation, r.Unemployment, r.GDPGrowth = vals[0], vals[1], vals[2], vals[3]
		out = append(out, r)
	}
	return out, nil
}

func (s *CSVMasterStore) Latest(ctx context.Context) (models.MasterRecord, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return models.MasterRecord{}, err
	}
	if len(records) == 0 {
		return models.MasterRecord{}, fmt.Errorf("master csv: table is empty")
	}
	return records[len(records)-1], nil
}

func (s *CSVMasterStore) Close() error { return nil }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var _ domrepo.MasterStore = (*CSVMasterStore)(nil)
