package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MacroSim/internal/domain/models"
	domrepo "MacroSim/internal/domain/repository"
	applogger "MacroSim/pkg/logger"
)

// CHMasterStore persists the master record table in ClickHouse, for
// deployments where the aligned table is shared with other consumers.
type CHMasterStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewCHMasterStore creates ClickHouse-backed master storage.
func NewCHMasterStore(db *sql.DB, table string) *CHMasterStore {
	return &CHMasterStore{db: db, table: table}
}

// SetLogger injects a structured logger.
func (s *CHMasterStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHMasterStore) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        year UInt16,
        lending_rate Float64,
        inflation Float64,
        unemployment Float64,
        gdp_growth Float64
    ) ENGINE = ReplacingMergeTree ORDER BY year`, s.table)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("master clickhouse: init schema: %w", err)
	}
	return nil
}

// Replace truncates and rewrites the whole table in one multi-row insert.
func (s *CHMasterStore) Replace(ctx context.Context, records []models.MasterRecord) error {
	start := time.Now()
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", s.table)); err != nil {
		return fmt.Errorf("master clickhouse: truncate: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	values := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*5)
	for _, r := range records {
		values = append(values, "(?, ?, ?, ?, ?)")
		args = append(args, r.Year, r.LendingRate, r.Inflation, r.Unemployment, r.GDPGrowth)
	}
	q := fmt.Sprintf("INSERT INTO %s (year, lending_rate, inflation, unemployment, gdp_growth) VALUES %s",
		s.table, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse replace error",
				applogger.String("table", s.table),
				applogger.Int("rows", len(records)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("master clickhouse: insert: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse replace ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(records)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHMasterStore) Load(ctx context.Context) ([]models.MasterRecord, error) {
	q := fmt.Sprintf("SELECT year, lending_rate, inflation, unemployment, gdp_growth FROM %s ORDER BY year ASC", s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("master clickhouse: query: %w", err)
	}
	defer rows.Close()

	out := make([]models.MasterRecord, 0, 64)
	for rows.Next() {
		var r models.MasterRecord
		if err := rows.Scan(&r.Year, &r.LendingRate, &r.Inflation, &r.Unemployment, &r.GDPGrowth); err != nil {
			return nil, fmt.Errorf("master clickhouse: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("master clickhouse: rows: %w", err)
	}
	return out, nil
}

func (s *CHMasterStore) Latest(ctx context.Context) (models.MasterRecord, error) {
	q := fmt.Sprintf("SELECT year, lending_rate, inflation, unemployment, gdp_growth FROM %s ORDER BY year DESC LIMIT 1", s.table)
	var r models.MasterRecord
	err := s.db.QueryRowContext(ctx, q).Scan(&r.Year, &r.LendingRate, &r.Inflation, &r.Unemployment, &r.GDPGrowth)
	if err == sql.ErrNoRows {
		return models.MasterRecord{}, fmt.Errorf("master clickhouse: table %s is empty", s.table)
	}
	if err != nil {
		return models.MasterRecord{}, fmt.Errorf("master clickhouse: latest: %w", err)
	}
	return r, nil
}

func (s *CHMasterStore) Close() error {
	return nil // connection pool is owned by pkg/clickhouse
}

var _ domrepo.MasterStore = (*CHMasterStore)(nil)
