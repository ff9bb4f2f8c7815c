package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	// pure-Go sqlite driver, registers as "sqlite"
	_ "github.com/glebarez/go-sqlite"

	"github.com/san-kum/memsim/internal/sim"
)

const sqliteFile = "runs.sqlite3"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	preset     TEXT NOT NULL,
	model      TEXT NOT NULL,
	integrator TEXT NOT NULL,
	created    INTEGER NOT NULL,
	points     INTEGER NOT NULL,
	config     TEXT NOT NULL,
	stats      TEXT NOT NULL,
	metrics    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	idx     INTEGER NOT NULL,
	t       REAL,
	voltage REAL,
	current REAL,
	state   REAL,
	PRIMARY KEY (run_id, idx)
);`

// SQLiteStore keeps every run in one database file.
type SQLiteStore struct {
	*sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(dir string, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, sqliteFile))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{DB: db, logger: logger}, nil
}

func (s *SQLiteStore) Save(meta Metadata, res *sim.Result) (string, error) {
	meta = prepare(meta, res, s.logger)

	config, err := json.Marshal(meta.Config)
	if err != nil {
		return "", err
	}
	stats, err := json.Marshal(meta.Stats)
	if err != nil {
		return "", err
	}
	metrics, err := json.Marshal(meta.Metrics)
	if err != nil {
		return "", err
	}

	tx, err := s.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, preset, model, integrator, created, points, config, stats, metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Preset, meta.Model, meta.Integrator, meta.Timestamp.UnixNano(),
		meta.Points, string(config), string(stats), string(metrics))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO samples (run_id, idx, t, voltage, current, state) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for k := range res.Time {
		_, err := stmt.Exec(meta.ID, k, res.Time[k], res.Voltage[k], res.Current[k], res.State[k])
		if err != nil {
			return "", fmt.Errorf("insert sample %d: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row scanner) (*Metadata, error) {
	var (
		meta                   Metadata
		created                int64
		config, stats, metrics string
	)
	err := row.Scan(&meta.ID, &meta.Preset, &meta.Model, &meta.Integrator,
		&created, &meta.Points, &config, &stats, &metrics)
	if err != nil {
		return nil, err
	}

	meta.Timestamp = time.Unix(0, created).UTC()
	if err := json.Unmarshal([]byte(config), &meta.Config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := json.Unmarshal([]byte(stats), &meta.Stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &meta.Metrics); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	return &meta, nil
}

const selectRuns = `SELECT id, preset, model, integrator, created, points, config, stats, metrics FROM runs`

func (s *SQLiteStore) Load(id string) (*Run, error) {
	meta, err := scanMetadata(s.QueryRow(selectRuns+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	rows, err := s.Query(
		`SELECT t, voltage, current, state FROM samples WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := make([]float64, 0, meta.Points)
	v := make([]float64, 0, meta.Points)
	i := make([]float64, 0, meta.Points)
	x := make([]float64, 0, meta.Points)
	for rows.Next() {
		var tt, vv, ii, xx sql.NullFloat64
		if err := rows.Scan(&tt, &vv, &ii, &xx); err != nil {
			return nil, err
		}
		t = append(t, nullable(tt))
		v = append(v, nullable(vv))
		i = append(i, nullable(ii))
		x = append(x, nullable(xx))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Run{Metadata: *meta, Result: resultFrom(*meta, t, v, i, x)}, nil
}

// nullable maps SQL NULL, which sqlite stores for NaN, back to NaN.
func nullable(f sql.NullFloat64) float64 {
	if !f.Valid {
		return math.NaN()
	}
	return f.Float64
}

func (s *SQLiteStore) List() ([]Metadata, error) {
	rows, err := s.Query(selectRuns + ` ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Metadata, 0)
	for rows.Next() {
		meta, err := scanMetadata(rows)
		if err != nil {
			s.logger.Warn("skipping corrupt run row", "err", err)
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Delete(id string) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM samples WHERE run_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
