// Package storage persists simulation runs. Two backends share the Store
// interface: a directory per run holding metadata.json and trace.csv, and a
// single SQLite database.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rs/xid"

	"github.com/san-kum/memsim/internal/integrators"
	"github.com/san-kum/memsim/internal/sim"
)

var (
	ErrNotFound       = errors.New("storage: run not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Metadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Points     int                `json:"points"`
	Config     sim.Config         `json:"config"`
	Stats      integrators.Stats  `json:"stats"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is a stored run with its traces.
type Run struct {
	Metadata
	Result *sim.Result
}

type Store interface {
	// Save stores res under a new id and returns it. Fields of meta that
	// can be derived from cfg and res are filled in.
	Save(meta Metadata, res *sim.Result) (string, error)
	Load(id string) (*Run, error)
	// List returns run metadata, newest first.
	List() ([]Metadata, error)
	Delete(id string) error
	Close() error
}

// Open returns the store for backend rooted at dir.
func Open(backend, dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir, logger)
	case BackendSQLite:
		return NewSQLiteStore(dir, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// prepare completes meta for a new run.
func prepare(meta Metadata, res *sim.Result, logger *slog.Logger) Metadata {
	meta.ID = xid.New().String()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Timestamp = meta.Timestamp.UTC()
	if meta.Model == "" {
		meta.Model = meta.Config.ModelID
	}
	if meta.Integrator == "" {
		meta.Integrator = meta.Config.Integrator
		if meta.Integrator == "" {
			meta.Integrator = sim.DefaultIntegrator
		}
	}
	meta.Points = res.Len()
	meta.Stats = res.Stats

	// JSON has no encoding for non-finite numbers
	meta.Metrics = make(map[string]float64, len(res.Metrics))
	for k, v := range res.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			logger.Warn("dropping non-finite metric", "run", meta.ID, "metric", k)
			continue
		}
		meta.Metrics[k] = v
	}
	return meta
}

func resultFrom(meta Metadata, t, v, i, x []float64) *sim.Result {
	return &sim.Result{
		Time:    t,
		Voltage: v,
		Current: i,
		State:   x,
		Stats:   meta.Stats,
		Metrics: meta.Metrics,
	}
}
