package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/san-kum/memsim/internal/export"
	"github.com/san-kum/memsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

// FileStore keeps each run in its own directory under baseDir.
type FileStore struct {
	baseDir string
	logger  *slog.Logger
}

func NewFileStore(baseDir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{baseDir: baseDir, logger: logger}, nil
}

func (s *FileStore) Save(meta Metadata, res *sim.Result) (string, error) {
	meta = prepare(meta, res, s.logger)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	if err := writeTrace(filepath.Join(runDir, traceFile), res); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeTrace(path string, res *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.CSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *FileStore) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.readMetadata(entry.Name())
		if err != nil {
			s.logger.Warn("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *FileStore) readMetadata(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", id, err)
	}
	return &meta, nil
}

func (s *FileStore) Load(id string) (*Run, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	meta, err := s.readMetadata(id)
	if err != nil {
		return nil, err
	}

	trace, err := readTrace(filepath.Join(s.baseDir, id, traceFile))
	if err != nil {
		return nil, fmt.Errorf("read trace %s: %w", id, err)
	}

	return &Run{Metadata: *meta, Result: resultFrom(*meta, trace.Time, trace.Voltage, trace.Current, trace.State)}, nil
}

func readTrace(path string) (*sim.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return export.ReadCSV(f)
}

func (s *FileStore) Delete(id string) error {
	if !validID(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	dir := filepath.Join(s.baseDir, id)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return os.RemoveAll(dir)
}

func (s *FileStore) Close() error { return nil }

// validID rejects ids that would escape the base directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && filepath.Base(id) == id
}
