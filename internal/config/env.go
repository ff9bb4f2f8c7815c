package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvDataDir  = "MEMSIM_DATA_DIR"
	EnvBackend  = "MEMSIM_BACKEND"
	EnvLogLevel = "MEMSIM_LOG_LEVEL"

	DefaultDataDir  = ".memsim"
	DefaultBackend  = "file"
	DefaultLogLevel = "info"
)

// Settings are process-wide options read from the environment.
type Settings struct {
	DataDir  string
	Backend  string
	LogLevel string
}

// LoadSettings loads the given dotenv files (".env" when none are named)
// into the environment and reads Settings from it. Missing files are
// ignored; variables already set in the environment win.
func LoadSettings(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return Settings{
		DataDir:  getenv(EnvDataDir, DefaultDataDir),
		Backend:  getenv(EnvBackend, DefaultBackend),
		LogLevel: getenv(EnvLogLevel, DefaultLogLevel),
	}, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// Level parses LogLevel, falling back to info.
func (s Settings) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
