package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/signal"
	"github.com/san-kum/memsim/internal/sim"
	"github.com/san-kum/memsim/internal/window"
)

// Config is the file form of a simulation run.
type Config struct {
	Name        string             `yaml:"name,omitempty"`
	Description string             `yaml:"description,omitempty"`
	Model       string             `yaml:"model"`
	Params      map[string]float64 `yaml:"params"`
	Signal      SignalConfig       `yaml:"signal"`
	Window      WindowConfig       `yaml:"window,omitempty"`
	X0          float64            `yaml:"x0"`
	TMax        float64            `yaml:"t_max"`
	NumPoints   int                `yaml:"num_points,omitempty"`
	Solver      SolverConfig       `yaml:"solver,omitempty"`
}

type SignalConfig struct {
	Type      string  `yaml:"type"`
	Vp        float64 `yaml:"vp"`
	Vn        float64 `yaml:"vn"`
	Frequency float64 `yaml:"frequency"`
}

// WindowConfig selects a window function. An empty Type means none is
// configured.
type WindowConfig struct {
	Type string  `yaml:"type,omitempty"`
	P    float64 `yaml:"p,omitempty"`
	J    float64 `yaml:"j,omitempty"`
}

type SolverConfig struct {
	Integrator string  `yaml:"integrator,omitempty"`
	AbsTol     float64 `yaml:"abs_tol,omitempty"`
	RelTol     float64 `yaml:"rel_tol,omitempty"`
	MaxSteps   int     `yaml:"max_steps,omitempty"`
}

// DefaultConfig returns a copy of the hp_sine preset.
func DefaultConfig() *Config {
	return GetPreset("hp_sine")
}

// Load reads a yaml config. Fields absent from the file keep their
// DefaultConfig values, except Params: a file that names a model owns its
// parameter set, and ApplyDefaults fills the gaps.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Params = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyDefaults sets every parameter in infos that c does not define to its
// default value.
func (c *Config) ApplyDefaults(infos []dynamo.ParameterInfo) {
	if c.Params == nil {
		c.Params = make(map[string]float64, len(infos))
	}
	for _, info := range infos {
		if _, ok := c.Params[info.Name]; !ok {
			c.Params[info.Name] = info.Default
		}
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = dynamo.Params(c.Params).Clone()
	return &out
}

// SimConfig converts c to the simulator's run configuration.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		ModelID:     c.Model,
		ModelParams: dynamo.Params(c.Params).Clone(),
		SignalType:  signal.Type(c.Signal.Type),
		SignalParams: signal.Params{
			Vp:        c.Signal.Vp,
			Vn:        c.Signal.Vn,
			Frequency: c.Signal.Frequency,
		},
		X0:         c.X0,
		TMax:       c.TMax,
		NumPoints:  c.NumPoints,
		WindowType: window.Type(c.Window.Type),
		WindowP:    c.Window.P,
		WindowJ:    c.Window.J,
		Integrator: c.Solver.Integrator,
		AbsTol:     c.Solver.AbsTol,
		RelTol:     c.Solver.RelTol,
		MaxSteps:   c.Solver.MaxSteps,
	}
}
