package sim

import (
	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/integrators"
	"github.com/san-kum/memsim/internal/signal"
	"github.com/san-kum/memsim/internal/window"
)

const (
	DefaultNumPoints  = 10000
	DefaultIntegrator = "dopri5"
)

// Config describes one simulation run. Zero values of the optional fields
// select their defaults.
type Config struct {
	ModelID      string        `json:"model_id"`
	ModelParams  dynamo.Params `json:"model_params"`
	SignalType   signal.Type   `json:"signal_type"`
	SignalParams signal.Params `json:"signal_params"`
	X0           float64       `json:"x0"`
	TMax         float64       `json:"t_max"`
	NumPoints    int           `json:"num_points,omitempty"`

	// WindowType is empty when no window is configured.
	WindowType window.Type `json:"window_type,omitempty"`
	WindowP    float64     `json:"window_p,omitempty"`
	WindowJ    float64     `json:"window_j,omitempty"`

	Integrator string  `json:"integrator,omitempty"`
	AbsTol     float64 `json:"abs_tol,omitempty"`
	RelTol     float64 `json:"rel_tol,omitempty"`
	MaxSteps   int     `json:"max_steps,omitempty"`
}

func (c Config) withDefaults() Config {
	if c.NumPoints == 0 {
		c.NumPoints = DefaultNumPoints
	}
	if c.WindowP == 0 {
		c.WindowP = 1
	}
	if c.WindowJ == 0 {
		c.WindowJ = 1
	}
	if c.Integrator == "" {
		c.Integrator = DefaultIntegrator
	}
	return c
}

// Clone returns a copy that shares no parameter map with c.
func (c Config) Clone() Config {
	c.ModelParams = c.ModelParams.Clone()
	return c
}

func (c Config) options() integrators.Options {
	return integrators.Options{
		NumPoints: c.NumPoints,
		AbsTol:    c.AbsTol,
		RelTol:    c.RelTol,
		MaxSteps:  c.MaxSteps,
	}
}

// Result holds four equal-length traces sampled on the output grid.
type Result struct {
	Time    []float64          `json:"time"`
	Voltage []float64          `json:"voltage"`
	Current []float64          `json:"current"`
	State   []float64          `json:"state"`
	Stats   integrators.Stats  `json:"stats"`
	Metrics map[string]float64 `json:"metrics"`
}

// Len returns the number of samples.
func (r *Result) Len() int { return len(r.Time) }
