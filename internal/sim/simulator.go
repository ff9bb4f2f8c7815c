package sim

import (
	"log/slog"
	"strings"

	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/integrators"
	"github.com/san-kum/memsim/internal/metrics"
	"github.com/san-kum/memsim/internal/signal"
	"github.com/san-kum/memsim/internal/window"
)

type Simulator struct {
	reg    *Registry
	logger *slog.Logger
}

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func New(reg *Registry, opts ...Option) *Simulator {
	s := &Simulator{
		reg:    reg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Registry() *Registry { return s.reg }

// run is a validated configuration with every closure built.
type run struct {
	cfg   Config
	model dynamo.Model
	integ integrators.Integrator
	sig   dynamo.Signal
	win   dynamo.Window
}

// Simulate integrates the model over [0, TMax] from X0 and samples voltage,
// current and state on NumPoints evenly spaced times. A configuration error
// is returned as a *dynamo.ConfigError and no result is produced.
func (s *Simulator) Simulate(cfg Config) (*Result, error) {
	r, err := s.prepare(cfg)
	if err != nil {
		return nil, err
	}

	p := r.cfg.ModelParams
	rhs := func(t, x float64) float64 {
		return r.model.StateDerivative(t, x, r.sig, p, r.win)
	}

	sol := r.integ.Solve(rhs, 0, r.cfg.TMax, r.cfg.X0, r.cfg.options())

	res := &Result{
		Time:    sol.Times,
		Voltage: make([]float64, len(sol.Times)),
		Current: make([]float64, len(sol.Times)),
		State:   sol.States,
		Stats:   sol.Stats,
	}
	for k, t := range sol.Times {
		v := r.sig(t)
		res.Voltage[k] = v
		res.Current[k] = r.model.Current(v, sol.States[k], p)
	}
	res.Metrics = metrics.Summarize(res.Time, res.Voltage, res.Current, res.State)

	s.logger.Debug("simulation complete",
		"model", r.model.ID(),
		"integrator", r.integ.Name(),
		"points", res.Len(),
		"steps", sol.Stats.Steps,
		"rejected", sol.Stats.Rejected,
		"evaluations", sol.Stats.Evaluations)
	if sol.Stats.Truncated {
		s.logger.Warn("step limit reached, holding last state",
			"model", r.model.ID(),
			"max_steps", r.cfg.MaxSteps,
			"steps", sol.Stats.Steps)
	}

	return res, nil
}

func (s *Simulator) prepare(cfg Config) (*run, error) {
	cfg = cfg.Clone().withDefaults()

	model, ok := s.reg.Model(cfg.ModelID)
	if !ok {
		return nil, &dynamo.ConfigError{Field: "model", Value: cfg.ModelID, Wrapped: dynamo.ErrUnknownModel}
	}
	integ, ok := s.reg.Integrator(cfg.Integrator)
	if !ok {
		return nil, &dynamo.ConfigError{Field: "integrator", Value: cfg.Integrator, Wrapped: dynamo.ErrUnknownIntegrator}
	}
	if !(cfg.TMax > 0) || !dynamo.IsFinite(cfg.TMax) {
		return nil, &dynamo.ConfigError{Field: "t_max", Value: cfg.TMax, Wrapped: dynamo.ErrInvalidConfig}
	}
	if cfg.NumPoints < 0 {
		return nil, &dynamo.ConfigError{Field: "num_points", Value: cfg.NumPoints, Wrapped: dynamo.ErrInvalidConfig}
	}
	if missing := cfg.ModelParams.Missing(model.Parameters()); len(missing) > 0 {
		return nil, &dynamo.ConfigError{
			Field:   "model_params",
			Value:   strings.Join(missing, ","),
			Wrapped: dynamo.ErrMissingParameter,
		}
	}

	sig, err := signal.New(cfg.SignalType, cfg.SignalParams, cfg.TMax)
	if err != nil {
		return nil, &dynamo.ConfigError{Field: "signal_type", Value: cfg.SignalType, Wrapped: dynamo.ErrUnknownSignal}
	}

	var win dynamo.Window
	if cfg.WindowType != "" {
		win, err = window.New(cfg.WindowType, cfg.WindowP, cfg.WindowJ)
		if err != nil {
			return nil, &dynamo.ConfigError{Field: "window_type", Value: cfg.WindowType, Wrapped: dynamo.ErrUnknownWindow}
		}
	}

	return &run{cfg: cfg, model: model, integ: integ, sig: sig, win: win}, nil
}

// Validate reports the configuration error Simulate would return, without
// running.
func (s *Simulator) Validate(cfg Config) error {
	_, err := s.prepare(cfg)
	return err
}
