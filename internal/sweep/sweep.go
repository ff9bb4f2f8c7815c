package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/memsim/internal/sim"
)

// Point is one evaluated grid point.
type Point struct {
	Values  map[string]float64 `json:"values"`
	Metrics map[string]float64 `json:"metrics"`
	Stats   map[string]int     `json:"stats,omitempty"`
}

// Apply returns a copy of base with values written to the addressed fields.
func Apply(base sim.Config, values map[string]float64) (sim.Config, error) {
	cfg := base.Clone()
	for name, v := range values {
		switch name {
		case "signal.vp":
			cfg.SignalParams.Vp = v
		case "signal.vn":
			cfg.SignalParams.Vn = v
		case "signal.frequency":
			cfg.SignalParams.Frequency = v
		case "x0":
			cfg.X0 = v
		case "window.p":
			cfg.WindowP = v
		case "window.j":
			cfg.WindowJ = v
		default:
			if _, ok := cfg.ModelParams[name]; !ok {
				return sim.Config{}, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
			}
			cfg.ModelParams[name] = v
		}
	}
	return cfg, nil
}

// Run simulates every grid point on the ensemble and returns the points in
// grid order.
func Run(ctx context.Context, ens *sim.Ensemble, base sim.Config, g *Grid) ([]Point, error) {
	values := g.Points()
	cfgs := make([]sim.Config, len(values))
	for i, v := range values {
		cfg, err := Apply(base, v)
		if err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}

	results, err := ens.Run(ctx, cfgs)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	points := make([]Point, len(results))
	for i, res := range results {
		points[i] = Point{
			Values:  values[i],
			Metrics: res.Metrics,
			Stats: map[string]int{
				"steps":    res.Stats.Steps,
				"rejected": res.Stats.Rejected,
			},
		}
	}
	return points, nil
}

// Best returns the point with the smallest (or largest) value of metric.
// Points where the metric is missing or NaN are skipped.
func Best(points []Point, metric string, minimize bool) (Point, bool) {
	var (
		best  Point
		found bool
		score = math.Inf(1)
	)
	if !minimize {
		score = math.Inf(-1)
	}

	for _, p := range points {
		v, ok := p.Metrics[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		if (minimize && v < score) || (!minimize && v > score) || !found {
			best, score, found = p, v, true
		}
	}
	return best, found
}
