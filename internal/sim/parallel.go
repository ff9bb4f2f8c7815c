package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs many configurations on a bounded number of goroutines.
// Each run builds its own closures and buffers, so runs share nothing.
type Ensemble struct {
	sim   *Simulator
	limit int
}

// NewEnsemble returns an ensemble running at most limit simulations at
// once; limit <= 0 means GOMAXPROCS.
func NewEnsemble(s *Simulator, limit int) *Ensemble {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{sim: s, limit: limit}
}

// Run simulates every configuration and returns the results in input order.
// The first error stops further runs from starting.
func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i, cfg := range cfgs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.sim.Simulate(cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
