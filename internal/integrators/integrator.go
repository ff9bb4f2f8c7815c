package integrators

import "github.com/san-kum/memsim/internal/dynamo"

// Func is the right-hand side of the scalar state equation dx/dt = f(t, x).
type Func func(t, x float64) float64

// Integrator advances a scalar state from t0 to tEnd and samples it on an
// evenly spaced output grid.
type Integrator interface {
	Name() string
	Solve(f Func, t0, tEnd, x0 float64, opts Options) *Solution
}

type Options struct {
	NumPoints int
	AbsTol    float64
	RelTol    float64
	MaxSteps  int
	// Substeps is the number of fixed steps per output interval; ignored by
	// adaptive integrators.
	Substeps int
}

func DefaultOptions() Options {
	return Options{
		NumPoints: 2000,
		AbsTol:    1e-10,
		RelTol:    1e-8,
		MaxSteps:  500000,
		Substeps:  10,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.NumPoints <= 0 {
		o.NumPoints = d.NumPoints
	}
	if o.AbsTol <= 0 {
		o.AbsTol = d.AbsTol
	}
	if o.RelTol <= 0 {
		o.RelTol = d.RelTol
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = d.MaxSteps
	}
	if o.Substeps <= 0 {
		o.Substeps = d.Substeps
	}
	return o
}

type Stats struct {
	Steps       int  `json:"steps"`
	Accepted    int  `json:"accepted"`
	Rejected    int  `json:"rejected"`
	Evaluations int  `json:"evaluations"`
	Truncated   bool `json:"truncated"`
}

// Solution holds the sampled trajectory. Times is evenly spaced with the
// last entry exactly tEnd; every state lies in [0, 1] unless it is NaN.
type Solution struct {
	Times  []float64
	States []float64
	Stats  Stats
}

func newSolution(t0, tEnd float64, n int) *Solution {
	s := &Solution{
		Times:  make([]float64, n),
		States: make([]float64, n),
	}
	if n == 1 {
		s.Times[0] = tEnd
		return s
	}
	dt := (tEnd - t0) / float64(n-1)
	for i := range s.Times {
		s.Times[i] = t0 + float64(i)*dt
	}
	s.Times[n-1] = tEnd
	return s
}

// fillFrom holds x in every output slot from i on and returns len(States).
func (s *Solution) fillFrom(i int, x float64) int {
	for ; i < len(s.States); i++ {
		s.States[i] = x
	}
	return i
}

// eval clamps the state before handing it to f.
func eval(f Func, t, x float64, stats *Stats) float64 {
	stats.Evaluations++
	return f(t, dynamo.Clamp(x))
}

// stepFunc advances x by one fixed step of size h.
type stepFunc func(f Func, t, x, h float64, stats *Stats) float64

// solveFixed integrates with opts.Substeps uniform steps between
// consecutive output times.
func solveFixed(step stepFunc, f Func, t0, tEnd, x0 float64, opts Options) *Solution {
	opts = opts.withDefaults()
	sol := newSolution(t0, tEnd, opts.NumPoints)
	x := dynamo.Clamp(x0)
	t := t0

	next := 0
	for next < len(sol.Times) && sol.Times[next] <= t0 {
		sol.States[next] = x
		next++
	}

	for ; next < len(sol.Times); next++ {
		target := sol.Times[next]
		h := (target - t) / float64(opts.Substeps)
		for i := 0; i < opts.Substeps; i++ {
			if sol.Stats.Steps >= opts.MaxSteps {
				sol.Stats.Truncated = true
				sol.fillFrom(next, x)
				return sol
			}
			x = dynamo.Clamp(step(f, t, x, h, &sol.Stats))
			t += h
			sol.Stats.Steps++
			sol.Stats.Accepted++
		}
		t = target
		sol.States[next] = x
	}

	return sol
}
