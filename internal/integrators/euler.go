package integrators

// Euler is the explicit first-order method, kept as a baseline for
// comparing accuracy against the adaptive integrator.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Solve(f Func, t0, tEnd, x0 float64, opts Options) *Solution {
	return solveFixed(e.step, f, t0, tEnd, x0, opts)
}

func (e *Euler) step(f Func, t, x, h float64, stats *Stats) float64 {
	return x + h*eval(f, t, x, stats)
}
