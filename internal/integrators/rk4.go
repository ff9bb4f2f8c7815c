package integrators

// RK4 is the classic fixed-step fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Solve(f Func, t0, tEnd, x0 float64, opts Options) *Solution {
	return solveFixed(r.step, f, t0, tEnd, x0, opts)
}

func (r *RK4) step(f Func, t, x, h float64, stats *Stats) float64 {
	k1 := eval(f, t, x, stats)
	k2 := eval(f, t+h*0.5, x+h*0.5*k1, stats)
	k3 := eval(f, t+h*0.5, x+h*0.5*k2, stats)
	k4 := eval(f, t+h, x+h*k3, stats)

	return x + h/6.0*(k1+2*k2+2*k3+k4)
}
