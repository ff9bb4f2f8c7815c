package integrators

import (
	"math"

	"github.com/san-kum/memsim/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0

	// dense output (Hairer, Nørsett & Wanner)
	d1 = -12715105075.0 / 11282082432.0
	d3 = 87487479700.0 / 32700410799.0
	d4 = -10690763975.0 / 1880347072.0
	d5 = 701980252875.0 / 199316789632.0
	d6 = -1453857185.0 / 822651844.0
	d7 = 69997945.0 / 29380423.0
)

// DormandPrince is an adaptive 5(4) Runge-Kutta integrator with FSAL reuse
// and a fourth-order continuous extension for output sampling.
type DormandPrince struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewDormandPrince() *DormandPrince {
	return &DormandPrince{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 5.0,
	}
}

func (r *DormandPrince) Name() string { return "dopri5" }

func (r *DormandPrince) Solve(f Func, t0, tEnd, x0 float64, opts Options) *Solution {
	opts = opts.withDefaults()
	sol := newSolution(t0, tEnd, opts.NumPoints)
	stats := &sol.Stats

	x := dynamo.Clamp(x0)
	span := tEnd - t0
	if !(span > 0) {
		sol.fillFrom(0, x)
		return sol
	}

	next := 0
	for next < len(sol.Times) && sol.Times[next] <= t0 {
		sol.States[next] = x
		next++
	}

	hMin := span * 1e-12
	hMax := span * 0.1

	var k [7]float64
	t := t0
	k[0] = eval(f, t, x, stats)
	h := r.initialStep(f, t, x, k[0], hMin, hMax, opts, stats)

	for next < len(sol.Times) && t < tEnd {
		if stats.Steps >= opts.MaxSteps {
			stats.Truncated = true
			break
		}
		stats.Steps++

		last := false
		if t+h >= tEnd {
			h = tEnd - t
			last = true
		}

		k[1] = eval(f, t+a2*h, x+h*b21*k[0], stats)
		k[2] = eval(f, t+a3*h, x+h*(b31*k[0]+b32*k[1]), stats)
		k[3] = eval(f, t+a4*h, x+h*(b41*k[0]+b42*k[1]+b43*k[2]), stats)
		k[4] = eval(f, t+a5*h, x+h*(b51*k[0]+b52*k[1]+b53*k[2]+b54*k[3]), stats)
		k[5] = eval(f, t+h, x+h*(b61*k[0]+b62*k[1]+b63*k[2]+b64*k[3]+b65*k[4]), stats)

		xNew := x + h*(c1*k[0]+c3*k[2]+c4*k[3]+c5*k[4]+c6*k[5])
		k[6] = eval(f, t+h, xNew, stats)

		errEst := h * (dc1*k[0] + dc3*k[2] + dc4*k[3] + dc5*k[4] + dc6*k[5] + dc7*k[6])
		scale := opts.AbsTol + opts.RelTol*math.Max(math.Abs(x), math.Abs(xNew))
		errRatio := math.Abs(errEst) / scale

		if errRatio <= 1 {
			stats.Accepted++

			tNew := t + h
			if last {
				tNew = tEnd
			}

			// interpolate toward the unclamped endpoint so the extension stays
			// consistent with the stage slopes; samples are clamped instead
			for next < len(sol.Times) && sol.Times[next] <= tNew {
				theta := (sol.Times[next] - t) / h
				sol.States[next] = dynamo.Clamp(interpolate(theta, h, x, xNew, &k))
				next++
			}

			t, x = tNew, dynamo.Clamp(xNew)
			k[0] = k[6]
		} else {
			stats.Rejected++
		}

		h = r.nextStep(h, errRatio, hMin, hMax)
	}

	sol.fillFrom(next, x)
	return sol
}

// nextStep applies the step-size controller to the error ratio of the step
// just attempted.
func (r *DormandPrince) nextStep(h, errRatio, hMin, hMax float64) float64 {
	scale := r.maxScale
	switch {
	case math.IsNaN(errRatio) || math.IsInf(errRatio, 1):
		scale = r.minScale
	case errRatio > 0:
		scale = math.Min(r.maxScale, math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.2)))
	}
	return math.Min(hMax, math.Max(hMin, h*scale))
}

// initialStep estimates a first step from f(t0, x0) and one explicit Euler
// probe.
func (r *DormandPrince) initialStep(f Func, t, x, dx, hMin, hMax float64, opts Options, stats *Stats) float64 {
	sc := opts.AbsTol + opts.RelTol*math.Abs(x)
	d0 := math.Abs(x) / sc
	d1 := math.Abs(dx) / sc

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, hMax)

	dx1 := eval(f, t+h0, x+h0*dx, stats)
	d2 := math.Abs(dx1-dx) / sc / h0

	var h1 float64
	if m := math.Max(d1, d2); m <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/m, 0.2)
	}

	h := math.Max(hMin, math.Min(hMax, math.Min(100*h0, h1)))
	if math.IsNaN(h) {
		return hMax
	}
	return h
}

// interpolate evaluates the continuous extension at theta in [0, 1] of the
// step from (x0) to (x1) of size h. It returns x0 at theta = 0 and x1 at
// theta = 1 without evaluating f.
func interpolate(theta, h, x0, x1 float64, k *[7]float64) float64 {
	dx := x1 - x0
	r3 := h*k[0] - dx
	r4 := dx - h*k[6] - r3
	r5 := h * (d1*k[0] + d3*k[2] + d4*k[3] + d5*k[4] + d6*k[5] + d7*k[6])

	theta1 := 1 - theta
	return x0 + theta*(dx+theta1*(r3+theta*(r4+theta1*r5)))
}
