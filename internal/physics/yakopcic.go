package physics

import (
	"math"

	"github.com/san-kum/memsim/internal/dynamo"
)

// Yakopcic implements the generalized memristor model.
//
//	I     = a·x·sinh(b·V),  a = a1 for V ≥ 0, a2 otherwise
//	dx/dt = η · g(V) · f(V, x)
//
// The window argument of StateDerivative is ignored; f(V, x) plays that role.
type Yakopcic struct{}

func NewYakopcic() *Yakopcic {
	return &Yakopcic{}
}

func (m *Yakopcic) ID() string   { return "yakopcic" }
func (m *Yakopcic) Name() string { return "Yakopcic generalized" }

func (m *Yakopcic) Parameters() []dynamo.ParameterInfo {
	return yakopcicParameters
}

func (m *Yakopcic) Current(v, x float64, p dynamo.Params) float64 {
	a := p["a1"]
	if v < 0 {
		a = p["a2"]
	}
	return a * x * math.Sinh(p["b"]*v)
}

func (m *Yakopcic) StateDerivative(t, x float64, v dynamo.Signal, p dynamo.Params, _ dynamo.Window) float64 {
	vt := v(t)
	eta := p["eta"]
	return eta * m.threshold(vt, p) * m.boundary(vt, x, eta, p)
}

// threshold is g(V). Subtracting the exponential at the threshold keeps g
// continuous (zero) at ±V thresholds.
func (m *Yakopcic) threshold(v float64, p dynamo.Params) float64 {
	vp, vn := p["Vp"], p["Vn"]
	switch {
	case v > vp:
		return p["Ap"] * (math.Exp(v) - math.Exp(vp))
	case v < -vn:
		return -p["An"] * (math.Exp(-v) - math.Exp(vn))
	default:
		return 0
	}
}

// boundary is f(V, x), chosen by the direction the state is moving.
func (m *Yakopcic) boundary(v, x, eta float64, p dynamo.Params) float64 {
	if eta*v >= 0 {
		xp := p["xp"]
		if x < xp {
			return 1
		}
		wp := (xp-x)/(1-xp) + 1
		return math.Exp(-p["alphap"]*(x-xp)) * wp
	}

	xn := p["xn"]
	if x > 1-xn {
		return 1
	}
	wn := x / (1 - xn)
	return math.Exp(p["alphan"]*(x+xn-1)) * wn
}

var yakopcicParameters = []dynamo.ParameterInfo{
	{
		Name: "a1", Symbol: "a₁", Default: 0.17,
		Min: 0, Max: 5, Step: 0.01, Unit: "A",
		Description: "current amplitude for positive voltage", Group: "current",
	},
	{
		Name: "a2", Symbol: "a₂", Default: 0.17,
		Min: 0, Max: 5, Step: 0.01, Unit: "A",
		Description: "current amplitude for negative voltage", Group: "current",
	},
	{
		Name: "b", Symbol: "b", Default: 0.05,
		Min: 0, Max: 10, Step: 0.01, Unit: "1/V",
		Description: "curvature of the sinh current law", Group: "current",
	},
	{
		Name: "Ap", Symbol: "A_p", Default: 4000,
		Min: 0, Max: 1e7, Step: 10, Unit: "1/s",
		Description: "state change rate above the positive threshold", Group: "threshold",
	},
	{
		Name: "An", Symbol: "A_n", Default: 4000,
		Min: 0, Max: 1e7, Step: 10, Unit: "1/s",
		Description: "state change rate below the negative threshold", Group: "threshold",
	},
	{
		Name: "Vp", Symbol: "V_p", Default: 0.16,
		Min: 0, Max: 5, Step: 0.01, Unit: "V",
		Description: "positive switching threshold", Group: "threshold",
	},
	{
		Name: "Vn", Symbol: "V_n", Default: 0.15,
		Min: 0, Max: 5, Step: 0.01, Unit: "V",
		Description: "negative switching threshold magnitude", Group: "threshold",
	},
	{
		Name: "xp", Symbol: "x_p", Default: 0.3,
		Min: 0, Max: 0.99, Step: 0.01, Unit: "",
		Description: "state where positive motion starts to decay", Group: "boundary",
	},
	{
		Name: "xn", Symbol: "x_n", Default: 0.5,
		Min: 0, Max: 0.99, Step: 0.01, Unit: "",
		Description: "distance from 1 where negative motion starts to decay", Group: "boundary",
	},
	{
		Name: "alphap", Symbol: "α_p", Default: 1,
		Min: 0, Max: 50, Step: 0.1, Unit: "",
		Description: "decay rate of positive motion near the boundary", Group: "boundary",
	},
	{
		Name: "alphan", Symbol: "α_n", Default: 5,
		Min: 0, Max: 50, Step: 0.1, Unit: "",
		Description: "decay rate of negative motion near the boundary", Group: "boundary",
	},
	{
		Name: "eta", Symbol: "η", Default: 1,
		Min: -1, Max: 1, Step: 2, Unit: "",
		Description: "direction of state motion relative to voltage polarity", Group: "boundary",
	},
}
