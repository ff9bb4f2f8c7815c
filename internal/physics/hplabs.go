package physics

import "github.com/san-kum/memsim/internal/dynamo"

// HPLabs implements the linear ion-drift model.
//
//	R(x)  = RON·x + ROFF·(1 - x)
//	I     = V / R(x)
//	dx/dt = (muD·RON / D²) · I · F(x, I)
type HPLabs struct{}

func NewHPLabs() *HPLabs {
	return &HPLabs{}
}

func (m *HPLabs) ID() string   { return "hp_labs" }
func (m *HPLabs) Name() string { return "HP Labs ion drift" }

func (m *HPLabs) Parameters() []dynamo.ParameterInfo {
	return hpLabsParameters
}

func (m *HPLabs) Resistance(x float64, p dynamo.Params) float64 {
	return p["RON"]*x + p["ROFF"]*(1-x)
}

func (m *HPLabs) Current(v, x float64, p dynamo.Params) float64 {
	return v / m.Resistance(x, p)
}

func (m *HPLabs) StateDerivative(t, x float64, v dynamo.Signal, p dynamo.Params, w dynamo.Window) float64 {
	i := m.Current(v(t), x, p)
	d := p["D"]
	return p["muD"] * p["RON"] / (d * d) * i * w.Eval(x, i)
}

var hpLabsParameters = []dynamo.ParameterInfo{
	{
		Name: "D", Symbol: "D", Default: 10e-9,
		Min: 1e-9, Max: 100e-9, Step: 1e-9, Unit: "m",
		Description: "thickness of the TiO2 film", Group: "geometry",
	},
	{
		Name: "RON", Symbol: "R_ON", Default: 100,
		Min: 1, Max: 100e3, Step: 1, Unit: "Ω",
		Description: "resistance when fully doped (x = 1)", Group: "resistance",
	},
	{
		Name: "ROFF", Symbol: "R_OFF", Default: 16e3,
		Min: 1e3, Max: 1e6, Step: 100, Unit: "Ω",
		Description: "resistance when fully undoped (x = 0)", Group: "resistance",
	},
	{
		Name: "muD", Symbol: "μ_D", Default: 1e-14,
		Min: 1e-16, Max: 1e-12, Step: 1e-16, Unit: "m²/(V·s)",
		Description: "average dopant mobility", Group: "transport",
	},
}
