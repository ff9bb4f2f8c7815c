package dynamo

import "math"

// Params maps a parameter name to its value for a single run.
type Params map[string]float64

// Clone returns an independent copy of p.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Missing returns the names from infos that p does not define, in order.
func (p Params) Missing(infos []ParameterInfo) []string {
	var missing []string
	for _, info := range infos {
		if _, ok := p[info.Name]; !ok {
			missing = append(missing, info.Name)
		}
	}
	return missing
}

// ParameterInfo is descriptive metadata for one model parameter. The numeric
// core only reads Default; the range and step exist for consumers that need
// human-readable bounds.
type ParameterInfo struct {
	Name        string  `json:"name" yaml:"name"`
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Default     float64 `json:"default" yaml:"default"`
	Min         float64 `json:"min" yaml:"min"`
	Max         float64 `json:"max" yaml:"max"`
	Step        float64 `json:"step" yaml:"step"`
	Unit        string  `json:"unit" yaml:"unit"`
	Description string  `json:"description" yaml:"description"`
	Group       string  `json:"group" yaml:"group"`
}

// Defaults builds a Params holding the default of every entry in infos.
func Defaults(infos []ParameterInfo) Params {
	p := make(Params, len(infos))
	for _, info := range infos {
		p[info.Name] = info.Default
	}
	return p
}

// Signal is an input voltage source, t in seconds to volts.
type Signal func(t float64) float64

// Window bounds the drift rate of the state x given the instantaneous
// current i. A nil Window is treated as F = 1.
type Window func(x, i float64) float64

// Eval applies w, or returns 1 when w is nil.
func (w Window) Eval(x, i float64) float64 {
	if w == nil {
		return 1
	}
	return w(x, i)
}

// Model is a stateless memristor device model. The state variable x lives
// entirely in the caller.
type Model interface {
	ID() string
	Name() string
	Parameters() []ParameterInfo
	Current(v, x float64, p Params) float64
	StateDerivative(t, x float64, v Signal, p Params, w Window) float64
}

// Clamp limits the state variable to its physical domain [0, 1]. NaN passes
// through unchanged.
func Clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
