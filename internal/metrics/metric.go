package metrics

import "sort"

// Sample is one point of a simulated trace.
type Sample struct {
	T float64
	V float64
	I float64
	X float64
}

// Metric accumulates a scalar figure over a trace, one sample at a time.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Builtins returns fresh instances of every built-in metric.
func Builtins() []Metric {
	return []Metric{
		NewHysteresisArea(),
		NewStateReversals(),
		NewPeakCurrent(),
		NewStateSwing(),
		NewResistanceRatio(),
	}
}

// Names lists the built-in metric names in sorted order.
func Names() []string {
	var names []string
	for _, m := range Builtins() {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

// Summarize feeds the trace through fresh built-in metrics. The slices must
// have equal length.
func Summarize(t, v, i, x []float64) map[string]float64 {
	ms := Builtins()
	for k := range t {
		s := Sample{T: t[k], V: v[k], I: i[k], X: x[k]}
		for _, m := range ms {
			m.Observe(s)
		}
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
