// Package signal implements the periodic input voltage generators that drive
// a memristor simulation.
package signal

import (
	"fmt"
	"math"

	"github.com/san-kum/memsim/internal/dynamo"
)

type Type string

const (
	Sine     Type = "sine"
	Triangle Type = "triangle"
)

// Types lists every supported signal type.
func Types() []Type {
	return []Type{Sine, Triangle}
}

// Params holds the amplitude and frequency of an input signal. Vp scales the
// positive half-cycle, Vn the negative one; both are magnitudes.
type Params struct {
	Vp        float64 `json:"vp" yaml:"vp"`
	Vn        float64 `json:"vn" yaml:"vn"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
}

// New builds a signal of type t. tMax is the total run duration and is only
// read by Triangle, which flips polarity at tMax/2.
func New(t Type, p Params, tMax float64) (dynamo.Signal, error) {
	switch t {
	case Sine:
		return NewSine(p), nil
	case Triangle:
		return NewTriangle(p, tMax), nil
	default:
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownSignal, t)
	}
}

// NewSine returns V(t) = vp·sin(2πft) on the positive half-cycle and
// vn·sin(2πft) on the negative one.
func NewSine(p Params) dynamo.Signal {
	return func(t float64) float64 {
		s := math.Sin(2 * math.Pi * p.Frequency * t)
		if s >= 0 {
			return p.Vp * s
		}
		return p.Vn * s
	}
}

// NewTriangle returns a four-quadrant sweep. Each period traces the
// normalized triangle 0 -> 1 -> 0; the first half of the run is scaled by vp
// and everything after tMax/2 by -vn, so with two periods per run the trace
// goes 0 -> +vp -> 0 -> -vn -> 0.
func NewTriangle(p Params, tMax float64) dynamo.Signal {
	flip := tMax / 2
	return func(t float64) float64 {
		phase := p.Frequency * t
		phase -= math.Floor(phase)
		tri := 1 - math.Abs(2*phase-1)
		if t > flip {
			return -p.Vn * tri
		}
		return p.Vp * tri
	}
}
