// Package window implements boundary window functions F(x, i) that slow the
// drift of the state variable near the edges of its domain.
package window

import (
	"fmt"
	"math"

	"github.com/san-kum/memsim/internal/dynamo"
)

type Type string

const (
	None     Type = "none"
	Joglekar Type = "joglekar"
	Biolek   Type = "biolek"
	Anusudha Type = "anusudha"
)

// Types lists every supported window type.
func Types() []Type {
	return []Type{None, Joglekar, Biolek, Anusudha}
}

// New builds the window of type t with shape exponent p and scale j. Only
// Anusudha uses j.
func New(t Type, p, j float64) (dynamo.Window, error) {
	switch t {
	case None:
		return func(_, _ float64) float64 { return 1 }, nil
	case Joglekar:
		return func(x, _ float64) float64 {
			return 1 - evenPow(2*x-1, p)
		}, nil
	case Biolek:
		return func(x, i float64) float64 {
			return 1 - evenPow(x-step(-i), p)
		}, nil
	case Anusudha:
		return func(x, _ float64) float64 {
			return j * (1 - 2*math.Pow(x*x*x-x+1, p))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownWindow, t)
	}
}

// evenPow returns base^(2p) computed as (base²)^p, finite for any real p.
func evenPow(base, p float64) float64 {
	return math.Pow(base*base, p)
}

// step is the Heaviside function with H(0) = 0.
func step(v float64) float64 {
	if v > 0 {
		return 1
	}
	return 0
}
