// Package sweep runs a simulation over a cartesian grid of parameter values.
package sweep

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownAxis = errors.New("sweep: unknown axis")
	ErrBadAxis     = errors.New("sweep: malformed axis")
)

// Axis is one swept parameter. Name is "signal.vp", "signal.vn",
// "signal.frequency", "x0", "window.p", "window.j" or a model parameter name.
type Axis struct {
	Name   string
	Values []float64
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// ParseAxis parses "name=lo:hi:n" or "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok || name == "" || spec == "" {
		return Axis{}, fmt.Errorf("%w: %q", ErrBadAxis, s)
	}

	if parts := strings.Split(spec, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil || n < 1 {
			return Axis{}, fmt.Errorf("%w: %q", ErrBadAxis, s)
		}
		return Axis{Name: name, Values: Linspace(lo, hi, n)}, nil
	}

	var values []float64
	for _, f := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("%w: %q: %v", ErrBadAxis, s, err)
		}
		values = append(values, v)
	}
	return Axis{Name: name, Values: values}, nil
}

type Grid struct {
	axes []Axis
}

func NewGrid(axes ...Axis) *Grid {
	return &Grid{axes: axes}
}

func (g *Grid) Axes() []Axis { return g.axes }

// Size is the number of grid points.
func (g *Grid) Size() int {
	if len(g.axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// Points enumerates the grid with the last axis varying fastest.
func (g *Grid) Points() []map[string]float64 {
	if g.Size() == 0 {
		return nil
	}
	out := make([]map[string]float64, 0, g.Size())
	g.collect(0, make(map[string]float64), &out)
	return out
}

func (g *Grid) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.axes) {
		*out = append(*out, current)
		return
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[axis.Name] = val

		g.collect(depth+1, next, out)
	}
}
