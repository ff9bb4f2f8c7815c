package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/memsim/internal/sim"
)

type PlotKind string

const (
	// PlotIV draws current against voltage, the pinched hysteresis loop.
	PlotIV PlotKind = "iv"
	// PlotTime draws voltage, current and state against time, each
	// normalized to its own range.
	PlotTime PlotKind = "time"
)

type series struct {
	name   string
	color  string
	xs, ys []float64
}

// bounds returns the padded range of xs, ignoring non-finite values.
func bounds(xs []float64) (lo, hi float64) {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return 0, 1
	}
	lo, hi = floats.Min(finite), floats.Max(finite)
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	return lo - rng*0.1, hi + rng*0.1
}

// SVG renders res as a vector plot.
func SVG(w io.Writer, res *sim.Result, kind PlotKind, width, height int) error {
	var ss []series
	switch kind {
	case PlotIV:
		ss = []series{{name: "I(V)", color: "#00ff88", xs: res.Voltage, ys: res.Current}}
	case PlotTime:
		ss = []series{
			{name: "V", color: "#00ccff", xs: res.Time, ys: res.Voltage},
			{name: "I", color: "#ffcc00", xs: res.Time, ys: res.Current},
			{name: "x", color: "#ff00ff", xs: res.Time, ys: res.State},
		}
	default:
		return fmt.Errorf("export: unknown plot kind %q", kind)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, s := range ss {
		if len(s.xs) < 2 {
			continue
		}
		minX, maxX := bounds(s.xs)
		minY, maxY := bounds(s.ys)
		rangeX := maxX - minX
		rangeY := maxY - minY

		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, s.color)
		pen := "M"
		for k := range s.xs {
			if math.IsNaN(s.ys[k]) || math.IsInf(s.ys[k], 0) {
				pen = "M"
				continue
			}
			x := (s.xs[k] - minX) / rangeX * float64(width)
			y := float64(height) - (s.ys[k]-minY)/rangeY*float64(height)
			fmt.Fprintf(&sb, "%s%.1f,%.1f ", pen, x, y)
			pen = "L"
		}
		sb.WriteString("\"/>\n")

		fmt.Fprintf(&sb, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="14">%s</text>
`, 20+18*i, s.color, s.name)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
