package metrics

import "math"

// HysteresisArea is the magnitude of the loop integral of I dV over the
// I-V trace, by the trapezoid rule.
type HysteresisArea struct {
	name    string
	area    float64
	prev    Sample
	samples int
}

func NewHysteresisArea() *HysteresisArea {
	return &HysteresisArea{name: "hysteresis_area"}
}

func (h *HysteresisArea) Name() string { return h.name }

func (h *HysteresisArea) Observe(s Sample) {
	if h.samples > 0 {
		h.area += 0.5 * (s.I + h.prev.I) * (s.V - h.prev.V)
	}
	h.prev = s
	h.samples++
}

func (h *HysteresisArea) Value() float64 {
	return math.Abs(h.area)
}

func (h *HysteresisArea) Reset() {
	h.area = 0
	h.prev = Sample{}
	h.samples = 0
}

// ResistanceRatio is max/min of |V/I| over samples where the drive is
// significant. Samples with |V| below a thousandth of the peak drive are
// ignored, as are zero currents.
type ResistanceRatio struct {
	name string
	v    []float64
	r    []float64
	vMax float64
}

func NewResistanceRatio() *ResistanceRatio {
	return &ResistanceRatio{name: "resistance_ratio"}
}

func (r *ResistanceRatio) Name() string { return r.name }

func (r *ResistanceRatio) Observe(s Sample) {
	av := math.Abs(s.V)
	r.vMax = math.Max(r.vMax, av)
	if s.I == 0 || av == 0 {
		return
	}
	r.v = append(r.v, av)
	r.r = append(r.r, math.Abs(s.V/s.I))
}

func (r *ResistanceRatio) Value() float64 {
	floor := 1e-3 * r.vMax
	lo, hi := math.Inf(1), 0.0
	for k, v := range r.v {
		if v < floor {
			continue
		}
		lo = math.Min(lo, r.r[k])
		hi = math.Max(hi, r.r[k])
	}
	if hi == 0 || math.IsInf(lo, 1) || lo == 0 {
		return 0
	}
	return hi / lo
}

func (r *ResistanceRatio) Reset() {
	r.v = r.v[:0]
	r.r = r.r[:0]
	r.vMax = 0
}
