package metrics

import "math"

// reversalEps is the smallest state change counted as motion.
const reversalEps = 1e-12

// StateReversals counts sign changes of the state increment.
type StateReversals struct {
	name    string
	prevX   float64
	lastDir int
	count   int
	samples int
}

func NewStateReversals() *StateReversals {
	return &StateReversals{name: "state_reversals"}
}

func (s *StateReversals) Name() string { return s.name }

func (s *StateReversals) Observe(p Sample) {
	if s.samples > 0 {
		dx := p.X - s.prevX
		dir := 0
		switch {
		case dx > reversalEps:
			dir = 1
		case dx < -reversalEps:
			dir = -1
		}
		if dir != 0 {
			if s.lastDir != 0 && dir != s.lastDir {
				s.count++
			}
			s.lastDir = dir
		}
	}
	s.prevX = p.X
	s.samples++
}

func (s *StateReversals) Value() float64 { return float64(s.count) }

func (s *StateReversals) Reset() {
	s.prevX = 0
	s.lastDir = 0
	s.count = 0
	s.samples = 0
}

// StateSwing is the range max(x) - min(x) visited by the state.
type StateSwing struct {
	name     string
	min, max float64
	samples  int
}

func NewStateSwing() *StateSwing {
	return &StateSwing{name: "state_swing"}
}

func (s *StateSwing) Name() string { return s.name }

func (s *StateSwing) Observe(p Sample) {
	if s.samples == 0 {
		s.min, s.max = p.X, p.X
	}
	s.min = math.Min(s.min, p.X)
	s.max = math.Max(s.max, p.X)
	s.samples++
}

func (s *StateSwing) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.max - s.min
}

func (s *StateSwing) Reset() {
	s.min, s.max = 0, 0
	s.samples = 0
}

type PeakCurrent struct {
	name string
	peak float64
}

func NewPeakCurrent() *PeakCurrent {
	return &PeakCurrent{name: "peak_current"}
}

func (c *PeakCurrent) Name() string { return c.name }

func (c *PeakCurrent) Observe(s Sample) {
	c.peak = math.Max(c.peak, math.Abs(s.I))
}

func (c *PeakCurrent) Value() float64 { return c.peak }

func (c *PeakCurrent) Reset() { c.peak = 0 }
