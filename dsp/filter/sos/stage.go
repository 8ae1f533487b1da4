package sos

import "math"

// Stage is one second-order section with its two memory elements.
type Stage struct {
	Coefficients

	t0, t1 float64
}

// NewStage returns a Stage with the given coefficients and zero state.
func NewStage(c Coefficients) *Stage {
	return &Stage{Coefficients: c}
}

// Process filters one input sample:
//
//	y  = t0 + B0*x
//	t0 = t1 + B1*x - A1*y
//	t1 = B2*x - A2*y
func (s *Stage) Process(x float64) float64 {
	y := s.t0 + s.B0*x
	s.t0 = s.t1 + s.B1*x - s.A1*y
	s.t1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *Stage) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	t0, t1 := s.t0, s.t1

	for i, x := range buf {
		y := t0 + b0*x
		t0 = t1 + b1*x - a1*y
		t1 = b2*x - a2*y
		buf[i] = y
	}

	s.t0, s.t1 = t0, t1
}

// Reset zeroes both memory elements.
func (s *Stage) Reset() {
	s.t0 = 0
	s.t1 = 0
}

// State returns the memory elements [t0, t1].
func (s *Stage) State() [2]float64 {
	return [2]float64{s.t0, s.t1}
}

// SetState restores previously saved memory elements.
func (s *Stage) SetState(state [2]float64) {
	s.t0 = state[0]
	s.t1 = state[1]
}

// SteadyState loads the memory the stage would hold after an infinitely
// long constant input x, and returns the matching constant output. A stage
// with a pole at z = 1 has no steady state; it is reset and x is returned.
func (s *Stage) SteadyState(x float64) float64 {
	g := s.DCGain()
	if math.IsNaN(g) || math.IsInf(g, 0) {
		s.Reset()
		return x
	}

	y := g * x
	s.t1 = s.B2*x - s.A2*y
	s.t0 = s.t1 + s.B1*x - s.A1*y

	return y
}
