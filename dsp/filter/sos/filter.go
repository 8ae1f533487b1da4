package sos

import "fmt"

// Filter is an ordered cascade of stages. The zero value is an empty
// filter that passes samples through unchanged.
type Filter struct {
	stages []Stage
}

// New returns a cascade with one stage per coefficient set.
func New(coeffs ...Coefficients) *Filter {
	f := &Filter{stages: make([]Stage, len(coeffs))}
	for i := range coeffs {
		f.stages[i].Coefficients = coeffs[i]
	}
	return f
}

// FromTuples builds a cascade from {b0, b1, b2, a1, a2} tuples.
func FromTuples(stages [][5]float64) *Filter {
	f := &Filter{stages: make([]Stage, len(stages))}
	for i, t := range stages {
		f.stages[i].Coefficients = FromTuple(t)
	}
	return f
}

// AddStage appends a stage and returns f for chaining.
func (f *Filter) AddStage(b0, b1, b2, a1, a2 float64) *Filter {
	return f.Append(Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2})
}

// Append appends a stage with zero state and returns f for chaining.
func (f *Filter) Append(c Coefficients) *Filter {
	f.stages = append(f.stages, Stage{Coefficients: c})
	return f
}

// Process feeds x through every stage in order and returns the last
// stage's output.
func (f *Filter) Process(x float64) float64 {
	for i := range f.stages {
		x = f.stages[i].Process(x)
	}
	return x
}

// ProcessBlock filters buf in place through the full cascade.
func (f *Filter) ProcessBlock(buf []float64) {
	for i := range f.stages {
		f.stages[i].ProcessBlock(buf)
	}
}

// Reset clears the state of every stage.
func (f *Filter) Reset() {
	for i := range f.stages {
		f.stages[i].Reset()
	}
}

// Empty reports whether the cascade has no stages. An empty filter is a
// pass-through, not a designed filter.
func (f *Filter) Empty() bool {
	return len(f.stages) == 0
}

// NumStages returns the number of second-order sections.
func (f *Filter) NumStages() int {
	return len(f.stages)
}

// Order returns the total filter order (2 per stage).
func (f *Filter) Order() int {
	return 2 * len(f.stages)
}

// Stage returns a pointer to the i-th stage for inspection.
func (f *Filter) Stage(i int) *Stage {
	return &f.stages[i]
}

// Coefficients returns a copy of every stage's coefficients.
func (f *Filter) Coefficients() []Coefficients {
	out := make([]Coefficients, len(f.stages))
	for i := range f.stages {
		out[i] = f.stages[i].Coefficients
	}
	return out
}

// Clone returns an independent filter with the same coefficients and state.
func (f *Filter) Clone() *Filter {
	return &Filter{stages: append([]Stage(nil), f.stages...)}
}

// State returns a snapshot of all stage states.
func (f *Filter) State() [][2]float64 {
	states := make([][2]float64, len(f.stages))
	for i := range f.stages {
		states[i] = f.stages[i].State()
	}
	return states
}

// SetState restores a snapshot taken with State. The snapshot must have
// one entry per stage; otherwise no stage is touched.
func (f *Filter) SetState(states [][2]float64) error {
	if len(states) != len(f.stages) {
		return fmt.Errorf("sos: %d states for %d stages: %w", len(states), len(f.stages), ErrStateMismatch)
	}
	for i := range f.stages {
		f.stages[i].SetState(states[i])
	}
	return nil
}

// InitSteadyState loads every stage with its steady state for a constant
// input x, so that feeding x produces a constant output from the first
// sample on. It returns that output.
func (f *Filter) InitSteadyState(x float64) float64 {
	for i := range f.stages {
		x = f.stages[i].SteadyState(x)
	}
	return x
}
