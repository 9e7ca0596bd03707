package core

import "time"

// Stepper converts variable wall-clock frame time into a whole number of
// fixed simulation steps. Leftover time is carried to the next frame.
type Stepper struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
}

// NewStepper creates a stepper with the given fixed step. maxSteps caps how
// many steps a single Advance may return; values below 1 are treated as 1.
func NewStepper(step time.Duration, maxSteps int) *Stepper {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Stepper{step: step, maxSteps: maxSteps}
}

// Step returns the fixed step duration.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Advance adds elapsed time and returns the number of steps to simulate.
// When the cap is hit the backlog is dropped rather than replayed later.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	s.acc += elapsed

	n := int(s.acc / s.step)
	if n > s.maxSteps {
		n = s.maxSteps
		s.acc = 0
		return n
	}
	s.acc -= time.Duration(n) * s.step
	return n
}

// Alpha returns how far the accumulator is into the next step, in [0, 1).
func (s *Stepper) Alpha() float64 {
	return float64(s.acc) / float64(s.step)
}

// Reset drops any accumulated time.
func (s *Stepper) Reset() {
	s.acc = 0
}
