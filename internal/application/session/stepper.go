package session

// Stepper turns variable frame time into whole fixed ticks
type Stepper struct {
	tickMs   float64
	maxSteps int
	acc      float64
}

// NewStepper creates an accumulator for ticks of tickMs milliseconds.
// maxSteps <= 0 means no cap.
func NewStepper(tickMs float64, maxSteps int) *Stepper {
	return &Stepper{tickMs: tickMs, maxSteps: maxSteps}
}

// Advance adds elapsed milliseconds and returns how many ticks to run.
// After a stall longer than maxSteps ticks the backlog is dropped.
func (s *Stepper) Advance(elapsedMs float64) int {
	if elapsedMs > 0 {
		s.acc += elapsedMs
	}
	steps := int(s.acc / s.tickMs)
	s.acc -= float64(steps) * s.tickMs
	if s.maxSteps > 0 && steps > s.maxSteps {
		steps = s.maxSteps
		s.acc = 0
	}
	return steps
}

// Remainder returns the time carried into the next frame, as a fraction of
// a tick. Renderers use it to interpolate.
func (s *Stepper) Remainder() float64 {
	return s.acc / s.tickMs
}

// Reset drops any accumulated time
func (s *Stepper) Reset() {
	s.acc = 0
}
