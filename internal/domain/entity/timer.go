package entity

// Countdown is a millisecond timer that runs down to zero and stays there
type Countdown struct {
	Remaining float64
}

// NewCountdown returns a countdown started at ms
func NewCountdown(ms float64) Countdown {
	return Countdown{Remaining: ms}
}

// Set restarts the countdown at ms
func (c *Countdown) Set(ms float64) {
	c.Remaining = ms
}

// Active reports whether time is left
func (c Countdown) Active() bool {
	return c.Remaining > 0
}

// Advance runs the countdown forward by dt milliseconds and reports whether
// it reached zero during this call.
func (c *Countdown) Advance(dt float64) bool {
	if c.Remaining <= 0 {
		return false
	}
	c.Remaining -= dt
	if c.Remaining <= 0 {
		c.Remaining = 0
		return true
	}
	return false
}

// Stop clears the countdown without reporting expiry
func (c *Countdown) Stop() {
	c.Remaining = 0
}
