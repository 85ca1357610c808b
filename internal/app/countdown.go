package app

import (
	"math"
	"time"
)

// Countdown is the planning timer. It only moves when ticked, so it runs on the
// caller's timeline and needs no locking.
type Countdown struct {
	duration  time.Duration
	remaining time.Duration
	running   bool
}

func NewCountdown(d time.Duration) *Countdown {
	return &Countdown{duration: d, remaining: d}
}

// Start rewinds to the full duration and runs. Starting a running countdown does nothing.
func (c *Countdown) Start() {
	if c.running {
		return
	}
	c.remaining = c.duration
	c.running = true
}

// Stop halts the countdown. Stopping twice is safe and never reports expiry.
func (c *Countdown) Stop() {
	c.running = false
}

func (c *Countdown) Running() bool {
	return c.running
}

func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Seconds returns the remaining time rounded up to whole seconds.
func (c *Countdown) Seconds() int {
	return int(math.Ceil(c.remaining.Seconds()))
}

// Tick advances the countdown by dt. It reports true exactly once, on the tick that
// reaches zero, and stops itself.
func (c *Countdown) Tick(dt time.Duration) bool {
	if !c.running || dt <= 0 {
		return false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.running = false
	return true
}
