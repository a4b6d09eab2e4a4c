package engine

import (
	"slices"
	"time"
)

// Pause reasons
const (
	PauseLevelUp = "levelup"
	PauseManual  = "manual"
	PauseOver    = "gameover"
)

// SimClock is pausable simulation time advanced only by explicit steps
// Any held pause reason freezes time; the schedule freezes with it
type SimClock struct {
	now     time.Duration
	reasons []string
}

func NewSimClock() *SimClock {
	return &SimClock{}
}

// Now returns elapsed simulation time
func (c *SimClock) Now() time.Duration {
	return c.now
}

// Advance moves time forward by dt unless paused and returns the new time
func (c *SimClock) Advance(dt time.Duration) time.Duration {
	if dt > 0 && len(c.reasons) == 0 {
		c.now += dt
	}
	return c.now
}

// Pause adds a reason, returns true when the clock transitioned to paused
func (c *SimClock) Pause(reason string) bool {
	if slices.Contains(c.reasons, reason) {
		return false
	}
	c.reasons = append(c.reasons, reason)
	return len(c.reasons) == 1
}

// Resume drops a reason, returns true when the clock transitioned to running
func (c *SimClock) Resume(reason string) bool {
	i := slices.Index(c.reasons, reason)
	if i < 0 {
		return false
	}
	c.reasons = slices.Delete(c.reasons, i, i+1)
	return len(c.reasons) == 0
}

func (c *SimClock) IsPaused() bool {
	return len(c.reasons) > 0
}

// PausedFor reports whether a specific reason is held
func (c *SimClock) PausedFor(reason string) bool {
	return slices.Contains(c.reasons, reason)
}

// Reasons returns held pause reasons in acquisition order
func (c *SimClock) Reasons() []string {
	return slices.Clone(c.reasons)
}
