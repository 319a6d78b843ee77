package playpen

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Cooldown blocks input for a fixed duration. It is advanced by Update(dt)
// from the frame loop, like any other tween; there is no wall clock.
type Cooldown struct {
	duration float32
	tween    *gween.Tween
	left     float32
	active   bool
}

// NewCooldown returns an idle cooldown of the given duration.
func NewCooldown(d time.Duration) *Cooldown {
	secs := float32(d.Seconds())
	return &Cooldown{
		duration: secs,
		tween:    gween.New(secs, 0, secs, ease.Linear),
	}
}

// Start (re)arms the cooldown from its full duration. A zero duration
// cooldown never becomes active.
func (c *Cooldown) Start() {
	if c.duration <= 0 {
		return
	}
	c.tween.Reset()
	c.left = c.duration
	c.active = true
}

// Update advances the cooldown by dt seconds.
func (c *Cooldown) Update(dt float32) {
	if !c.active {
		return
	}
	left, done := c.tween.Update(dt)
	c.left = left
	if done {
		c.left = 0
		c.active = false
	}
}

// Active reports whether input is currently blocked.
func (c *Cooldown) Active() bool { return c.active }

// Remaining returns the seconds left before input is re-enabled.
func (c *Cooldown) Remaining() float32 { return c.left }

// Cancel ends the cooldown immediately.
func (c *Cooldown) Cancel() {
	c.active = false
	c.left = 0
}
