package playpen

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const defaultHintDelay = 6 * time.Second

// HintTimer fires after a period without player activity. It restarts
// itself after firing so an idle player is reminded periodically.
type HintTimer struct {
	tween  *gween.Tween
	paused bool
}

// NewHintTimer creates a timer firing after delay (default 6s when zero).
func NewHintTimer(delay time.Duration) *HintTimer {
	if delay <= 0 {
		delay = defaultHintDelay
	}
	secs := float32(delay.Seconds())
	return &HintTimer{tween: gween.New(0, 1, secs, ease.Linear)}
}

// Poke records player activity and restarts the countdown.
func (h *HintTimer) Poke() {
	h.tween.Reset()
}

// Pause stops the countdown until Resume. Paused timers never fire.
func (h *HintTimer) Pause() { h.paused = true }

// Resume restarts the countdown from zero.
func (h *HintTimer) Resume() {
	h.paused = false
	h.tween.Reset()
}

// Update advances the timer by dt seconds and reports whether it fired.
func (h *HintTimer) Update(dt float32) bool {
	if h.paused {
		return false
	}
	if _, done := h.tween.Update(dt); done {
		h.tween.Reset()
		return true
	}
	return false
}
