package playpen

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// HighlightShape or ShakeShape and call Update(dt) each frame.
//
// Callers update groups themselves; there is no global animation manager.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	// maps optionally reshape a tween's value before it is written.
	maps [4]func(float64) float64
	Done bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		v := float64(val)
		if g.maps[i] != nil {
			v = g.maps[i](v)
		}
		*g.fields[i] = v
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// HighlightShape animates s.Highlight to the given value. Used to mark found
// targets; purely cosmetic.
func HighlightShape(s *Shape, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(s.Highlight), float32(to), duration, fn)
	g.fields[0] = &s.Highlight
	return g
}

// ShakeShape animates s.ShakeX through a decaying oscillation of the given
// amplitude and settles at zero. Used to flag wrong targets.
func ShakeShape(s *Shape, amplitude float64, duration float32) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(0, 1, duration, ease.Linear)
	g.fields[0] = &s.ShakeX
	g.maps[0] = func(p float64) float64 { return shakeOffset(p, amplitude) }
	return g
}

// shakeOffset returns the shake displacement at progress p in [0, 1]: four
// oscillations with linear decay, zero at both ends.
func shakeOffset(p, amplitude float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return amplitude * math.Sin(p*4*2*math.Pi) * (1 - p)
}
