package stage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/playpen"
)

var (
	colorBackground = color.RGBA{25, 25, 35, 255}
	colorShape      = color.RGBA{90, 110, 150, 255}
	colorDecoy      = color.RGBA{70, 70, 80, 255}
	colorFound      = color.RGBA{90, 200, 120, 255}
	colorStroke     = color.RGBA{255, 220, 80, 255}
	colorHint       = color.RGBA{255, 255, 255, 255}
)

const (
	highlightDuration = 0.35
	shakeDuration     = 0.4
	shakeAmplitude    = 8.0
	strokeWidth       = 3
)

// LassoScene is an ebiten.Game that plays one lasso level. Shapes are drawn
// as their bounding boxes; found targets glow and wrong ones shake.
type LassoScene struct {
	session *playpen.Session
	level   playpen.LevelConfig
	pointer *Pointer
	sink    playpen.EventSink
	tweens  []*playpen.TweenGroup
	screen  playpen.Vec2
	hint    *playpen.Shape
	status  string
}

// NewLassoScene creates a scene of the given size playing level. Events are
// forwarded to sink after the scene has reacted to them; sink may be nil.
func NewLassoScene(level playpen.LevelConfig, cfg playpen.SessionConfig, width, height int, sink playpen.EventSink) *LassoScene {
	s := &LassoScene{
		level:  level,
		sink:   sink,
		screen: playpen.Vec2{X: float64(width), Y: float64(height)},
	}
	s.session = playpen.NewSession(playpen.NewShapeRegistry(), cfg, s)
	s.pointer = NewPointer(lassoInput{s.session})
	s.Reload()
	return s
}

// lassoInput adapts a Session to PointerHandler.
type lassoInput struct{ session *playpen.Session }

func (in lassoInput) PointerDown(p playpen.Vec2) { in.session.PointerDown(p) }
func (in lassoInput) PointerMove(p playpen.Vec2) { in.session.PointerMove(p) }
func (in lassoInput) PointerUp(p playpen.Vec2)   { in.session.PointerUp(p) }

// Session returns the underlying session.
func (s *LassoScene) Session() *playpen.Session { return s.session }

// Pointer returns the scene's input router.
func (s *LassoScene) Pointer() *Pointer { return s.pointer }

// Status returns the last status line shown in the HUD.
func (s *LassoScene) Status() string { return s.status }

// Reload respawns the level from scratch.
func (s *LassoScene) Reload() {
	s.tweens = s.tweens[:0]
	s.hint = nil
	s.status = ""
	s.session.Load(s.level, s.screen)
}

// Emit reacts to session events with tweens and HUD text, then forwards
// them.
func (s *LassoScene) Emit(e playpen.Event) {
	switch e.Type {
	case playpen.EventLassoSuccess:
		for _, sh := range e.NewlyFound {
			s.tweens = append(s.tweens, playpen.HighlightShape(sh, 1, highlightDuration, ease.OutQuad))
		}
		s.hint = nil
		s.status = fmt.Sprintf("found %d/%d", e.Found, e.Total)
	case playpen.EventLassoFailure:
		for _, sh := range e.Wrong {
			s.tweens = append(s.tweens, playpen.ShakeShape(sh, shakeAmplitude, shakeDuration))
		}
		s.status = e.Reason.String()
	case playpen.EventLevelComplete:
		s.status = "level complete"
	case playpen.EventLevelStalled:
		s.status = "nothing to find"
	case playpen.EventHint:
		s.hint = e.Shape
	}
	if s.sink != nil {
		s.sink.Emit(e)
	}
}

// Update implements ebiten.Game.
func (s *LassoScene) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reload()
	}
	s.Step(1 / float32(ebiten.TPS()))
	return nil
}

// Step advances input, timers and tweens by dt seconds.
func (s *LassoScene) Step(dt float32) {
	s.pointer.Update()
	s.session.Update(dt)

	n := 0
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			s.tweens[n] = g
			n++
		}
	}
	clear(s.tweens[n:])
	s.tweens = s.tweens[:n]
}

// Draw implements ebiten.Game.
func (s *LassoScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	v := s.session.Validator()
	for _, sh := range s.session.Registry().Shapes() {
		b := sh.Bounds()
		x, y := float32(b.X+sh.ShakeX), float32(b.Y)
		w, h := float32(b.Width), float32(b.Height)

		fill := colorShape
		if !sh.IsTarget {
			fill = colorDecoy
		}
		vector.DrawFilledRect(screen, x, y, w, h, fill, false)
		if v.IsFound(sh.Index) {
			a := uint8(255 * sh.Highlight)
			vector.StrokeRect(screen, x-2, y-2, w+4, h+4, strokeWidth,
				color.NRGBA{colorFound.R, colorFound.G, colorFound.B, a}, true)
		}
		if sh == s.hint {
			vector.StrokeRect(screen, x-4, y-4, w+8, h+8, 1, colorHint, true)
		}
		ebitenutil.DebugPrintAt(screen, sh.Key, int(x)+2, int(y)+2)
	}

	if c := s.session.Capture(); c.Active() {
		pts := c.Points()
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(screen, float32(pts[i-1].X), float32(pts[i-1].Y),
				float32(pts[i].X), float32(pts[i].Y), strokeWidth, colorStroke, true)
		}
	}

	ebitenutil.DebugPrintAt(screen, s.status, 8, int(s.screen.Y)-20)
}

// Layout implements ebiten.Game.
func (s *LassoScene) Layout(_, _ int) (int, int) {
	return int(s.screen.X), int(s.screen.Y)
}
