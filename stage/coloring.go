package stage

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	xdraw "golang.org/x/image/draw"

	"github.com/phanxgames/playpen"
)

const (
	paletteHeight = 40
	swatchSize    = 32
	swatchGap     = 8
)

var colorOutline = color.RGBA{60, 60, 70, 255}

// regionView caches the GPU images of one region.
type regionView struct {
	outline *ebiten.Image
	paint   *ebiten.Image
	scratch *image.RGBA
	dirty   bool
}

// ColoringScene is an ebiten.Game that plays one coloring level. A palette
// bar along the bottom selects the brush color; E toggles the eraser.
type ColoringScene struct {
	painter  *playpen.Painter
	level    playpen.LevelConfig
	assets   map[string]*playpen.Mask
	pointer  *Pointer
	tracker  *playpen.StrokeTracker
	sink     playpen.EventSink
	palette  []playpen.Color
	selected int
	erasing  bool
	current  string
	views    map[string]*regionView
	screen   playpen.Vec2
	status   string
}

// NewColoringScene creates a scene of the given size playing level. assets
// resolves region mask keys and may be nil for outline-only levels.
func NewColoringScene(level playpen.LevelConfig, assets map[string]*playpen.Mask, cfg playpen.PaintConfig, width, height int, sink playpen.EventSink) *ColoringScene {
	s := &ColoringScene{
		level:   level,
		assets:  assets,
		sink:    sink,
		tracker: playpen.NewStrokeTracker(0),
		views:   make(map[string]*regionView),
		screen:  playpen.Vec2{X: float64(width), Y: float64(height)},
	}
	s.painter = playpen.NewPainter(cfg, s)
	s.pointer = NewPointer(s)
	if level.Coloring != nil {
		s.palette = level.Coloring.Palette
	}
	if len(s.palette) == 0 {
		s.palette = []playpen.Color{playpen.ColorWhite}
	}
	s.Reload()
	return s
}

// Painter returns the underlying painter.
func (s *ColoringScene) Painter() *playpen.Painter { return s.painter }

// Pointer returns the scene's input router.
func (s *ColoringScene) Pointer() *Pointer { return s.pointer }

// Status returns the last status line shown in the HUD.
func (s *ColoringScene) Status() string { return s.status }

// Selected returns the current brush color.
func (s *ColoringScene) Selected() playpen.Color { return s.palette[s.selected] }

// SetErasing switches between painting and erasing.
func (s *ColoringScene) SetErasing(on bool) { s.erasing = on }

// Reload rebuilds every region from the level.
func (s *ColoringScene) Reload() {
	s.status = ""
	s.current = ""
	s.tracker.End()
	clear(s.views)
	s.painter.Load(s.level, s.assets)
}

// Emit updates the HUD and marks regions for re-upload, then forwards.
func (s *ColoringScene) Emit(e playpen.Event) {
	switch e.Type {
	case playpen.EventRegionFinished:
		s.markDirty(e.RegionID)
		s.status = e.RegionID + " done"
	case playpen.EventRegionWrong:
		s.markDirty(e.RegionID)
		s.status = e.RegionID + ": wrong color"
	case playpen.EventLevelComplete:
		s.status = "level complete"
	case playpen.EventLevelStalled:
		s.status = "nothing to paint"
	}
	if s.sink != nil {
		s.sink.Emit(e)
	}
}

func (s *ColoringScene) markDirty(id string) {
	if v, ok := s.views[id]; ok {
		v.dirty = true
	}
}

// --- PointerHandler ---

// PointerDown selects a swatch or starts painting the region under p.
func (s *ColoringScene) PointerDown(p playpen.Vec2) {
	if p.Y >= s.screen.Y-paletteHeight {
		if i := int(p.X-swatchGap) / (swatchSize + swatchGap); i >= 0 && i < len(s.palette) {
			s.selected = i
			s.erasing = false
		}
		return
	}
	r := s.painter.RegionAt(p)
	if r == nil {
		return
	}
	s.current = r.ID
	s.tracker.Start(p)
	s.apply(p, p)
}

// PointerMove paints the segment since the last accepted point.
func (s *ColoringScene) PointerMove(p playpen.Vec2) {
	if s.current == "" {
		return
	}
	if from, to, ok := s.tracker.Move(p); ok {
		s.apply(from, to)
	}
}

// PointerUp ends the stroke and judges the region.
func (s *ColoringScene) PointerUp(playpen.Vec2) {
	if s.current == "" {
		return
	}
	s.tracker.End()
	if _, err := s.painter.Flush(s.current); err != nil {
		playpen.Logger().Warn("stage: flush failed", slog.String("region", s.current), slog.Any("err", err))
	}
	s.markDirty(s.current)
	s.current = ""
}

func (s *ColoringScene) apply(from, to playpen.Vec2) {
	var err error
	if s.erasing {
		_, err = s.painter.Erase(s.current, from, to)
	} else {
		_, err = s.painter.Paint(s.current, from, to, s.palette[s.selected])
	}
	if err != nil {
		playpen.Logger().Warn("stage: paint failed", slog.String("region", s.current), slog.Any("err", err))
		return
	}
	s.markDirty(s.current)
}

// --- ebiten.Game ---

// Update implements ebiten.Game.
func (s *ColoringScene) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		s.erasing = !s.erasing
	}
	s.Step()
	return nil
}

// Step processes one frame of input.
func (s *ColoringScene) Step() {
	s.pointer.Update()
}

// Draw implements ebiten.Game.
func (s *ColoringScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	for _, r := range s.painter.Regions() {
		v := s.view(r)
		if v.dirty {
			s.upload(r, v)
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(r.Origin.X, r.Origin.Y)
		op.ColorScale.ScaleWithColor(colorOutline)
		screen.DrawImage(v.outline, op)

		op = &ebiten.DrawImageOptions{}
		op.GeoM.Translate(r.Origin.X, r.Origin.Y)
		screen.DrawImage(v.paint, op)
	}

	y := float32(s.screen.Y - paletteHeight + (paletteHeight-swatchSize)/2)
	for i, c := range s.palette {
		x := float32(swatchGap + i*(swatchSize+swatchGap))
		vector.DrawFilledRect(screen, x, y, swatchSize, swatchSize, c.NRGBA(), false)
		if i == s.selected && !s.erasing {
			vector.StrokeRect(screen, x-2, y-2, swatchSize+4, swatchSize+4, 2, colorHint, false)
		}
	}

	hud := s.status
	if s.erasing {
		hud = "eraser " + hud
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}

// view returns the cached images of r, creating them on first use.
func (s *ColoringScene) view(r *playpen.Region) *regionView {
	v, ok := s.views[r.ID]
	if ok {
		return v
	}
	b := r.Mask().Bounds()
	v = &regionView{
		outline: ebiten.NewImageFromImage(r.Mask().Image()),
		paint:   ebiten.NewImage(b.Dx(), b.Dy()),
		scratch: image.NewRGBA(b),
		dirty:   true,
	}
	s.views[r.ID] = v
	return v
}

// upload copies the region's raster into its GPU image. WritePixels takes
// premultiplied RGBA, so the NRGBA raster is converted first.
func (s *ColoringScene) upload(r *playpen.Region, v *regionView) {
	v.dirty = false
	raster, err := r.Raster()
	if err != nil {
		playpen.Logger().Warn("stage: raster unavailable", slog.String("region", r.ID), slog.Any("err", err))
		return
	}
	xdraw.Draw(v.scratch, v.scratch.Rect, raster, raster.Rect.Min, xdraw.Src)
	v.paint.WritePixels(v.scratch.Pix)
}

// Layout implements ebiten.Game.
func (s *ColoringScene) Layout(_, _ int) (int, int) {
	return int(s.screen.X), int(s.screen.Y)
}
