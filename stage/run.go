package stage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and runs game until it returns an error or the window
// closes.
func Run(game ebiten.Game, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.ShowFPS {
		game = &fpsOverlay{Game: game}
	}
	return ebiten.RunGame(game)
}

// fpsOverlay draws FPS and TPS in the top-right corner over another game.
type fpsOverlay struct {
	ebiten.Game
	img        *ebiten.Image
	lastUpdate float64
}

func (f *fpsOverlay) Update() error {
	f.lastUpdate += 1 / float64(ebiten.TPS())
	return f.Game.Update()
}

func (f *fpsOverlay) Draw(screen *ebiten.Image) {
	f.Game.Draw(screen)
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.lastUpdate = 1
	}
	if f.lastUpdate >= 0.5 {
		f.lastUpdate = 0
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-100), 0)
	screen.DrawImage(f.img, op)
}
