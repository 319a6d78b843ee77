package playpen

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

const (
	defaultSampleScale    = 0.25
	defaultPaintedAlpha   = 20
	defaultStrictAlpha    = 220
	defaultColorTolerance = 80
)

// CoverageConfig tunes coverage sampling. Zero values select defaults.
type CoverageConfig struct {
	// SampleScale is the downsampling factor applied to raster and mask
	// before counting. Default 0.25 (a quarter of each dimension).
	// Values >= 1 sample every pixel.
	SampleScale float64
	// PaintedAlpha is the raster alpha above which a pixel counts as
	// painted. Default 20, so faint anti-aliased edges count.
	PaintedAlpha uint8
	// StrictAlpha is the raster alpha above which a pixel's color is
	// compared with the expected color. Default 220.
	StrictAlpha uint8
	// ColorTolerance is the Manhattan RGB distance above which a strict
	// pixel counts as wrong. Default 80.
	ColorTolerance int
}

func (c CoverageConfig) withDefaults() CoverageConfig {
	if c.SampleScale <= 0 {
		c.SampleScale = defaultSampleScale
	}
	if c.PaintedAlpha == 0 {
		c.PaintedAlpha = defaultPaintedAlpha
	}
	if c.StrictAlpha == 0 {
		c.StrictAlpha = defaultStrictAlpha
	}
	if c.ColorTolerance <= 0 {
		c.ColorTolerance = defaultColorTolerance
	}
	return c
}

// Coverage is the result of sampling a region's raster against its mask.
type Coverage struct {
	// Painted is the fraction of mask samples that are painted.
	Painted float64
	// Wrong is the fraction of mask samples painted in a wrong color.
	Wrong float64
	// Samples is the number of mask samples counted.
	Samples int
}

// measureCoverage samples raster against mask. Both must have the same
// bounds. It does not modify either image.
func measureCoverage(raster *image.NRGBA, mask *Mask, expected Color, cfg CoverageConfig) Coverage {
	sr, sm := raster, mask.alpha
	if cfg.SampleScale < 1 {
		sr, sm = downsample(raster, mask.alpha, cfg.SampleScale)
	}

	want := expected.NRGBA()
	var total, painted, wrong int
	w, h := sm.Rect.Dx(), sm.Rect.Dy()
	for y := 0; y < h; y++ {
		mrow := sm.Pix[y*sm.Stride:]
		rrow := sr.Pix[y*sr.Stride:]
		for x := 0; x < w; x++ {
			if mrow[x] == 0 {
				continue
			}
			total++
			px := rrow[x*4 : x*4+4]
			a := px[3]
			if a > cfg.PaintedAlpha {
				painted++
			}
			if a > cfg.StrictAlpha &&
				manhattanRGB(px[0], px[1], px[2], want.R, want.G, want.B) > cfg.ColorTolerance {
				wrong++
			}
		}
	}
	if total == 0 {
		return Coverage{}
	}
	return Coverage{
		Painted: float64(painted) / float64(total),
		Wrong:   float64(wrong) / float64(total),
		Samples: total,
	}
}

// downsample scales raster and mask by scale (at least 1x1) with bilinear
// filtering.
func downsample(raster *image.NRGBA, mask *image.Alpha, scale float64) (*image.NRGBA, *image.Alpha) {
	w := max(1, int(math.Round(float64(raster.Rect.Dx())*scale)))
	h := max(1, int(math.Round(float64(raster.Rect.Dy())*scale)))
	dst := image.Rect(0, 0, w, h)

	sr := image.NewNRGBA(dst)
	xdraw.ApproxBiLinear.Scale(sr, dst, raster, raster.Rect, xdraw.Src, nil)
	sm := image.NewAlpha(dst)
	xdraw.ApproxBiLinear.Scale(sm, dst, mask, mask.Rect, xdraw.Src, nil)
	return sr, sm
}
