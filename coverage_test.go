package playpen

import (
	"image"
	"image/color"
	"testing"
)

func fillPixels(img *image.NRGBA, n int, c color.NRGBA) {
	w := img.Rect.Dx()
	for i := 0; i < n; i++ {
		img.SetNRGBA(i%w, i/w, c)
	}
}

func TestMeasureCoverageThresholds(t *testing.T) {
	red := RGB(255, 0, 0)
	cfg := CoverageConfig{SampleScale: 1}.withDefaults()

	tests := []struct {
		name        string
		px          color.NRGBA
		wantPainted float64
		wantWrong   float64
	}{
		{"transparent", color.NRGBA{}, 0, 0},
		{"faint below painted", color.NRGBA{R: 255, A: 20}, 0, 0},
		{"faint above painted", color.NRGBA{R: 0, B: 255, A: 21}, 1, 0},
		{"wrong but not strict", color.NRGBA{B: 255, A: 220}, 1, 0},
		{"wrong and strict", color.NRGBA{B: 255, A: 221}, 1, 1},
		{"close enough", color.NRGBA{R: 215, G: 20, B: 20, A: 255}, 1, 0},
		{"just too far", color.NRGBA{R: 214, G: 20, B: 20, A: 255}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raster := image.NewNRGBA(image.Rect(0, 0, 4, 4))
			fillPixels(raster, 16, tt.px)
			cov := measureCoverage(raster, NewSolidMask(4, 4), red, cfg)
			if cov.Painted != tt.wantPainted || cov.Wrong != tt.wantWrong {
				t.Errorf("coverage = %+v, want painted %v wrong %v", cov, tt.wantPainted, tt.wantWrong)
			}
			if cov.Samples != 16 {
				t.Errorf("Samples = %d, want 16", cov.Samples)
			}
		})
	}
}

func TestMeasureCoverageIgnoresOutsideMask(t *testing.T) {
	mask := NewMask(4, 4)
	for x := 0; x < 4; x++ {
		mask.Set(x, 0, 255)
	}
	raster := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	// Paint outside the mask in a wrong color, and half the mask row.
	fillPixels(raster, 16, color.NRGBA{B: 255, A: 255})
	for x := 0; x < 4; x++ {
		raster.SetNRGBA(x, 0, color.NRGBA{})
	}
	raster.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	raster.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	cov := measureCoverage(raster, mask, RGB(255, 0, 0), CoverageConfig{SampleScale: 1}.withDefaults())
	if cov.Samples != 4 || cov.Painted != 0.5 || cov.Wrong != 0 {
		t.Errorf("coverage = %+v, want 4 samples, painted 0.5, wrong 0", cov)
	}
}

func TestMeasureCoverageEmptyMask(t *testing.T) {
	cov := measureCoverage(image.NewNRGBA(image.Rect(0, 0, 2, 2)), NewMask(2, 2), RGB(0, 0, 0), CoverageConfig{SampleScale: 1}.withDefaults())
	if cov != (Coverage{}) {
		t.Errorf("coverage = %+v, want zero", cov)
	}
}

func TestMeasureCoverageDownsampled(t *testing.T) {
	raster := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	fillPixels(raster, 1600, color.NRGBA{G: 255, A: 255})
	cov := measureCoverage(raster, NewSolidMask(40, 40), RGB(0, 255, 0), CoverageConfig{}.withDefaults())
	if cov.Samples != 100 {
		t.Errorf("Samples = %d, want 100 at quarter scale", cov.Samples)
	}
	if cov.Painted != 1 || cov.Wrong != 0 {
		t.Errorf("coverage = %+v, want fully painted", cov)
	}
}

func TestMeasureCoverageDoesNotMutate(t *testing.T) {
	raster := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fillPixels(raster, 30, color.NRGBA{R: 255, A: 255})
	before := append([]byte(nil), raster.Pix...)
	mask := NewSolidMask(8, 8)
	cfg := CoverageConfig{}.withDefaults()

	a := measureCoverage(raster, mask, RGB(255, 0, 0), cfg)
	b := measureCoverage(raster, mask, RGB(255, 0, 0), cfg)
	if a != b {
		t.Errorf("repeated measure differs: %+v vs %+v", a, b)
	}
	for i := range before {
		if raster.Pix[i] != before[i] {
			t.Fatal("measureCoverage modified the raster")
		}
	}
}
