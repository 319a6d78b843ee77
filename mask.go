package playpen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG for DecodeMask

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP for DecodeMask
)

// Mask is a reference alpha mask for one paintable region. Values range
// from 0 (outside the region) to 255 (fully inside).
type Mask struct {
	alpha *image.Alpha
}

// NewMask creates an empty (fully transparent) mask.
func NewMask(width, height int) *Mask {
	return &Mask{alpha: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// NewSolidMask creates a fully opaque mask.
func NewSolidMask(width, height int) *Mask {
	m := NewMask(width, height)
	m.Fill(255)
	return m
}

// MaskFromImage creates a mask from an image's alpha channel. The mask's
// origin is the image's bounds minimum.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	xdraw.Draw(m.alpha, m.alpha.Bounds(), img, b.Min, xdraw.Src)
	return m
}

// DecodeMask decodes a PNG or WebP image and returns its alpha channel as a
// mask.
func DecodeMask(data []byte) (*Mask, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("playpen: decode mask: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("playpen: decode mask: empty %s image", format)
	}
	return MaskFromImage(img), nil
}

// MaskFromPolygon rasterizes a closed outline (anti-aliased) into a mask of
// the given size. Points are in mask pixel coordinates.
func MaskFromPolygon(width, height int, outline []Vec2) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("playpen: mask size %dx%d must be positive", width, height)
	}
	if len(outline) < 3 {
		return nil, fmt.Errorf("playpen: mask outline needs at least 3 points, got %d", len(outline))
	}
	dc := gg.NewContext(width, height)
	dc.MoveTo(outline[0].X, outline[0].Y)
	for _, p := range outline[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetRGBA(1, 1, 1, 1)
	dc.Fill()
	return MaskFromImage(dc.Image()), nil
}

// Bounds returns the mask rectangle, always anchored at (0, 0).
func (m *Mask) Bounds() image.Rectangle { return m.alpha.Rect }

// Width returns the mask width.
func (m *Mask) Width() int { return m.alpha.Rect.Dx() }

// Height returns the mask height.
func (m *Mask) Height() int { return m.alpha.Rect.Dy() }

// At returns the mask value at (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if !(image.Point{x, y}).In(m.alpha.Rect) {
		return 0
	}
	return m.alpha.Pix[m.alpha.PixOffset(x, y)]
}

// Set sets the mask value at (x, y). Coordinates outside are ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if !(image.Point{x, y}).In(m.alpha.Rect) {
		return
	}
	m.alpha.SetAlpha(x, y, color.Alpha{A: v})
}

// Fill sets every mask value to v.
func (m *Mask) Fill(v uint8) {
	for i := range m.alpha.Pix {
		m.alpha.Pix[i] = v
	}
}

// Opaque returns the number of mask pixels with a non-zero value.
func (m *Mask) Opaque() int {
	n := 0
	for _, v := range m.alpha.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}

// Image exposes the mask as an image for compositing.
func (m *Mask) Image() *image.Alpha { return m.alpha }
