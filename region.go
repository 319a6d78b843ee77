package playpen

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"
)

// regionState is either regionMutable or regionFrozen.
type regionState interface {
	isRegionState()
}

// regionMutable holds a paintable raster. Only the active region is in
// this state.
type regionMutable struct {
	raster *image.NRGBA
}

// regionFrozen holds a static, losslessly compressed snapshot. A nil
// snapshot means the region has never been painted.
type regionFrozen struct {
	snapshot []byte
}

func (regionMutable) isRegionState() {}
func (regionFrozen) isRegionState()  {}

// Region is one independently paintable area of a coloring level. Its
// raster has the same dimensions as its mask and is positioned at Origin in
// scene coordinates.
type Region struct {
	ID       string
	Origin   Vec2
	Expected Color

	mask       *Mask
	state      regionState
	finished   bool
	colors     ColorSet
	strokeDist float64
}

// NewRegion creates a region in the frozen state with an empty raster.
func NewRegion(id string, origin Vec2, mask *Mask, expected Color) *Region {
	return &Region{
		ID:       id,
		Origin:   origin,
		Expected: expected,
		mask:     mask,
		state:    regionFrozen{},
	}
}

// Mask returns the region's reference mask.
func (r *Region) Mask() *Mask { return r.mask }

// Bounds returns the region's rectangle in scene coordinates.
func (r *Region) Bounds() Rect {
	return Rect{X: r.Origin.X, Y: r.Origin.Y, Width: float64(r.mask.Width()), Height: float64(r.mask.Height())}
}

// Contains reports whether the scene point p lies on an opaque mask pixel.
func (r *Region) Contains(p Vec2) bool {
	lx, ly := p.X-r.Origin.X, p.Y-r.Origin.Y
	if lx < 0 || ly < 0 {
		return false
	}
	return r.mask.At(int(lx), int(ly)) > 0
}

// Finished reports whether the region has passed its coverage check.
func (r *Region) Finished() bool { return r.finished }

// Frozen reports whether the region is in the static state.
func (r *Region) Frozen() bool {
	_, ok := r.state.(regionFrozen)
	return ok
}

// Colors returns the distinct colors used on the region so far.
func (r *Region) Colors() []Color { return r.colors.Colors() }

// StrokeDistance returns the stroke distance accumulated since the last
// coverage check.
func (r *Region) StrokeDistance() float64 { return r.strokeDist }

// Freeze converts the mutable raster into a static snapshot. Freezing a
// frozen region is a no-op.
func (r *Region) Freeze() error {
	m, ok := r.state.(regionMutable)
	if !ok {
		return nil
	}
	if isClear(m.raster) {
		r.state = regionFrozen{}
		return nil
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, m.raster); err != nil {
		return fmt.Errorf("playpen: freeze region %q: %w", r.ID, err)
	}
	r.state = regionFrozen{snapshot: buf.Bytes()}
	return nil
}

// Thaw restores a mutable raster from the region's snapshot. Thawing a
// mutable region is a no-op.
func (r *Region) Thaw() error {
	f, ok := r.state.(regionFrozen)
	if !ok {
		return nil
	}
	raster, err := r.decodeSnapshot(f.snapshot)
	if err != nil {
		return err
	}
	r.state = regionMutable{raster: raster}
	return nil
}

// Raster returns a copy of the current paint raster regardless of state.
func (r *Region) Raster() (*image.NRGBA, error) {
	switch s := r.state.(type) {
	case regionMutable:
		out := image.NewNRGBA(s.raster.Rect)
		copy(out.Pix, s.raster.Pix)
		return out, nil
	case regionFrozen:
		return r.decodeSnapshot(s.snapshot)
	}
	return nil, fmt.Errorf("playpen: region %q has no state", r.ID)
}

func (r *Region) decodeSnapshot(snapshot []byte) (*image.NRGBA, error) {
	raster := image.NewNRGBA(r.mask.Bounds())
	if snapshot == nil {
		return raster, nil
	}
	img, err := png.Decode(bytes.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("playpen: thaw region %q: %w", r.ID, err)
	}
	if src, ok := img.(*image.NRGBA); ok && src.Rect.Size() == raster.Rect.Size() {
		// Copy rows directly so faint pixels survive unrounded.
		for y := 0; y < raster.Rect.Dy(); y++ {
			copy(raster.Pix[y*raster.Stride:y*raster.Stride+raster.Rect.Dx()*4],
				src.Pix[y*src.Stride:y*src.Stride+src.Rect.Dx()*4])
		}
		return raster, nil
	}
	xdraw.Draw(raster, raster.Rect, img, img.Bounds().Min, xdraw.Src)
	return raster, nil
}

// mutable returns the live raster, or nil when frozen.
func (r *Region) mutable() *image.NRGBA {
	if m, ok := r.state.(regionMutable); ok {
		return m.raster
	}
	return nil
}

// Clear wipes all paint, the used-color set and the stroke distance. The
// region keeps its current state variant.
func (r *Region) Clear() {
	if raster := r.mutable(); raster != nil {
		clear(raster.Pix)
	} else {
		r.state = regionFrozen{}
	}
	r.colors.Clear()
	r.strokeDist = 0
}

// stamp composites brush at the scene point p in color c.
func (r *Region) stamp(brush *Brush, p Vec2, c Color) {
	raster := r.mutable()
	if raster == nil {
		return
	}
	dr, sp := r.stampRect(brush, p)
	if dr.Empty() {
		return
	}
	xdraw.DrawMask(raster, dr, image.NewUniform(c.NRGBA()), image.Point{}, brush.stamp, sp, xdraw.Over)
}

// erase removes coverage under brush at the scene point p (destination-out).
func (r *Region) erase(brush *Brush, p Vec2) {
	raster := r.mutable()
	if raster == nil {
		return
	}
	dr, sp := r.stampRect(brush, p)
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			m := uint32(brush.stamp.Pix[(sp.Y+y-dr.Min.Y)*brush.stamp.Stride+sp.X+x-dr.Min.X])
			if m == 0 {
				continue
			}
			i := raster.PixOffset(x, y) + 3
			raster.Pix[i] = uint8(uint32(raster.Pix[i]) * (255 - m) / 255)
		}
	}
}

// stampRect returns the raster rectangle covered by a stamp centred at p,
// clipped to the raster, and the matching stamp origin.
func (r *Region) stampRect(brush *Brush, p Vec2) (image.Rectangle, image.Point) {
	size := brush.stamp.Rect.Dx()
	x0 := int(math.Floor(p.X - r.Origin.X - brush.radius + 0.5))
	y0 := int(math.Floor(p.Y - r.Origin.Y - brush.radius + 0.5))
	full := image.Rect(x0, y0, x0+size, y0+size)
	dr := full.Intersect(r.mask.Bounds())
	return dr, dr.Min.Sub(full.Min)
}

// fill paints c over every pixel inside the mask.
func (r *Region) fill(c Color) {
	raster := r.mutable()
	if raster == nil {
		return
	}
	xdraw.DrawMask(raster, raster.Rect, image.NewUniform(c.NRGBA()), image.Point{}, r.mask.alpha, image.Point{}, xdraw.Over)
}

func isClear(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return false
		}
	}
	return true
}
