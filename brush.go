package playpen

import (
	"image"
	"math"
)

const (
	defaultBrushRadius     = 24.0
	defaultStampSpacing    = 0.65 // fraction of the brush diameter
	defaultMaxStampsPerSeg = 50
)

// Brush is a soft circular stamp. Its alpha falls off from 255 at the
// centre to 0 at the rim with a smoothstep curve.
type Brush struct {
	radius float64
	stamp  *image.Alpha
}

// NewBrush creates a brush of the given radius in pixels.
func NewBrush(radius float64) *Brush {
	if radius <= 0 {
		radius = defaultBrushRadius
	}
	return &Brush{radius: radius, stamp: generateStamp(radius)}
}

// Radius returns the brush radius.
func (b *Brush) Radius() float64 { return b.radius }

// Diameter returns the brush diameter.
func (b *Brush) Diameter() float64 { return b.radius * 2 }

// Stamp returns the brush alpha image. Its bounds start at (0, 0).
func (b *Brush) Stamp() *image.Alpha { return b.stamp }

// generateStamp creates a feathered circle with the given radius using
// smoothstep falloff.
func generateStamp(radius float64) *image.Alpha {
	size := int(math.Ceil(radius * 2))
	if size < 1 {
		size = 1
	}
	img := image.NewAlpha(image.Rect(0, 0, size, size))

	cx, cy := radius, radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				// smoothstep: 1 at center, 0 at edge
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}
			img.Pix[y*img.Stride+x] = uint8(alpha*255 + 0.5)
		}
	}
	return img
}

// stampPositions returns evenly spaced stamp centres from a to b inclusive.
// Spacing is the preferred distance between stamps; at most maxStamps
// positions are returned, spreading them wider on fast drags.
func stampPositions(a, b Vec2, spacing float64, maxStamps int) []Vec2 {
	if maxStamps < 1 {
		maxStamps = 1
	}
	d := a.Dist(b)
	if d == 0 || spacing <= 0 {
		return []Vec2{b}
	}
	steps := int(math.Ceil(d / spacing))
	if steps > maxStamps-1 {
		steps = maxStamps - 1
	}
	if steps < 1 {
		return []Vec2{b}
	}
	out := make([]Vec2, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, a.Lerp(b, float64(i)/float64(steps)))
	}
	return out
}
