package playpen

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// RGB returns an opaque color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("playpen: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("playpen: invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// NRGBA converts to a straight-alpha 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// UnmarshalJSON accepts a hex string such as "#ff8800".
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("playpen: color must be a hex string: %w", err)
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON writes the color as a hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// manhattanRGB returns |dr|+|dg|+|db| over 8-bit channels.
func manhattanRGB(r1, g1, b1, r2, g2, b2 uint8) int {
	return absInt(int(r1)-int(r2)) + absInt(int(g1)-int(g2)) + absInt(int(b1)-int(b2))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ColorSet is an insertion-ordered set of distinct opaque colors, compared
// at 8-bit precision.
type ColorSet struct {
	order []Color
	seen  map[uint32]struct{}
}

func colorKey(c Color) uint32 {
	n := c.NRGBA()
	return uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// Add records c. Returns true if it was not already present.
func (s *ColorSet) Add(c Color) bool {
	if s.seen == nil {
		s.seen = make(map[uint32]struct{})
	}
	k := colorKey(c)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.order = append(s.order, c)
	return true
}

// Len returns the number of distinct colors.
func (s *ColorSet) Len() int { return len(s.order) }

// Colors returns a copy of the colors in insertion order.
func (s *ColorSet) Colors() []Color {
	out := make([]Color, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the set.
func (s *ColorSet) Clear() {
	s.order = s.order[:0]
	clear(s.seen)
}
