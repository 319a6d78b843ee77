package playpen

import (
	"math"
	"testing"
)

func TestPolygonContains(t *testing.T) {
	square := Polygon{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	// L-shape: the notch at (75, 25) is outside.
	ell := Polygon{{0, 0}, {50, 0}, {50, 50}, {100, 50}, {100, 100}, {0, 100}}

	tests := []struct {
		name string
		poly Polygon
		x, y float64
		want bool
	}{
		{"square centre", square, 50, 50, true},
		{"square outside", square, 150, 50, false},
		{"square above", square, 50, -1, false},
		{"ell inside", ell, 25, 75, true},
		{"ell notch", ell, 75, 25, false},
		{"ell lower arm", ell, 75, 75, true},
		{"two points", Polygon{{0, 0}, {10, 10}}, 5, 5, false},
		{"empty", nil, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPolygonContainsWindingIndependent(t *testing.T) {
	cw := Polygon{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	ccw := Polygon{{0, 0}, {0, 100}, {100, 100}, {100, 0}}
	for _, p := range []Vec2{{50, 50}, {1, 99}, {150, 150}} {
		if cw.Contains(p.X, p.Y) != ccw.Contains(p.X, p.Y) {
			t.Errorf("winding changed result at %v", p)
		}
	}
}

func TestPolygonBounds(t *testing.T) {
	p := Polygon{{10, 20}, {-5, 40}, {30, 0}}
	got := p.Bounds()
	want := Rect{X: -5, Y: 0, Width: 35, Height: 40}
	if got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if (Polygon{}).Bounds() != (Rect{}) {
		t.Error("empty polygon bounds should be zero")
	}
}

func TestRectSamplePoints(t *testing.T) {
	r := RectCentered(Vec2{50, 50}, Vec2{20, 10})
	pts := r.SamplePoints()
	if pts[8] != (Vec2{50, 50}) {
		t.Errorf("centre sample = %v, want (50, 50)", pts[8])
	}
	for i, p := range pts {
		if !r.Contains(p.X, p.Y) {
			t.Errorf("sample %d %v outside rect %+v", i, p, r)
		}
	}
	if pts[0] != (Vec2{40, 45}) || pts[3] != (Vec2{60, 55}) {
		t.Errorf("corners = %v, %v", pts[0], pts[3])
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		b    Rect
		want bool
	}{
		{Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{Rect{X: 10, Y: 0, Width: 5, Height: 5}, true},
		{Rect{X: 11, Y: 0, Width: 5, Height: 5}, false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("Intersects(%+v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestVec2(t *testing.T) {
	a, b := Vec2{3, 4}, Vec2{6, 8}
	if a.Len() != 5 {
		t.Errorf("Len() = %v, want 5", a.Len())
	}
	if a.Dist(b) != 5 {
		t.Errorf("Dist() = %v, want 5", a.Dist(b))
	}
	if got := a.Lerp(b, 0.5); got != (Vec2{4.5, 6}) {
		t.Errorf("Lerp() = %v, want (4.5, 6)", got)
	}
	if got := b.Sub(a).Add(a).Scale(2); got != (Vec2{12, 16}) {
		t.Errorf("Sub/Add/Scale = %v, want (12, 16)", got)
	}
}

func TestPathLength(t *testing.T) {
	pts := []Vec2{{0, 0}, {3, 4}, {3, 14}}
	if got := pathLength(pts); math.Abs(got-15) > 1e-9 {
		t.Errorf("pathLength = %v, want 15", got)
	}
	if pathLength(pts[:1]) != 0 {
		t.Error("single point should have zero length")
	}
}
