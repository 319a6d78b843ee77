package playpen

const (
	defaultMinPointDistance = 2.0 // pixels
	defaultMaxPoints        = 2048
)

// GesturePath is a finished pointer path.
type GesturePath struct {
	// Points are the accepted samples in arrival order.
	Points []Vec2
	// Length is the cumulative distance travelled by the pointer, including
	// movement between samples that were dropped by the point cap.
	Length float64
}

// Polygon returns the path closed into a polygon.
func (p GesturePath) Polygon() Polygon {
	return Polygon(p.Points)
}

// CaptureConfig tunes a GestureCapture. Zero values select defaults.
type CaptureConfig struct {
	// MinPointDistance discards samples closer than this to the last
	// accepted point. Default 2px.
	MinPointDistance float64
	// MaxPoints caps the stored samples of one path. Default 2048.
	MaxPoints int
}

func (c CaptureConfig) withDefaults() CaptureConfig {
	if c.MinPointDistance <= 0 {
		c.MinPointDistance = defaultMinPointDistance
	}
	if c.MaxPoints <= 0 {
		c.MaxPoints = defaultMaxPoints
	}
	return c
}

// GestureCapture accumulates one pointer path per continuous drag. Only one
// path is active at a time.
type GestureCapture struct {
	cfg    CaptureConfig
	points []Vec2
	last   Vec2
	length float64
	active bool
}

// NewGestureCapture creates a capture with the given configuration.
func NewGestureCapture(cfg CaptureConfig) *GestureCapture {
	return &GestureCapture{cfg: cfg.withDefaults()}
}

// Start begins a new path at p. If a path is already active it is finished
// and its result discarded.
func (g *GestureCapture) Start(p Vec2) {
	if g.active {
		g.Finish()
	}
	g.points = append(g.points[:0], p)
	g.last = p
	g.length = 0
	g.active = true
}

// Extend appends p to the active path. Points within MinPointDistance of the
// last accepted point are ignored. Returns true if p was accepted. The
// length keeps growing after MaxPoints is reached even though no further
// samples are stored.
func (g *GestureCapture) Extend(p Vec2) bool {
	if !g.active {
		return false
	}
	d := p.Dist(g.last)
	if d < g.cfg.MinPointDistance {
		return false
	}
	g.length += d
	g.last = p
	if len(g.points) >= g.cfg.MaxPoints {
		return false
	}
	g.points = append(g.points, p)
	return true
}

// Finish ends the active path and returns it. The returned points are a copy
// and remain valid after the next Start. Finishing an idle capture returns a
// zero path.
func (g *GestureCapture) Finish() GesturePath {
	if !g.active {
		return GesturePath{}
	}
	g.active = false
	pts := make([]Vec2, len(g.points))
	copy(pts, g.points)
	return GesturePath{Points: pts, Length: g.length}
}

// Active reports whether a path is in progress.
func (g *GestureCapture) Active() bool { return g.active }

// Len returns the number of stored samples in the active path.
func (g *GestureCapture) Len() int { return len(g.points) }

// Length returns the cumulative length of the active path.
func (g *GestureCapture) Length() float64 { return g.length }

// Last returns the last accepted point.
func (g *GestureCapture) Last() Vec2 { return g.last }

// Points returns the live samples of the active path. The returned slice
// MUST NOT be mutated and is invalidated by the next Start.
func (g *GestureCapture) Points() []Vec2 { return g.points }

// StrokeTracker consumes a paint stroke incrementally: each accepted move
// yields the segment from the previous point, and nothing is retained.
type StrokeTracker struct {
	minDist float64
	last    Vec2
	active  bool
}

// NewStrokeTracker creates a tracker that ignores moves shorter than
// minDist (default 2px when zero).
func NewStrokeTracker(minDist float64) *StrokeTracker {
	if minDist <= 0 {
		minDist = defaultMinPointDistance
	}
	return &StrokeTracker{minDist: minDist}
}

// Start begins a stroke at p.
func (t *StrokeTracker) Start(p Vec2) {
	t.last = p
	t.active = true
}

// Move returns the segment from the previous point to p. ok is false when
// no stroke is active or the move is below the minimum distance.
func (t *StrokeTracker) Move(p Vec2) (from, to Vec2, ok bool) {
	if !t.active || p.Dist(t.last) < t.minDist {
		return Vec2{}, Vec2{}, false
	}
	from = t.last
	t.last = p
	return from, p, true
}

// End finishes the stroke.
func (t *StrokeTracker) End() { t.active = false }

// Active reports whether a stroke is in progress.
func (t *StrokeTracker) Active() bool { return t.active }
