package playpen

import "log/slog"

// Shape is one configured target or decoy placed in the scene. Geometry and
// classification are fixed once spawned; only Highlight and ShakeX change,
// and only for presentation.
type Shape struct {
	// Index is the shape's position in spawn order, stable for the level.
	Index int
	// Key is the asset key the shape was configured with.
	Key string
	// Position is the centre point in scene coordinates.
	Position Vec2
	// Size is the scaled bounding size used for overlap tests.
	Size Vec2
	// IsTarget marks shapes that participate in win counting.
	IsTarget bool
	// IsCorrect marks targets whose key is in the level's correct set.
	IsCorrect bool

	// Highlight is a presentation-only emphasis factor in [0, 1].
	Highlight float64
	// ShakeX is a presentation-only horizontal offset in pixels.
	ShakeX float64
}

// Bounds returns the shape's bounding box centred on its position.
func (s *Shape) Bounds() Rect {
	return RectCentered(s.Position, s.Size)
}

// ShapeRegistry holds the shapes of the active level and answers spatial and
// classification queries. It is read-only during a stroke and mutated only
// between levels.
type ShapeRegistry struct {
	shapes       []*Shape
	correct      KeySet
	totalCorrect int
	requireAll   bool
	useOverlap   bool
}

// NewShapeRegistry returns an empty registry.
func NewShapeRegistry() *ShapeRegistry {
	return &ShapeRegistry{requireAll: true}
}

// Spawn replaces the registry's contents with the shapes of cfg. Positions
// are screen fractions scaled by screen. A missing or malformed config is
// logged and produces zero shapes; callers check TotalCorrect before
// starting play. Returns the number of shapes spawned.
func (r *ShapeRegistry) Spawn(cfg LevelConfig, screen Vec2) int {
	r.Clear()

	if cfg.Kind != LevelKindLasso || cfg.Lasso == nil {
		Logger().Warn("playpen: spawn skipped, not a lasso level",
			slog.String("level", cfg.ID), slog.String("kind", string(cfg.Kind)))
		return 0
	}
	l := cfg.Lasso
	r.correct = l.CorrectKey
	if r.correct == nil {
		r.correct = KeySet{}
	}
	r.requireAll = l.requireAll()
	r.useOverlap = l.UseOverlap

	if len(r.correct) == 0 {
		Logger().Warn("playpen: level has no correct keys", slog.String("level", cfg.ID))
	}

	r.place(cfg.ID, l.Images, true, screen)
	r.place(cfg.ID, l.Answers, false, screen)

	Logger().Info("playpen: level spawned",
		slog.String("level", cfg.ID),
		slog.Int("shapes", len(r.shapes)),
		slog.Int("correct", r.totalCorrect))
	return len(r.shapes)
}

func (r *ShapeRegistry) place(levelID string, placements []Placement, target bool, screen Vec2) {
	for _, p := range placements {
		if !p.valid() {
			Logger().Warn("playpen: skipping malformed placement",
				slog.String("level", levelID), slog.String("key", p.Key))
			continue
		}
		scale := p.Scale
		if scale == 0 {
			scale = 1
		}
		s := &Shape{
			Index:    len(r.shapes),
			Key:      p.Key,
			Position: Vec2{p.X * screen.X, p.Y * screen.Y},
			Size:     Vec2{p.Width * scale, p.Height * scale},
			IsTarget: target,
		}
		s.IsCorrect = target && r.correct.Has(p.Key)
		if s.IsCorrect {
			r.totalCorrect++
		}
		r.shapes = append(r.shapes, s)
	}
}

// Add places a single shape directly, bypassing level documents. The
// correct-key set must already contain key for it to count as correct.
func (r *ShapeRegistry) Add(key string, pos, size Vec2, target bool) *Shape {
	s := &Shape{
		Index:    len(r.shapes),
		Key:      key,
		Position: pos,
		Size:     size,
		IsTarget: target,
	}
	s.IsCorrect = target && r.correct.Has(key)
	if s.IsCorrect {
		r.totalCorrect++
	}
	r.shapes = append(r.shapes, s)
	return s
}

// SetCorrectKeys replaces the correct-key set and reclassifies every shape.
func (r *ShapeRegistry) SetCorrectKeys(keys ...string) {
	r.correct = NewKeySet(keys...)
	r.totalCorrect = 0
	for _, s := range r.shapes {
		s.IsCorrect = s.IsTarget && r.correct.Has(s.Key)
		if s.IsCorrect {
			r.totalCorrect++
		}
	}
}

// Clear removes all shapes.
func (r *ShapeRegistry) Clear() {
	r.shapes = r.shapes[:0]
	r.correct = nil
	r.totalCorrect = 0
	r.requireAll = true
	r.useOverlap = false
}

// Shapes returns all spawned shapes in spawn order. The returned slice MUST
// NOT be mutated.
func (r *ShapeRegistry) Shapes() []*Shape {
	return r.shapes
}

// ShapeAt returns the shape with the given index, or nil.
func (r *ShapeRegistry) ShapeAt(index int) *Shape {
	if index < 0 || index >= len(r.shapes) {
		return nil
	}
	return r.shapes[index]
}

// Targets returns the shapes that participate in win counting.
func (r *ShapeRegistry) Targets() []*Shape {
	var out []*Shape
	for _, s := range r.shapes {
		if s.IsTarget {
			out = append(out, s)
		}
	}
	return out
}

// TotalCorrect returns the number of correct targets in the level.
func (r *ShapeRegistry) TotalCorrect() int {
	return r.totalCorrect
}

// RequireAll reports whether the level needs every correct target enclosed
// in a single stroke.
func (r *ShapeRegistry) RequireAll() bool { return r.requireAll }

// UseOverlap reports whether the level uses the nine-point overlap test.
func (r *ShapeRegistry) UseOverlap() bool { return r.useOverlap }

// IsCorrect reports whether s is a target whose key is in the correct set.
func (r *ShapeRegistry) IsCorrect(s *Shape) bool {
	return s != nil && s.IsTarget && r.correct.Has(s.Key)
}

// IsWrong reports whether s is a target whose key is not in the correct set.
// Decoys are never wrong.
func (r *ShapeRegistry) IsWrong(s *Shape) bool {
	return s != nil && s.IsTarget && !r.correct.Has(s.Key)
}

// ObjectsInPolygon returns every shape whose centre point lies inside poly.
func (r *ShapeRegistry) ObjectsInPolygon(poly Polygon) []*Shape {
	var out []*Shape
	for _, s := range r.shapes {
		if poly.Contains(s.Position.X, s.Position.Y) {
			out = append(out, s)
		}
	}
	return out
}

// OverlapPercentage returns the fraction of the shape's nine bounding-box
// probe points that lie inside poly.
func (r *ShapeRegistry) OverlapPercentage(poly Polygon, s *Shape) float64 {
	pts := s.Bounds().SamplePoints()
	inside := 0
	for _, p := range pts {
		if poly.Contains(p.X, p.Y) {
			inside++
		}
	}
	return float64(inside) / float64(len(pts))
}

// ObjectsOverlapping returns every shape whose overlap with poly is at least
// threshold.
func (r *ShapeRegistry) ObjectsOverlapping(poly Polygon, threshold float64) []*Shape {
	var out []*Shape
	for _, s := range r.shapes {
		if r.OverlapPercentage(poly, s) >= threshold {
			out = append(out, s)
		}
	}
	return out
}
