package playpen

import (
	"encoding/json"
	"fmt"
	"math"
)

// LevelKind discriminates the level document variants.
type LevelKind string

const (
	LevelKindLasso    LevelKind = "lasso"    // circle the correct objects
	LevelKindColoring LevelKind = "coloring" // paint every region
)

// LevelConfig is a normalized level document. Exactly one of Lasso or
// Coloring is set, matching Kind.
type LevelConfig struct {
	ID       string
	Kind     LevelKind
	Lasso    *LassoLevel
	Coloring *ColoringLevel
}

// LassoLevel configures a "circle the object" level.
type LassoLevel struct {
	// Images are the objects that must be acted upon. They count as targets.
	Images []Placement `json:"images"`
	// Answers are drawn for reference but never counted.
	Answers []Placement `json:"answers"`
	// CorrectKey lists the asset keys that count as correct. A document may
	// give a single string or an array.
	CorrectKey KeySet `json:"correctKey"`
	// RequireAll, when true (the default), fails a stroke that does not
	// enclose every correct target at once.
	RequireAll *bool `json:"requireAll,omitempty"`
	// UseOverlap switches containment from the centre-point test to the
	// nine-point overlap test.
	UseOverlap bool `json:"useOverlap,omitempty"`
}

// Placement positions one shape. X and Y are screen fractions in [0, 1];
// Width and Height are the unscaled asset size in pixels.
type Placement struct {
	Key    string  `json:"key"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scale  float64 `json:"scale,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ColoringLevel configures a coloring level.
type ColoringLevel struct {
	Regions []RegionConfig `json:"regions"`
	Palette []Color        `json:"palette,omitempty"`
}

// RegionConfig describes one paintable region. The mask comes from the
// asset named by MaskKey, or failing that from the Outline polygon
// rasterized at Width x Height.
type RegionConfig struct {
	ID       string       `json:"id"`
	Expected Color        `json:"expected"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	MaskKey  string       `json:"mask,omitempty"`
	Outline  [][2]float64 `json:"outline,omitempty"`
}

// KeySet is a set of asset keys decoded from either a JSON string or an
// array of strings.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		if k != "" {
			s[k] = struct{}{}
		}
	}
	return s
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// UnmarshalJSON accepts "key" or ["a", "b"].
func (s *KeySet) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = NewKeySet(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("playpen: correctKey must be a string or array of strings: %w", err)
	}
	*s = NewKeySet(many...)
	return nil
}

// LoadLevel parses a level document. The top-level "kind" selects which
// body ("lasso" or "coloring") is decoded.
func LoadLevel(jsonData []byte) (LevelConfig, error) {
	var probe struct {
		ID       string          `json:"id"`
		Kind     LevelKind       `json:"kind"`
		Lasso    json.RawMessage `json:"lasso"`
		Coloring json.RawMessage `json:"coloring"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return LevelConfig{}, fmt.Errorf("playpen: failed to parse level JSON: %w", err)
	}

	cfg := LevelConfig{ID: probe.ID, Kind: probe.Kind}
	switch probe.Kind {
	case LevelKindLasso:
		if probe.Lasso == nil {
			return LevelConfig{}, fmt.Errorf("playpen: level %q: kind lasso has no \"lasso\" body", probe.ID)
		}
		var l LassoLevel
		if err := json.Unmarshal(probe.Lasso, &l); err != nil {
			return LevelConfig{}, fmt.Errorf("playpen: level %q: %w", probe.ID, err)
		}
		cfg.Lasso = &l
	case LevelKindColoring:
		if probe.Coloring == nil {
			return LevelConfig{}, fmt.Errorf("playpen: level %q: kind coloring has no \"coloring\" body", probe.ID)
		}
		var c ColoringLevel
		if err := json.Unmarshal(probe.Coloring, &c); err != nil {
			return LevelConfig{}, fmt.Errorf("playpen: level %q: %w", probe.ID, err)
		}
		cfg.Coloring = &c
	default:
		return LevelConfig{}, fmt.Errorf("playpen: level %q: unknown kind %q", probe.ID, probe.Kind)
	}
	return cfg, nil
}

// requireAll resolves the RequireAll default.
func (l *LassoLevel) requireAll() bool {
	return l.RequireAll == nil || *l.RequireAll
}

// valid reports whether a placement can be spawned.
func (p Placement) valid() bool {
	return p.Key != "" && isFinite(p.X) && isFinite(p.Y) &&
		p.Width >= 0 && p.Height >= 0 && isFinite(p.Width) && isFinite(p.Height)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
