package playpen

import (
	"time"

	"github.com/google/uuid"
)

// Reason explains why a lasso stroke failed. ReasonNone means success.
type Reason uint8

const (
	ReasonNone            Reason = iota // stroke accepted
	ReasonReleaseTooEarly               // path too short or too few points
	ReasonWrongEnclosed                 // at least one wrong target enclosed
	ReasonNotAllEnclosed                // some correct targets left outside
	ReasonNothingEnclosed               // no correct target enclosed
	ReasonAlreadySelected               // only previously found targets enclosed
	ReasonCoolingDown                   // stroke arrived during the failure cooldown
	ReasonLevelOver                     // every target has already been found
)

var reasonNames = [...]string{
	ReasonNone:            "none",
	ReasonReleaseTooEarly: "release_too_early",
	ReasonWrongEnclosed:   "wrong_enclosed",
	ReasonNotAllEnclosed:  "not_all_enclosed",
	ReasonNothingEnclosed: "nothing_enclosed",
	ReasonAlreadySelected: "already_selected",
	ReasonCoolingDown:     "cooling_down",
	ReasonLevelOver:       "level_over",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// State is the per-level lasso state machine.
type State uint8

const (
	StateAwaitingStroke   State = iota // ready for a new stroke
	StateStrokeInProgress              // pointer is down
	StateSuccessPartial                // new targets found, more remain
	StateSuccessComplete               // all targets found; the level is over
	StateFailure                       // last stroke failed; cooldown running
)

var stateNames = [...]string{
	StateAwaitingStroke:   "awaiting_stroke",
	StateStrokeInProgress: "stroke_in_progress",
	StateSuccessPartial:   "success_partial",
	StateSuccessComplete:  "success_complete",
	StateFailure:          "failure",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

const (
	defaultMinPathLength    = 100.0 // pixels
	defaultMinPoints        = 10
	defaultFailureCooldown  = 500 * time.Millisecond
	defaultOverlapThreshold = 0.5
)

// LassoConfig tunes a LassoValidator. Zero values select defaults.
type LassoConfig struct {
	// MinPathLength rejects strokes shorter than this many pixels. Default 100.
	MinPathLength float64
	// MinPoints rejects strokes with fewer samples. Default 10.
	MinPoints int
	// FailureCooldown disables strokes after a failure. Default 500ms;
	// negative disables the cooldown.
	FailureCooldown time.Duration
	// OverlapThreshold is the minimum nine-point overlap for a shape to count
	// as enclosed when the level uses overlap mode. Default 0.5.
	OverlapThreshold float64
}

func (c LassoConfig) withDefaults() LassoConfig {
	if c.MinPathLength <= 0 {
		c.MinPathLength = defaultMinPathLength
	}
	if c.MinPoints <= 0 {
		c.MinPoints = defaultMinPoints
	}
	if c.FailureCooldown == 0 {
		c.FailureCooldown = defaultFailureCooldown
	}
	if c.OverlapThreshold <= 0 {
		c.OverlapThreshold = defaultOverlapThreshold
	}
	return c
}

// Result is the outcome of validating one stroke.
type Result struct {
	OK     bool
	Reason Reason
	State  State
	// Selected holds every enclosed correct target, including ones found by
	// earlier strokes.
	Selected []*Shape
	// NewlyFound holds the enclosed correct targets not found before.
	NewlyFound []*Shape
	// Wrong holds the enclosed wrong targets.
	Wrong []*Shape
	// AttemptID identifies the stroke.
	AttemptID uuid.UUID
}

// LassoValidator applies the accept/reject policy to finished strokes
// against a ShapeRegistry, and tracks which targets have been found.
type LassoValidator struct {
	cfg      LassoConfig
	registry *ShapeRegistry
	found    map[int]bool
	state    State
	cooldown *Cooldown
}

// NewLassoValidator creates a validator over registry.
func NewLassoValidator(registry *ShapeRegistry, cfg LassoConfig) *LassoValidator {
	cfg = cfg.withDefaults()
	return &LassoValidator{
		cfg:      cfg,
		registry: registry,
		found:    make(map[int]bool),
		cooldown: NewCooldown(cfg.FailureCooldown),
	}
}

// Config returns the effective configuration.
func (v *LassoValidator) Config() LassoConfig { return v.cfg }

// State returns the current state.
func (v *LassoValidator) State() State { return v.state }

// Found returns the number of correct targets found so far.
func (v *LassoValidator) Found() int { return len(v.found) }

// IsFound reports whether the shape with the given index has been found.
func (v *LassoValidator) IsFound(index int) bool { return v.found[index] }

// Cooldown returns the failure cooldown.
func (v *LassoValidator) Cooldown() *Cooldown { return v.cooldown }

// Reset forgets found targets and returns to StateAwaitingStroke. Call it
// after respawning the registry.
func (v *LassoValidator) Reset() {
	clear(v.found)
	v.state = StateAwaitingStroke
	v.cooldown.Cancel()
}

// Update advances the failure cooldown by dt seconds. When it expires the
// validator returns to StateAwaitingStroke.
func (v *LassoValidator) Update(dt float32) {
	v.cooldown.Update(dt)
	if v.state == StateFailure && !v.cooldown.Active() {
		v.state = StateAwaitingStroke
	}
}

// CanStroke reports whether a new stroke may begin.
func (v *LassoValidator) CanStroke() bool {
	return !v.cooldown.Active() && v.state != StateSuccessComplete && v.state != StateStrokeInProgress
}

// BeginStroke moves to StateStrokeInProgress. Returns the reason a stroke
// cannot start, or ReasonNone.
func (v *LassoValidator) BeginStroke() Reason {
	switch {
	case v.state == StateSuccessComplete:
		return ReasonLevelOver
	case v.cooldown.Active():
		return ReasonCoolingDown
	}
	v.state = StateStrokeInProgress
	return ReasonNone
}

// Validate judges a finished stroke. Decision order: too short; any wrong
// target enclosed; (when the level requires all at once) some correct target
// missing; no correct target enclosed; no new correct target. Failures arm
// the cooldown. Validate never panics and always returns a Result.
func (v *LassoValidator) Validate(path GesturePath) Result {
	res := Result{AttemptID: uuid.New()}

	if v.state == StateSuccessComplete {
		res.Reason = ReasonLevelOver
		res.State = v.state
		return res
	}
	if v.cooldown.Active() {
		res.Reason = ReasonCoolingDown
		res.State = v.state
		return res
	}

	if path.Length < v.cfg.MinPathLength || len(path.Points) < v.cfg.MinPoints {
		return v.fail(res, ReasonReleaseTooEarly)
	}

	poly := path.Polygon()
	var enclosed []*Shape
	if v.registry.UseOverlap() {
		enclosed = v.registry.ObjectsOverlapping(poly, v.cfg.OverlapThreshold)
	} else {
		enclosed = v.registry.ObjectsInPolygon(poly)
	}

	for _, s := range enclosed {
		switch {
		case v.registry.IsCorrect(s):
			res.Selected = append(res.Selected, s)
		case v.registry.IsWrong(s):
			res.Wrong = append(res.Wrong, s)
		}
	}

	switch {
	case len(res.Wrong) > 0:
		return v.fail(res, ReasonWrongEnclosed)
	case v.registry.RequireAll() && len(res.Selected) < v.registry.TotalCorrect():
		return v.fail(res, ReasonNotAllEnclosed)
	case len(res.Selected) == 0:
		return v.fail(res, ReasonNothingEnclosed)
	}

	for _, s := range res.Selected {
		if !v.found[s.Index] {
			res.NewlyFound = append(res.NewlyFound, s)
		}
	}
	if len(res.NewlyFound) == 0 {
		return v.fail(res, ReasonAlreadySelected)
	}

	for _, s := range res.NewlyFound {
		v.found[s.Index] = true
	}
	res.OK = true
	if len(v.found) >= v.registry.TotalCorrect() {
		v.state = StateSuccessComplete
	} else {
		v.state = StateSuccessPartial
	}
	res.State = v.state
	return res
}

func (v *LassoValidator) fail(res Result, reason Reason) Result {
	res.OK = false
	res.Reason = reason
	v.state = StateFailure
	v.cooldown.Start()
	if !v.cooldown.Active() {
		v.state = StateAwaitingStroke
	}
	res.State = v.state
	return res
}
