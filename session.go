package playpen

import (
	"log/slog"
	"time"
)

// SessionConfig bundles the tunables of a lasso Session.
type SessionConfig struct {
	Capture CaptureConfig
	Lasso   LassoConfig
	// HintDelay is the idle time before EventHint fires. Default 6s;
	// negative disables hints.
	HintDelay time.Duration
}

// Session drives one lasso level: it turns pointer down/move/up into
// strokes, validates them, and reports signals to the sink. The registry is
// passed in explicitly so other components can query the same shapes.
type Session struct {
	levelID   string
	registry  *ShapeRegistry
	capture   *GestureCapture
	validator *LassoValidator
	hint      *HintTimer
	sink      EventSink
}

// NewSession creates a session over registry. sink may be nil.
func NewSession(registry *ShapeRegistry, cfg SessionConfig, sink EventSink) *Session {
	s := &Session{
		registry:  registry,
		capture:   NewGestureCapture(cfg.Capture),
		validator: NewLassoValidator(registry, cfg.Lasso),
		sink:      sink,
	}
	if cfg.HintDelay >= 0 {
		s.hint = NewHintTimer(cfg.HintDelay)
	}
	return s
}

// Registry returns the session's shape registry.
func (s *Session) Registry() *ShapeRegistry { return s.registry }

// Validator returns the session's validator.
func (s *Session) Validator() *LassoValidator { return s.validator }

// Capture returns the session's gesture capture.
func (s *Session) Capture() *GestureCapture { return s.capture }

// LevelID returns the ID of the loaded level.
func (s *Session) LevelID() string { return s.levelID }

// Load spawns cfg into the registry and resets progress. A level without
// correct targets emits EventLevelStalled and accepts no strokes. Returns
// the number of correct targets.
func (s *Session) Load(cfg LevelConfig, screen Vec2) int {
	s.levelID = cfg.ID
	s.capture.Finish()
	s.registry.Spawn(cfg, screen)
	s.validator.Reset()
	if s.hint != nil {
		s.hint.Resume()
	}
	total := s.registry.TotalCorrect()
	if total == 0 {
		Logger().Warn("playpen: level stalled, no correct targets", slog.String("level", cfg.ID))
		emit(s.sink, Event{Type: EventLevelStalled, LevelID: cfg.ID})
	}
	return total
}

// Stalled reports whether the loaded level has nothing to find.
func (s *Session) Stalled() bool {
	return s.registry.TotalCorrect() == 0
}

// PointerDown starts a stroke at p. Returns false if strokes are currently
// blocked (cooldown, finished or stalled level).
func (s *Session) PointerDown(p Vec2) bool {
	if s.Stalled() {
		return false
	}
	if s.capture.Active() {
		// A second press while dragging abandons the first path.
		s.capture.Finish()
		if s.validator.state == StateStrokeInProgress {
			s.validator.state = StateAwaitingStroke
		}
	}
	if s.validator.BeginStroke() != ReasonNone {
		return false
	}
	s.capture.Start(p)
	if s.hint != nil {
		s.hint.Poke()
	}
	return true
}

// PointerMove extends the active stroke.
func (s *Session) PointerMove(p Vec2) {
	if s.capture.Active() {
		s.capture.Extend(p)
	}
}

// PointerUp finishes the stroke at p, validates it and emits signals.
// ok is false when no stroke was active.
func (s *Session) PointerUp(p Vec2) (res Result, ok bool) {
	if !s.capture.Active() {
		return Result{}, false
	}
	s.capture.Extend(p)
	path := s.capture.Finish()
	res = s.validator.Validate(path)

	if globalDebug {
		Logger().Debug("playpen: stroke validated",
			slog.String("level", s.levelID),
			slog.String("attempt", res.AttemptID.String()),
			slog.Int("points", len(path.Points)),
			slog.Float64("length", path.Length),
			slog.String("reason", res.Reason.String()),
			slog.String("state", res.State.String()))
	}

	found, total := s.validator.Found(), s.registry.TotalCorrect()
	if !res.OK {
		emit(s.sink, Event{
			Type: EventLassoFailure, AttemptID: res.AttemptID, LevelID: s.levelID,
			Reason: res.Reason, Wrong: res.Wrong, Found: found, Total: total,
		})
		return res, true
	}

	emit(s.sink, Event{
		Type: EventLassoSuccess, AttemptID: res.AttemptID, LevelID: s.levelID,
		NewlyFound: res.NewlyFound, Found: found, Total: total,
	})
	if res.State == StateSuccessComplete {
		Logger().Info("playpen: level complete", slog.String("level", s.levelID))
		if s.hint != nil {
			s.hint.Pause()
		}
		emit(s.sink, Event{
			Type: EventLevelComplete, AttemptID: res.AttemptID, LevelID: s.levelID,
			Found: found, Total: total,
		})
	}
	return res, true
}

// Update advances the cooldown and hint timer by dt seconds.
func (s *Session) Update(dt float32) {
	s.validator.Update(dt)
	if s.hint == nil || s.capture.Active() || s.Stalled() {
		return
	}
	if s.hint.Update(dt) {
		if target := s.nextUnfound(); target != nil {
			emit(s.sink, Event{Type: EventHint, LevelID: s.levelID, Shape: target,
				Found: s.validator.Found(), Total: s.registry.TotalCorrect()})
		}
	}
}

// nextUnfound returns the first correct target not yet found.
func (s *Session) nextUnfound() *Shape {
	for _, sh := range s.registry.Shapes() {
		if s.registry.IsCorrect(sh) && !s.validator.IsFound(sh.Index) {
			return sh
		}
	}
	return nil
}
