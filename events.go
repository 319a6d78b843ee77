package playpen

import "github.com/google/uuid"

// EventType identifies a kind of game signal.
type EventType uint8

const (
	EventLassoSuccess   EventType = iota // a stroke enclosed new correct shapes
	EventLassoFailure                    // a stroke was rejected; Reason says why
	EventLevelComplete                   // every correct target (or region) is done
	EventLevelStalled                    // the level spawned nothing to play
	EventRegionFinished                  // a region passed its coverage check
	EventRegionWrong                     // a region was wiped for a wrong color
	EventHint                            // the player has been idle; Shape is a suggestion
)

var eventNames = [...]string{
	EventLassoSuccess:   "lasso_success",
	EventLassoFailure:   "lasso_failure",
	EventLevelComplete:  "level_complete",
	EventLevelStalled:   "level_stalled",
	EventRegionFinished: "region_finished",
	EventRegionWrong:    "region_wrong",
	EventHint:           "hint",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a logical signal emitted by the core. Presentation layers react
// to it (sound, highlight, analytics); the core never does.
type Event struct {
	Type EventType
	// AttemptID correlates every signal produced by one stroke.
	AttemptID uuid.UUID
	// LevelID is the level the signal belongs to.
	LevelID string

	// Lasso fields (valid for EventLassoSuccess, EventLassoFailure, EventHint)
	Reason     Reason
	NewlyFound []*Shape
	Wrong      []*Shape
	Found      int
	Total      int
	Shape      *Shape

	// Paint fields (valid for EventRegionFinished, EventRegionWrong)
	RegionID string
	Colors   []Color
	Coverage Coverage
}

// EventSink receives signals from a Session or Painter.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(e).
func (f EventSinkFunc) Emit(e Event) { f(e) }

// emit sends e to sink if one is set.
func emit(sink EventSink, e Event) {
	if sink != nil {
		sink.Emit(e)
	}
}
