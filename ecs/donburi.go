package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/playpen"
)

// SignalEventType is the Donburi event type for playpen signals.
var SignalEventType = events.NewEventType[playpen.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes to SignalEventType in
// world. Signals can be consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) playpen.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(e playpen.Event) {
	SignalEventType.Publish(s.world, e)
}
