// Package ecs bridges playpen game signals into a [Donburi] world.
//
// [NewDonburiSink] returns a playpen.EventSink that publishes every signal
// as a typed Donburi event. Subscribe to [SignalEventType] in your ECS
// systems to react to strokes, finished regions and completed levels:
//
//	sink := ecs.NewDonburiSink(world)
//	session := playpen.NewSession(registry, playpen.SessionConfig{}, sink)
//	ecs.SignalEventType.Subscribe(world, onSignal)
//
// Events are queued until ProcessEvents runs, typically once per frame.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
