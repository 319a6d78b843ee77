// Package playpen implements the game rules of two touch-driven activities
// for young players: circling objects with a freehand lasso, and painting
// regions of a picture with a soft brush.
//
// The package is deliberately free of rendering. It consumes pointer
// samples and emits [Event] values; package playpen/stage presents it on
// [Ebitengine] and package playpen/ecs forwards events into a [Donburi]
// world.
//
// # Lasso levels
//
// A [ShapeRegistry] holds the spawned shapes of a level. A [Session] turns
// pointer down/move/up into a [GesturePath] and hands it to a
// [LassoValidator], which accepts or rejects the stroke:
//
//	level, _ := playpen.LoadLevel(data)
//	s := playpen.NewSession(playpen.NewShapeRegistry(), playpen.SessionConfig{}, sink)
//	s.Load(level, playpen.Vec2{X: 640, Y: 480})
//	s.PointerDown(p0)
//	s.PointerMove(p1) // ...
//	res, _ := s.PointerUp(pn)
//
// Rejections carry a [Reason] and arm a short cooldown. Call
// [Session.Update] every frame to advance the cooldown and the idle hint.
//
// # Coloring levels
//
// A [Painter] owns one [Region] per paintable area. Only the region being
// painted keeps a live raster; the others are frozen into compressed
// snapshots. Coverage is sampled against each region's [Mask] after enough
// stroke distance and again on release:
//
//	p := playpen.NewPainter(playpen.PaintConfig{}, sink)
//	p.Load(level, assets)
//	p.Paint("sky", from, to, playpen.RGB(80, 160, 255))
//	p.Flush("sky")
//
// A region painted in a wrong color is wiped. A region covered past the
// win threshold is finished and, if a single color was used, filled solid.
//
// # Diagnostics
//
// Logging goes through log/slog; install a logger with [SetLogger]. Per
// stroke and per check timing is logged when [SetDebugMode] is on.
// [ScriptRunner] replays JSON scripts of strokes for tests and bug reports.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package playpen
