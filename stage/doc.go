// Package stage runs playpen levels on [Ebitengine].
//
// [LassoScene] and [ColoringScene] implement [ebiten.Game] around a
// playpen Session and Painter. Mouse and touch input is routed through a
// [Pointer], which also accepts synthetic events for tests and automation:
//
//	scene := stage.NewLassoScene(level, playpen.SessionConfig{}, 640, 480, nil)
//	scene.Pointer().InjectPath(points)
//	stage.Run(scene, stage.RunConfig{Title: "Lasso", Width: 640, Height: 480})
//
// The scenes only present state; every game rule lives in package playpen.
//
// [Ebitengine]: https://ebitengine.org
package stage
