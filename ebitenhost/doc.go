// Package ebitenhost runs an arbor scene on [Ebitengine].
//
// It supplies the three pieces a scene needs from a platform: a [Surface]
// that paints into an *ebiten.Image, an [Input] poller that feeds mouse,
// pointer and touch events to the scene's dispatchers, and [Run], a minimal
// game loop configured by [RunConfig].
//
//	scene := arbor.NewScene()
//	// ... add nodes ...
//	if err := ebitenhost.Run(scene, ebitenhost.DefaultRunConfig()); err != nil {
//		log.Fatal(err)
//	}
//
// [Canvas] paints a subtree once into an offscreen image that image nodes
// can show, and [Label] builds on it for single lines of text.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
