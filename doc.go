// Package arbor is a retained-mode 2D scene graph with hit testing and
// gesture dispatch.
//
// A scene is a tree of nodes. Every node has an affine transform, a depth
// that orders it among its siblings, and optional listeners. Mouse, pointer
// and touch input is hit-tested against the tree and delivered as
// interactions that listeners may capture or cancel.
//
// arbor does not draw anything itself. Nodes paint into a [Surface] and
// the host supplies one; the ebitenhost subpackage runs a scene on
// [Ebitengine]:
//
//	scene := arbor.NewScene()
//	box := arbor.NewRect("box", 80, 40, arbor.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.SetTranslation(100, 50)
//	scene.Root().Add(box)
//	ebitenhost.Run(scene, ebitenhost.DefaultRunConfig())
//
// # Scene graph
//
// Every node kind embeds [Node]: [Group] holds children, [ImageNode] draws
// an [Image], and [CustomNode] paints through a callback. A node has at most
// one parent; adding it elsewhere moves it. Children are kept sorted by
// depth, ties in insertion order, and paint back to front:
//
//	ui := arbor.NewGroup("ui")
//	scene.Root().Add(ui)
//	ui.Add(box)
//	box.SetDepth(10) // above siblings with lower depth
//
// A node's lifecycle runs removed, added, disposed. [Node.OnStateChange]
// observes it; [Node.Close] disposes a node and, for groups, its subtree.
//
// # Coordinates
//
// [LayerToParent], [ParentToLayer], [LayerToScreen], [ScreenToLayer] and
// [LayerToLayer] convert points between spaces. Each node's transform is
// applied after its origin offset.
//
// # Interactions
//
// Connecting a listener with [Node.OnMouse], [Node.OnPointer] or
// [Node.OnTouch] makes the node and its ancestors interactive. A gesture
// starts on the topmost interactive node under the input and, when
// bubbling, travels up through its ancestors. Any listener may call
// [Interaction.Capture] to keep the gesture to itself; excluded listeners
// get one cancel event.
//
//	box.OnPointer(arbor.PointerListener{
//		OnStart: func(ev arbor.PointerEvent, it *arbor.PointerInteraction) {
//			it.Capture()
//		},
//		OnDrag: func(ev arbor.PointerEvent, it *arbor.PointerInteraction) {
//			// ...
//		},
//	})
//
// # Tweens and ECS
//
// [TweenGroup] animates node properties via [gween]. The ecs subpackage
// forwards interactions on nodes with an EntityID into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
