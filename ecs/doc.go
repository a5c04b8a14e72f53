// Package ecs provides ECS adapters for arbor's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges mouse, pointer and
// touch interactions on nodes with a non-zero EntityID into a [Donburi] world
// as typed events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiStore(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
