// Package ecs forwards recognized gestures into a [Donburi] world.
//
// Attach a sink to an engine and read gestures from ECS systems:
//
//	engine.SetGestureSink(ecs.NewDonburiSink(world))
//	ecs.GestureEventType.Subscribe(world, onGesture)
//
// Pass gesture kinds to NewDonburiSink to publish only those, for example
// only taps and pans for a map view.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
