// Package ecs provides ECS adapters for curtain's transition events.
//
// The primary adapter is [NewDonburiSink], which bridges transition events
// (start, load complete, activation, end) into a [Donburi] world as typed
// events. Subscribe to [TransitionEventType] in your ECS systems to react to
// scene changes, for example to pause gameplay systems while loading.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	o, err := curtain.New(overlay, loader, curtain.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
