// Package ecs keeps the networked state of folio scenes in a [Donburi]
// world.
//
// [NewDonburiStore] bridges folio interaction events into the world as typed
// events. [PageStore] holds the per-document page number, its owner and the
// dirty tag the propagation layer drains; it implements menu.Pages.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	pages := ecs.NewPageStore(world, xid.New())
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
