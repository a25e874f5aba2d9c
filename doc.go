// Package folio is a retained-mode 2D scene graph for shared document
// viewers, built on [Ebitengine].
//
// Folio provides the scene graph, transform hierarchy, pointer hover and
// click handling, follow behaviors, tweens and a minimal renderer that the
// page menu controller in folio/menu needs to run against a live scene.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := folio.NewScene()
//	// ... add nodes ...
//	folio.Run(scene, folio.RunConfig{
//		Title: "Viewer", Width: 960, Height: 640,
//	})
//
// Headless callers drive the scene with [Scene.Step] and synthetic input:
//
//	scene.InjectMove(120, 80)
//	scene.Step(16 * time.Millisecond)
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children inherit their parent's transform and alpha.
//
//	viewer := folio.NewContainer("viewer")
//	viewer.Capabilities = menu.CapMediaRoot
//	scene.Root().AddChild(viewer)
//
//	page := folio.NewSprite("page", 200, 280)
//	page.Capabilities = menu.CapDocument
//	page.Interactable = true
//	viewer.AddChild(page)
//
// # Entities
//
// Node IDs are the entity IDs seen by the page menu. [Scene] implements
// menu.Scene and menu.Renderer: lookups go through an index rebuilt every
// step, so disposed or detached nodes stop existing for the controller
// without any bookkeeping by the caller.
//
// # Hover signal
//
// Each step the scene hit-tests the pointer against visible, interactable
// nodes. [Scene.Hovered] lists every hit, topmost first, and
// [Scene.Activated] reports nodes clicked during the step.
//
// [Ebitengine]: https://ebitengine.org
package folio
