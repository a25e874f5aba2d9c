// Package menu implements the targeting and pagination controller for the
// floating page menu attached to shared document viewers.
//
// The controller runs once per simulation step in three phases:
//
//  1. [Resolve] decides which document the menu refers to, with a grace
//     period so a single step without hover evidence does not drop it.
//  2. [HandleCommands] applies next/previous page commands to the target.
//  3. [Flush] projects the result into renderer-facing visibility, follow
//     and label state.
//
// [System] runs the phases in order against a [World] and a [Renderer].
// All scene access goes through those interfaces, so the controller can be
// driven by the folio scene graph or by a plain table in tests.
//
//	sys := menu.NewSystem(world, renderer, refs,
//		menu.WithGracePeriod(time.Second),
//		menu.WithLogger(logger),
//	)
//	res := sys.Step(menu.Frame{Now: now, Hovered: hovered, Activated: clicked})
package menu
