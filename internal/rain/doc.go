// Package rain implements the falling character rain effect.
//
// Each tick runs two phases over the [Grid]:
//
//   - [Engine.Step]: advances every [Column] with [Rules.Advance], a small
//     random state machine (idle, attached trail, detached trail)
//   - [Compositor.Composite]: classifies every cell into a [Tier] from the
//     cell below it, then writes the frame as text with style tokens
//
// # Example
//
//	engine, _ := rain.NewEngine(rain.Options{Columns: 80, Rows: 24, Params: rain.DefaultParams(), Glyphs: alphabet, Seed: 1})
//	comp := rain.NewCompositor(styles, 0)
//	engine.Step()
//	frame := comp.Composite(engine.Grid(), rain.Tiered)
//
// # Thread Safety
//
// Columns are advanced and classified in parallel, but an Engine and a
// Compositor must each be driven from one goroutine, and Composite must not
// run while Step is in progress.
package rain
