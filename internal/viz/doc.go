// Package viz holds the colour side of the rain effect.
//
//   - [Theme]: five tier colours plus a plain-mode foreground, converted to
//     escape sequences for the detected colour profile by [Theme.Styles]
//   - lipgloss styles and helpers for the live status bar
//
// Built-in themes: classic, retro, ocean, sunset, minimal. The classic theme
// stays within the 16 ANSI colours.
package viz
