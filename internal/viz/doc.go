// Package viz renders the live double pendulum in the terminal.
//
// It implements an interactive TUI on the Bubble Tea framework:
//
//   - [Model]: live simulation view with parameter tuning
//   - [Canvas]: Braille-based pixel canvas
//   - [Theme]: color schemes, composed with (not stored on) physics types
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	T     - Cycle color themes
//	Tab   - Select parameter, arrows tune it
//	?     - Show help overlay
package viz
