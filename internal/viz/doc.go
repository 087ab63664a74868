// Package viz renders a running system in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas
//   - [Camera]: projection of the orbital plane onto the canvas
//   - [Model]: Bubble Tea program stepping the system live
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Re-seed and restart
//	+/-   - Zoom
//	x/X   - Tilt the orbital plane
//	Q     - Quit
package viz
