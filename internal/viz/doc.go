// Package viz renders a particle world in the terminal.
//
// The view is a Bubble Tea program:
//
//   - [Model]: live view of one World with camera, timings and charts
//   - [Canvas]: braille canvas with a color per cell
//   - [Theme]: particle palettes, cycled with T
//
// # Key Bindings
//
//	Space - Pause/Resume
//	1     - Random forces and a velocity kick
//	2     - Restore the initial forces
//	WASD  - Pan
//	+/-   - Zoom
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// Recordings are written to [DefaultGIFPath] unless Model.GIFPath is set.
package viz
