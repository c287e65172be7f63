// Package viz renders attitude runs in the terminal.
//
// The package provides:
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per cell
//   - [Camera] and [Wireframe]: perspective projection of 3D line sets
//   - [ReplayModel]: a Bubble Tea program that plays back a stored run,
//     drawing the body frame rotated by q(t)
//   - [PlotSeries]: asciigraph line charts of scalar series
//
// # Key Bindings (replay)
//
//	Space - Pause/Resume playback
//	[ ]   - Step backward/forward
//	+ -   - Playback speed
//	R     - Restart
//	T     - Cycle color themes
//	Q     - Quit
package viz
