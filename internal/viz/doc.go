// Package viz renders simulation results in the terminal.
//
//   - [Canvas]: braille pixel canvas, used for I-V loops
//   - [TimePlot], [MultiPlot]: asciigraph line charts of traces over time
//   - [Viewer]: Bubble Tea model for browsing a result
//   - [Themes]: lipgloss color schemes
//
// # Viewer Key Bindings
//
//	Tab   - Cycle I-V / V / I / x
//	1-4   - Select a trace directly
//	+/-   - Zoom the time window in or out
//	h/l   - Pan the window
//	0     - Show the full run
//	T     - Cycle color themes
//	Q     - Quit
package viz
