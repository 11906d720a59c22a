// Package viz renders wavefunction evolution in the terminal.
//
// [Model] is a Bubble Tea program that advances a propagator on every tick
// and draws the probability density over the grid with an ASCII plot.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the initial state
//	+/-   - Steps per frame
//	Q     - Quit
package viz
