// Package dynamo provides the core primitives of the wavefunction engine.
//
// The package defines the types shared by every stage of a run:
//
//   - [Wavefunction]: complex amplitudes sampled on a position grid
//   - [Propagator]: advances a wavefunction by one time step, in place
//   - [Metric]: accumulates a scalar over the steps of a run
//   - [Observer]: receives every intermediate state
//
// # Example
//
//	g, _ := grid.New(20, 512)
//	v := physics.BuildPotential(g, physics.Barrier{XMin: -0.5, XMax: 0.5, V0: 5})
//	psi := physics.BuildState(g, physics.GaussMomentum{X0: -4, Sigma: 0.7, K0: 2})
//	prop := integrators.NewSplitStep(g, v, 0.01)
//	for i := 0; i < steps; i++ {
//	    prop.Step(psi)
//	}
//
// # Thread Safety
//
// A Wavefunction has exactly one owner at a time. Propagators keep scratch
// buffers and are NOT safe for concurrent use; independent runs must build
// their own grid, potential, state and propagator.
package dynamo
