// Package physics builds the fields a run evolves: the potential-energy
// profile V(x) and the normalized initial wavefunction psi(x).
//
// Both are closed families of tagged variants:
//
//   - [Potential]: [Free], [Well], [Barrier], [Harmonic], [DoubleWell]
//   - [InitialState]: [Gauss], [GaussMomentum], [Superposition]
//
// Every variant implements [dynamo.Configurable] so numeric parameters can be
// applied by name. [ParsePotential] and [ParseState] decode a tag and a
// parameter map; an unknown tag never fails, it selects the default variant
// ([Free] and a centered unit [Gauss] respectively).
//
//	v := physics.BuildPotential(g, physics.NewBarrier())
//	psi := physics.BuildState(g, physics.NewGaussMomentum())
package physics
