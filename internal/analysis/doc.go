// Package analysis computes diagnostics of a single wavefunction.
//
// The package includes:
//
//   - [MeanPosition] and [PositionSpread]: first and second moments of |psi|^2
//   - [MomentumDensity]: |phi(k)|^2 on the grid's wavenumbers, normalized so
//     that its sum times dk is one
//   - [MeanMomentum]: first moment of the momentum density
//   - [Summarize]: all of the above in one [Diagnostics] record
//
// # Example
//
//	d := analysis.Summarize(g, psi)
//	fmt.Printf("<x>=%.3f sigma=%.3f <k>=%.3f\n", d.MeanX, d.SigmaX, d.MeanK)
package analysis
