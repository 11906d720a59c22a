// Package integrators advances a wavefunction in time under
// H = -1/2 d^2/dx^2 + V(x) with unit mass and unit hbar.
//
// [SplitStep] is the symmetric (Strang) split-operator Fourier method: a half
// potential kick in position space, a full kinetic drift applied diagonally in
// wavenumber space, then a second half kick. It is second order in dt and
// exactly unitary up to rounding.
//
// [Lie] applies the same two exact sub-flows in sequential order and is
// first order; it is kept only as a comparison baseline for convergence
// studies and is never the default.
package integrators
