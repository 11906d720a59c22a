package dynamo

import (
	"math"
	"math/cmplx"
)

// Wavefunction holds complex amplitudes aligned with a position grid.
type Wavefunction []complex128

func (w Wavefunction) Clone() Wavefunction {
	c := make(Wavefunction, len(w))
	copy(c, w)
	return c
}

func (w Wavefunction) IsValid() bool {
	for _, v := range w {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// Density returns |psi|^2 per sample.
func (w Wavefunction) Density() []float64 {
	rho := make([]float64, len(w))
	for i, v := range w {
		rho[i] = real(v)*real(v) + imag(v)*imag(v)
	}
	return rho
}

// Probability returns sum(|psi|^2)*dx.
func (w Wavefunction) Probability(dx float64) float64 {
	sum := 0.0
	for _, v := range w {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return sum * dx
}

// Norm returns sqrt(sum(|psi|^2)*dx).
func (w Wavefunction) Norm(dx float64) float64 {
	return math.Sqrt(w.Probability(dx))
}

// Normalize rescales w in place to unit probability and returns the norm it
// divided by. A zero norm leaves w untouched.
func (w Wavefunction) Normalize(dx float64) float64 {
	norm := w.Norm(dx)
	if norm > 0 {
		inv := complex(1/norm, 0)
		for i := range w {
			w[i] *= inv
		}
	}
	return norm
}

// Propagator advances a wavefunction by one fixed time step in place.
type Propagator interface {
	Step(psi Wavefunction)
	Dt() float64
	Len() int
}

// Order reports the global convergence order of a propagator.
type Order interface {
	Order() int
}

type Metric interface {
	Name() string
	Observe(psi Wavefunction, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(psi Wavefunction, t float64)
}

// Configurable is implemented by tagged specifications with numeric params.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
