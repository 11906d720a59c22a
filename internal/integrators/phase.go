package integrators

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/qsim/internal/dynamo"
)

// Pointwise loops above this many samples are split across workers.
const parallelChunk = 512

// phases returns exp(-i*scale*f[j]) for every sample of f.
func phases(f []float64, scale float64) []complex128 {
	p := make([]complex128, len(f))
	for j, v := range f {
		sin, cos := math.Sincos(scale * v)
		p[j] = complex(cos, -sin)
	}
	return p
}

func kineticPhases(k []float64, dt float64) []complex128 {
	k2 := make([]float64, len(k))
	for j, v := range k {
		k2[j] = v * v
	}
	return phases(k2, 0.5*dt)
}

func multiply(dst, src, factor []complex128) {
	dynamo.ParallelFor(len(dst), parallelChunk, func(start, end int) {
		for j := start; j < end; j++ {
			dst[j] = src[j] * factor[j]
		}
	})
}

// drift applies the kinetic propagator exp(-i*k^2*dt/2) to psi in place by
// transforming to wavenumber space and back.
func drift(psi dynamo.Wavefunction, kinetic []complex128) {
	spectrum := fft.FFT(psi)
	multiply(spectrum, spectrum, kinetic)
	copy(psi, fft.IFFT(spectrum))
}
