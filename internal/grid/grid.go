// Package grid builds the discretized position axis of a run and its
// conjugate wavenumber axis.
package grid

import (
	"math"

	"github.com/san-kum/qsim/internal/dynamo"
)

// Grid is a uniform periodic sampling of [-L/2, L/2).
type Grid struct {
	L  float64
	Dx float64
	X  []float64
	K  []float64
}

// New builds N positions x_i = -L/2 + i*L/N and the matching DFT
// wavenumbers. It fails with dynamo.ErrInvalidArgument when N <= 0 or L is
// not a positive finite length.
func New(length float64, n int) (*Grid, error) {
	if n <= 0 {
		return nil, dynamo.Invalid("N", n)
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, dynamo.Invalid("L", length)
	}

	dx := length / float64(n)
	x := make([]float64, n)
	for i := range x {
		x[i] = -length/2 + float64(i)*dx
	}

	return &Grid{L: length, Dx: dx, X: x, K: Wavenumbers(n, dx)}, nil
}

// Wavenumbers returns 2*pi*fftfreq(n, dx): 0, 1, ..., (n-1)/2 followed by
// -(n/2), ..., -1, all scaled by 2*pi/(n*dx).
func Wavenumbers(n int, dx float64) []float64 {
	k := make([]float64, n)
	scale := 2 * math.Pi / (float64(n) * dx)
	positive := (n-1)/2 + 1
	for m := 0; m < n; m++ {
		if m < positive {
			k[m] = float64(m) * scale
		} else {
			k[m] = float64(m-n) * scale
		}
	}
	return k
}

func (g *Grid) Len() int { return len(g.X) }

func (g *Grid) Min() float64 { return g.X[0] }

func (g *Grid) Max() float64 { return g.X[len(g.X)-1] }

// Mirror returns the index holding -X[i], or -1 for the unpaired left edge.
func (g *Grid) Mirror(i int) int {
	if i <= 0 || i >= len(g.X) {
		return -1
	}
	return len(g.X) - i
}
