package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
)

type Diagnostics struct {
	MeanX  float64 `json:"x_mean"`
	SigmaX float64 `json:"x_sigma"`
	MeanK  float64 `json:"k_mean"`
	SigmaK float64 `json:"k_sigma"`
}

func Summarize(g *grid.Grid, psi dynamo.Wavefunction) Diagnostics {
	mk, sk := moments(g.K, MomentumDensity(g, psi))
	mx, sx := moments(g.X, probability(psi.Density()))
	return Diagnostics{MeanX: mx, SigmaX: sx, MeanK: mk, SigmaK: sk}
}

func MeanPosition(g *grid.Grid, psi dynamo.Wavefunction) float64 {
	m, _ := moments(g.X, probability(psi.Density()))
	return m
}

func PositionSpread(g *grid.Grid, psi dynamo.Wavefunction) float64 {
	_, s := moments(g.X, probability(psi.Density()))
	return s
}

func MeanMomentum(g *grid.Grid, psi dynamo.Wavefunction) float64 {
	m, _ := moments(g.K, MomentumDensity(g, psi))
	return m
}

// MomentumDensity returns |FFT(psi)|^2 in the grid's wavenumber order, scaled
// so that sum(result) * dk == 1 with dk = 2*pi/L.
func MomentumDensity(g *grid.Grid, psi dynamo.Wavefunction) []float64 {
	spectrum := fft.FFT(psi)
	ps := make([]float64, len(spectrum))
	for i, c := range spectrum {
		ps[i] = real(c)*real(c) + imag(c)*imag(c)
	}

	total := 0.0
	for _, v := range ps {
		total += v
	}
	if total == 0 {
		return ps
	}
	dk := 2 * math.Pi / g.L
	scale := 1 / (total * dk)
	for i := range ps {
		ps[i] *= scale
	}
	return ps
}

// probability rescales rho into weights summing to one.
func probability(rho []float64) []float64 {
	total := 0.0
	for _, v := range rho {
		total += v
	}
	w := make([]float64, len(rho))
	if total == 0 {
		return w
	}
	for i, v := range rho {
		w[i] = v / total
	}
	return w
}

// moments returns the weighted mean and standard deviation of axis. Weights
// that do not sum to one are normalized first.
func moments(axis, weights []float64) (mean, sigma float64) {
	total := 0.0
	for i, w := range weights {
		mean += axis[i] * w
		total += w
	}
	if total == 0 {
		return 0, 0
	}
	mean /= total

	variance := 0.0
	for i, w := range weights {
		d := axis[i] - mean
		variance += d * d * w
	}
	return mean, math.Sqrt(variance / total)
}
