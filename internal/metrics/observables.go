// Package metrics reduces a wavefunction to probability observables and
// tracks per-step diagnostics over a run.
package metrics

import (
	"math"
	"strings"

	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
)

// Measure selects which probability is published as the control metric.
type Measure interface {
	Tag() string
	measure()
}

// Region integrates the density over samples with XMin <= x <= XMax.
type Region struct {
	XMin, XMax float64
}

// Total publishes the whole-domain probability.
type Total struct{}

func (Region) Tag() string { return "prob_region" }
func (Region) measure()    {}
func (Total) Tag() string  { return "prob_total" }
func (Total) measure()     {}

// WholeDomain is a Region whose bounds cover every grid position.
func WholeDomain() Region {
	return Region{XMin: math.Inf(-1), XMax: math.Inf(1)}
}

// ParseMeasure decodes a metric tag. An empty tag means prob_region; missing
// bounds extend to the grid edges. Any other tag publishes Total.
func ParseMeasure(tag string, params map[string]float64) Measure {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "prob_region", "prob-region":
		r := WholeDomain()
		for name, v := range params {
			switch strings.ToLower(name) {
			case "x_min":
				r.XMin = v
			case "x_max":
				r.XMax = v
			}
		}
		return r
	default:
		return Total{}
	}
}

type Observables struct {
	Density []float64
	Total   float64
	Region  float64
	Control float64
}

// Evaluate computes the density, total probability and the probability
// selected by m. A nil m behaves as Total. A Region containing no grid
// sample yields 0, not the total.
func Evaluate(g *grid.Grid, psi dynamo.Wavefunction, m Measure) Observables {
	rho := psi.Density()
	obs := Observables{Density: rho, Total: sum(rho) * g.Dx}

	switch r := m.(type) {
	case Region:
		obs.Region = RegionProbability(g, rho, r.XMin, r.XMax)
	default:
		obs.Region = obs.Total
	}

	obs.Control = obs.Region
	return obs
}

// RegionProbability returns sum(rho[i] for XMin <= x_i <= XMax) * dx.
func RegionProbability(g *grid.Grid, rho []float64, xMin, xMax float64) float64 {
	p, hit := 0.0, false
	for i, x := range g.X {
		if x >= xMin && x <= xMax {
			p += rho[i]
			hit = true
		}
	}
	if !hit {
		return 0
	}
	return p * g.Dx
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}
