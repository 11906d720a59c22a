package experiment

import (
	"context"
	"math"

	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/sim"
)

// referenceRefinement is how much finer than dt the reference solution is.
const referenceRefinement = 64

// Convergence reports the L2 distance to a fine split-step reference after
// evolving with dt and dt/2.
type Convergence struct {
	Integrator string  `json:"integrador"`
	Dt         float64 `json:"dt"`
	T          float64 `json:"T"`
	Coarse     float64 `json:"error_dt"`
	Fine       float64 `json:"error_dt_half"`
	Ratio      float64 `json:"ratio"`
}

// Order estimates the temporal order from the error ratio.
func (c Convergence) Order() float64 { return math.Log2(c.Ratio) }

// Converge measures the temporal convergence of the named integrator on cfg.
// The duration is rounded to a whole number of dt steps.
func Converge(ctx context.Context, cfg *config.Config, integrator string) (*Convergence, error) {
	e := New(cfg)
	setup, err := e.Prepare()
	if err != nil {
		return nil, err
	}
	factory, err := e.registry.GetIntegrator(integrator)
	if err != nil {
		return nil, err
	}
	reference, err := e.registry.GetIntegrator(DefaultIntegrator)
	if err != nil {
		return nil, err
	}

	g, v, dt := setup.Grid, setup.Potential, setup.Params.Dt
	steps := max(int(math.RoundToEven(setup.Params.T/dt)), 1)

	evolve := func(prop dynamo.Propagator, n int) (dynamo.Wavefunction, error) {
		psi := setup.Psi.Clone()
		simCfg := sim.DefaultConfig()
		simCfg.Steps = n
		if _, err := sim.New(prop).Run(ctx, psi, simCfg); err != nil {
			return nil, err
		}
		return psi, nil
	}

	ref, err := evolve(reference(g, v, dt/referenceRefinement), steps*referenceRefinement)
	if err != nil {
		return nil, err
	}
	coarse, err := evolve(factory(g, v, dt), steps)
	if err != nil {
		return nil, err
	}
	fine, err := evolve(factory(g, v, dt/2), 2*steps)
	if err != nil {
		return nil, err
	}

	c := &Convergence{
		Integrator: integrator,
		Dt:         dt,
		T:          float64(steps) * dt,
		Coarse:     distance(coarse, ref, g.Dx),
		Fine:       distance(fine, ref, g.Dx),
	}
	if c.Fine > 0 {
		c.Ratio = c.Coarse / c.Fine
	}
	return c, nil
}

func distance(a, b dynamo.Wavefunction, dx float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += real(d)*real(d) + imag(d)*imag(d)
	}
	return math.Sqrt(sum * dx)
}
