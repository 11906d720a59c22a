package integrators

import (
	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
)

// SplitStep is a second-order Strang propagator with precomputed phases for
// a fixed grid, potential and dt.
type SplitStep struct {
	dt       float64
	halfKick []complex128
	kinetic  []complex128
}

func NewSplitStep(g *grid.Grid, v []float64, dt float64) *SplitStep {
	return &SplitStep{
		dt:       dt,
		halfKick: phases(v, 0.5*dt),
		kinetic:  kineticPhases(g.K, dt),
	}
}

func (s *SplitStep) Dt() float64 { return s.dt }
func (s *SplitStep) Order() int  { return 2 }
func (s *SplitStep) Len() int    { return len(s.kinetic) }

// Step applies exp(-iV dt/2) exp(-iK dt) exp(-iV dt/2) to psi in place.
func (s *SplitStep) Step(psi dynamo.Wavefunction) {
	multiply(psi, psi, s.halfKick)
	drift(psi, s.kinetic)
	multiply(psi, psi, s.halfKick)
}
