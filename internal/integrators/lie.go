package integrators

import (
	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
)

// Lie is the sequential first-order splitting exp(-iK dt) exp(-iV dt).
type Lie struct {
	dt      float64
	kick    []complex128
	kinetic []complex128
}

func NewLie(g *grid.Grid, v []float64, dt float64) *Lie {
	return &Lie{
		dt:      dt,
		kick:    phases(v, dt),
		kinetic: kineticPhases(g.K, dt),
	}
}

func (l *Lie) Dt() float64 { return l.dt }
func (l *Lie) Order() int  { return 1 }
func (l *Lie) Len() int    { return len(l.kinetic) }

func (l *Lie) Step(psi dynamo.Wavefunction) {
	multiply(psi, psi, l.kick)
	drift(psi, l.kinetic)
}
