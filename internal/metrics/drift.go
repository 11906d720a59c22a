package metrics

import (
	"math"

	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
)

// NormDrift records the largest |P - 1| seen over a run, where P is the
// total probability before any renormalization.
type NormDrift struct {
	name     string
	dx       float64
	maxDrift float64
	samples  int
}

func NewNormDrift(dx float64) *NormDrift {
	return &NormDrift{name: "norm_drift", dx: dx}
}

func (n *NormDrift) Name() string { return n.name }

func (n *NormDrift) Observe(psi dynamo.Wavefunction, t float64) {
	n.samples++
	n.maxDrift = math.Max(n.maxDrift, math.Abs(psi.Probability(n.dx)-1))
}

func (n *NormDrift) Value() float64 { return n.maxDrift }

func (n *NormDrift) Reset() {
	n.maxDrift = 0
	n.samples = 0
}

// MirrorAsymmetry records the largest |rho(x) - rho(-x)| seen over a run.
// The left edge sample has no mirror on a periodic grid and is skipped.
type MirrorAsymmetry struct {
	name    string
	g       *grid.Grid
	worst   float64
	samples int
}

func NewMirrorAsymmetry(g *grid.Grid) *MirrorAsymmetry {
	return &MirrorAsymmetry{name: "mirror_asymmetry", g: g}
}

func (m *MirrorAsymmetry) Name() string { return m.name }

func (m *MirrorAsymmetry) Observe(psi dynamo.Wavefunction, t float64) {
	m.samples++
	m.worst = math.Max(m.worst, Asymmetry(m.g, psi.Density()))
}

func (m *MirrorAsymmetry) Value() float64 { return m.worst }

func (m *MirrorAsymmetry) Reset() {
	m.worst = 0
	m.samples = 0
}

// Asymmetry returns max_i |rho[i] - rho[mirror(i)]|.
func Asymmetry(g *grid.Grid, rho []float64) float64 {
	worst := 0.0
	for i := 1; i < len(rho); i++ {
		j := g.Mirror(i)
		if j < i {
			break
		}
		worst = math.Max(worst, math.Abs(rho[i]-rho[j]))
	}
	return worst
}
