package physics

import (
	"math"
	"strings"

	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
)

// InitialState is a closed family of unnormalized wavefunction shapes.
type InitialState interface {
	dynamo.Configurable
	Tag() string
	Amplitude(x float64) complex128
	initialState()
}

// BuildState samples s on the grid and normalizes it to unit probability.
// A nil s is a centered Gauss with sigma 1.
func BuildState(g *grid.Grid, s InitialState) dynamo.Wavefunction {
	if s == nil {
		s = NewGauss()
	}
	psi := make(dynamo.Wavefunction, g.Len())
	for i, x := range g.X {
		psi[i] = s.Amplitude(x)
	}
	psi.Normalize(g.Dx)
	return psi
}

// ParseState selects a variant by tag. An empty tag is gauss with params
// applied. Unknown tags yield a centered Gauss with sigma 1 and ignore params,
// matching the absent case.
func ParseState(tag string, params map[string]float64) (InitialState, error) {
	var s InitialState
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "gauss":
		s = NewGauss()
	case "gauss_momentum", "gauss-momentum":
		s = NewGaussMomentum()
	case "superposicion", "superposition":
		s = NewSuperposition()
	default:
		return NewGauss(), nil
	}
	if err := applyParams(s, params); err != nil {
		return nil, err
	}
	return s, nil
}

func envelope(x, x0, sigma float64) float64 {
	u := (x - x0) / sigma
	return math.Exp(-0.5 * u * u)
}

func setSigma(dst *float64, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return dynamo.Invalid("sigma", v)
	}
	*dst = v
	return nil
}

// Gauss is exp(-0.5*((x-X0)/Sigma)^2).
type Gauss struct {
	X0, Sigma float64
}

func NewGauss() *Gauss {
	return &Gauss{0.0, 1.0}
}

func (*Gauss) Tag() string { return "gauss" }

func (s *Gauss) Amplitude(x float64) complex128 {
	return complex(envelope(x, s.X0, s.Sigma), 0)
}

func (s *Gauss) GetParams() map[string]float64 {
	return map[string]float64{"x0": s.X0, "sigma": s.Sigma}
}

func (s *Gauss) SetParam(n string, v float64) error {
	switch n {
	case "x0":
		s.X0 = v
	case "sigma":
		return setSigma(&s.Sigma, v)
	}
	return nil
}

func (*Gauss) initialState() {}

// GaussMomentum is a Gauss envelope carrying the plane-wave phase
// exp(i*K0*x).
type GaussMomentum struct {
	X0, Sigma, K0 float64
}

func NewGaussMomentum() *GaussMomentum {
	return &GaussMomentum{-2.0, 1.0, 2.0}
}

func (*GaussMomentum) Tag() string { return "gauss_momentum" }

func (s *GaussMomentum) Amplitude(x float64) complex128 {
	sin, cos := math.Sincos(s.K0 * x)
	e := envelope(x, s.X0, s.Sigma)
	return complex(e*cos, e*sin)
}

func (s *GaussMomentum) GetParams() map[string]float64 {
	return map[string]float64{"x0": s.X0, "sigma": s.Sigma, "k0": s.K0}
}

func (s *GaussMomentum) SetParam(n string, v float64) error {
	switch n {
	case "x0":
		s.X0 = v
	case "sigma":
		return setSigma(&s.Sigma, v)
	case "k0":
		s.K0 = v
	}
	return nil
}

func (*GaussMomentum) initialState() {}

// Superposition is the sum of two Gauss envelopes of equal width.
type Superposition struct {
	X1, X2, Sigma float64
}

func NewSuperposition() *Superposition {
	return &Superposition{-2.0, 2.0, 0.7}
}

func (*Superposition) Tag() string { return "superposicion" }

func (s *Superposition) Amplitude(x float64) complex128 {
	return complex(envelope(x, s.X1, s.Sigma)+envelope(x, s.X2, s.Sigma), 0)
}

func (s *Superposition) GetParams() map[string]float64 {
	return map[string]float64{"x1": s.X1, "x2": s.X2, "sigma": s.Sigma}
}

func (s *Superposition) SetParam(n string, v float64) error {
	switch n {
	case "x1":
		s.X1 = v
	case "x2":
		s.X2 = v
	case "sigma":
		return setSigma(&s.Sigma, v)
	}
	return nil
}

func (*Superposition) initialState() {}
