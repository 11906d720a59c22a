package physics

import (
	"strings"

	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
)

// Potential is a closed family of potential-energy profiles.
type Potential interface {
	dynamo.Configurable
	Tag() string
	At(x float64) float64
	potential()
}

// BuildPotential samples p on every grid position. A nil p is Free.
func BuildPotential(g *grid.Grid, p Potential) []float64 {
	if p == nil {
		p = &Free{}
	}
	v := make([]float64, g.Len())
	for i, x := range g.X {
		v[i] = p.At(x)
	}
	return v
}

// ParsePotential selects a variant by tag, starting from its defaults and
// applying params by name. Unknown tags yield Free; unknown params are
// ignored.
func ParsePotential(tag string, params map[string]float64) (Potential, error) {
	var p Potential
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "pozo", "well":
		p = NewWell()
	case "barrera", "barrier":
		p = NewBarrier()
	case "armonic", "armonico", "harmonic":
		p = NewHarmonic()
	case "doble_pozo", "double_well", "double-well", "doublewell":
		p = NewDoubleWell()
	default:
		p = &Free{}
	}
	if err := applyParams(p, params); err != nil {
		return nil, err
	}
	return p, nil
}

// applyParams lowercases names before SetParam, so variants match lowercase
// names only.
func applyParams(c dynamo.Configurable, params map[string]float64) error {
	for name, value := range params {
		if err := c.SetParam(strings.ToLower(name), value); err != nil {
			return err
		}
	}
	return nil
}

// Free is V(x) = 0.
type Free struct{}

func (*Free) Tag() string                    { return "libre" }
func (*Free) At(float64) float64             { return 0 }
func (*Free) GetParams() map[string]float64  { return map[string]float64{} }
func (*Free) SetParam(string, float64) error { return nil }
func (*Free) potential()                     {}

// Well is 0 inside [XMin, XMax] and VOut outside.
type Well struct {
	XMin, XMax, VOut float64
}

func NewWell() *Well {
	return &Well{-0.5, 0.5, 10.0}
}

func (*Well) Tag() string { return "pozo" }

func (w *Well) At(x float64) float64 {
	if x >= w.XMin && x <= w.XMax {
		return 0
	}
	return w.VOut
}

func (w *Well) GetParams() map[string]float64 {
	return map[string]float64{"x_min": w.XMin, "x_max": w.XMax, "V_out": w.VOut}
}

func (w *Well) SetParam(n string, v float64) error {
	switch n {
	case "x_min":
		w.XMin = v
	case "x_max":
		w.XMax = v
	case "v_out":
		w.VOut = v
	}
	return nil
}

func (*Well) potential() {}

// Barrier is V0 inside [XMin, XMax] and 0 outside.
type Barrier struct {
	XMin, XMax, V0 float64
}

func NewBarrier() *Barrier {
	return &Barrier{-0.5, 0.5, 5.0}
}

func (*Barrier) Tag() string { return "barrera" }

func (b *Barrier) At(x float64) float64 {
	if x >= b.XMin && x <= b.XMax {
		return b.V0
	}
	return 0
}

func (b *Barrier) GetParams() map[string]float64 {
	return map[string]float64{"x_min": b.XMin, "x_max": b.XMax, "V0": b.V0}
}

func (b *Barrier) SetParam(n string, v float64) error {
	switch n {
	case "x_min":
		b.XMin = v
	case "x_max":
		b.XMax = v
	case "v0":
		b.V0 = v
	}
	return nil
}

func (*Barrier) potential() {}

// Harmonic is 0.5*K*(x-X0)^2.
type Harmonic struct {
	K, X0 float64
}

func NewHarmonic() *Harmonic {
	return &Harmonic{1.0, 0.0}
}

func (*Harmonic) Tag() string { return "armonic" }

func (h *Harmonic) At(x float64) float64 {
	d := x - h.X0
	return 0.5 * h.K * d * d
}

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"k": h.K, "x0": h.X0}
}

func (h *Harmonic) SetParam(n string, v float64) error {
	switch n {
	case "k":
		h.K = v
	case "x0":
		h.X0 = v
	}
	return nil
}

func (*Harmonic) potential() {}
