package physics

import "math"

// DoubleWell is the symmetric bistable profile A*x^4 - B*x^2, with minima at
// x = +-sqrt(B/(2A)) when A and B are positive.
type DoubleWell struct {
	A, B float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{1.0, 5.0}
}

func (*DoubleWell) Tag() string { return "doble_pozo" }

func (d *DoubleWell) At(x float64) float64 {
	x2 := x * x
	return d.A*x2*x2 - d.B*x2
}

// Minima returns the positions of the two wells, or ok=false when the
// profile has a single minimum.
func (d *DoubleWell) Minima() (left, right float64, ok bool) {
	if d.A <= 0 || d.B <= 0 {
		return 0, 0, false
	}
	r := math.Sqrt(d.B / (2 * d.A))
	return -r, r, true
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"a": d.A, "b": d.B}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "a":
		d.A = v
	case "b":
		d.B = v
	}
	return nil
}

func (*DoubleWell) potential() {}
