package experiment

import (
	"math"

	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/dynamo"
)

// Safety bounds applied to every configuration before stepping.
const (
	MinSamples  = 64
	MaxSamples  = 2048
	MinDt       = 1e-4
	MaxDt       = 0.05
	MinDuration = 0.1
	MaxDuration = 20.0
	MaxSteps    = 5000
)

// Params are the effective run parameters after clamping.
type Params struct {
	L     float64
	N     int
	T     float64
	Dt    float64
	Steps int
}

// Clamp validates the scalar fields of cfg and clamps them to the safety
// bounds. Steps is round(T/dt) capped at MaxSteps; when the cap applies T is
// recomputed as Steps*Dt.
func Clamp(cfg *config.Config) (Params, error) {
	if cfg == nil {
		return Params{}, dynamo.ErrNilConfig
	}
	if cfg.N <= 0 {
		return Params{}, dynamo.Invalid("N", cfg.N)
	}
	if !(cfg.L > 0) || math.IsInf(cfg.L, 0) {
		return Params{}, dynamo.Invalid("L", cfg.L)
	}
	if math.IsNaN(cfg.T) {
		return Params{}, dynamo.Invalid("T", cfg.T)
	}
	if math.IsNaN(cfg.Dt) {
		return Params{}, dynamo.Invalid("dt", cfg.Dt)
	}

	p := Params{
		L:  cfg.L,
		N:  clampInt(cfg.N, MinSamples, MaxSamples),
		T:  clamp(cfg.T, MinDuration, MaxDuration),
		Dt: clamp(cfg.Dt, MinDt, MaxDt),
	}

	p.Steps = int(math.RoundToEven(p.T / p.Dt))
	if p.Steps > MaxSteps {
		p.Steps = MaxSteps
		p.T = float64(p.Steps) * p.Dt
	}
	return p, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
