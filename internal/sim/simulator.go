package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/qsim/internal/dynamo"
)

// Simulator applies a propagator a fixed number of times to a wavefunction
// it owns for the duration of Run.
type Simulator struct {
	prop      dynamo.Propagator
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(prop dynamo.Propagator) *Simulator {
	return &Simulator{
		prop:      prop,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run evolves psi in place for cfg.Steps steps. Metrics and observers see the
// initial state at t=0 and the state after every step.
func (s *Simulator) Run(ctx context.Context, psi dynamo.Wavefunction, cfg Config) (*Result, error) {
	if err := s.validate(psi, cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	dt := s.prop.Dt()
	t := 0.0
	s.notify(psi, t)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.prop.Step(psi)
		result.StepsTaken++
		t = float64(result.StepsTaken) * dt

		if cfg.ValidateState && !psi.IsValid() {
			return result, &dynamo.SimulationError{Step: result.StepsTaken, Time: t, Wrapped: dynamo.ErrInvalidState}
		}

		s.notify(psi, t)
	}

	result.Time = t
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) notify(psi dynamo.Wavefunction, t float64) {
	for _, m := range s.metrics {
		m.Observe(psi, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(psi, t)
	}
}

func (s *Simulator) validate(psi dynamo.Wavefunction, cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", cfg.Steps)
	}
	if dt := s.prop.Dt(); !(dt > 0) {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}
	if len(psi) != s.prop.Len() {
		return fmt.Errorf("%w: state has %d samples, propagator %d", dynamo.ErrDimensionMismatch, len(psi), s.prop.Len())
	}
	return nil
}
