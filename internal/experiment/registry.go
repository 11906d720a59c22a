package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
	"github.com/san-kum/qsim/internal/integrators"
	"github.com/san-kum/qsim/internal/metrics"
)

const (
	ModelSchrodinger1D = "schrodinger_1d"
	DefaultIntegrator  = "split_step"
)

type PropagatorFactory func(g *grid.Grid, v []float64, dt float64) dynamo.Propagator

type Registry struct {
	models      map[string]bool
	integrators map[string]PropagatorFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]bool),
		integrators: make(map[string]PropagatorFactory),
	}

	r.models[ModelSchrodinger1D] = true

	r.integrators["split_step"] = func(g *grid.Grid, v []float64, dt float64) dynamo.Propagator {
		return integrators.NewSplitStep(g, v, dt)
	}
	r.integrators["lie"] = func(g *grid.Grid, v []float64, dt float64) dynamo.Propagator {
		return integrators.NewLie(g, v, dt)
	}

	return r
}

// ResolveModel normalizes a model tag. An empty tag is schrodinger_1d.
func (r *Registry) ResolveModel(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = ModelSchrodinger1D
	}
	if !r.models[name] {
		return "", &dynamo.ConfigError{Field: "modelo", Value: name, Wrapped: dynamo.ErrUnsupportedModel}
	}
	return name, nil
}

// GetIntegrator returns the factory for name. An empty name is split_step.
func (r *Registry) GetIntegrator(name string) (PropagatorFactory, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultIntegrator
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %w", dynamo.Invalid("integrador", name))
	}
	return fn, nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics are tracked on every run in addition to the observables.
func (r *Registry) DefaultMetrics(g *grid.Grid) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewNormDrift(g.Dx),
		metrics.NewMirrorAsymmetry(g),
	}
}
