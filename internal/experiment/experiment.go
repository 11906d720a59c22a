package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/qsim/internal/analysis"
	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
	"github.com/san-kum/qsim/internal/metrics"
	"github.com/san-kum/qsim/internal/physics"
	"github.com/san-kum/qsim/internal/sim"
)

// Results is the terminal record of one run.
type Results struct {
	Model      string  `json:"modelo"`
	L          float64 `json:"L"`
	N          int     `json:"N"`
	T          float64 `json:"T"`
	Dt         float64 `json:"dt"`
	Steps      int     `json:"steps"`
	ProbRegion float64 `json:"prob_region"`
	ProbTotal  float64 `json:"prob_total"`
	Control    float64 `json:"METRICA_CONTROL"`
}

// Outcome bundles the results with the final state and run diagnostics.
type Outcome struct {
	Results     Results
	X           []float64
	Psi         dynamo.Wavefunction
	Initial     dynamo.Wavefunction
	Metrics     map[string]float64
	Diagnostics analysis.Diagnostics
}

// Fields are the decoded sub-specifications of a configuration.
type Fields struct {
	Potential physics.Potential
	State     physics.InitialState
	Measure   metrics.Measure
}

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	observers []dynamo.Observer
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg, registry: NewRegistry()}
}

// AddObserver registers an observer of every intermediate state.
func (e *Experiment) AddObserver(o dynamo.Observer) { e.observers = append(e.observers, o) }

// Run is New(cfg).Run(ctx).
func Run(ctx context.Context, cfg *config.Config) (*Outcome, error) {
	return New(cfg).Run(ctx)
}

// Setup is a validated, clamped configuration with its grid, fields and
// propagator built, ready to evolve.
type Setup struct {
	Model      string
	Params     Params
	Grid       *grid.Grid
	Fields     Fields
	Potential  []float64
	Psi        dynamo.Wavefunction
	Propagator dynamo.Propagator
}

// Prepare validates and clamps cfg and builds everything needed to evolve it.
func (e *Experiment) Prepare() (*Setup, error) {
	if e.cfg == nil {
		return nil, dynamo.ErrNilConfig
	}

	model, err := e.registry.ResolveModel(e.cfg.Model)
	if err != nil {
		return nil, err
	}
	p, err := Clamp(e.cfg)
	if err != nil {
		return nil, err
	}
	factory, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}
	fields, err := Decode(e.cfg)
	if err != nil {
		return nil, err
	}

	g, err := grid.New(p.L, p.N)
	if err != nil {
		return nil, err
	}
	v := physics.BuildPotential(g, fields.Potential)

	return &Setup{
		Model:      model,
		Params:     p,
		Grid:       g,
		Fields:     fields,
		Potential:  v,
		Psi:        physics.BuildState(g, fields.State),
		Propagator: factory(g, v, p.Dt),
	}, nil
}

// Run validates and clamps the configuration, builds the grid and fields,
// evolves the state and measures it. Rejected configurations return no
// outcome.
func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	setup, err := e.Prepare()
	if err != nil {
		return nil, err
	}
	g, psi := setup.Grid, setup.Psi
	initial := psi.Clone()

	s := sim.New(setup.Propagator)
	for _, m := range e.registry.DefaultMetrics(g) {
		s.AddMetric(m)
	}
	for _, o := range e.observers {
		s.AddObserver(o)
	}

	simCfg := sim.DefaultConfig()
	simCfg.Steps = setup.Params.Steps
	res, err := s.Run(ctx, psi, simCfg)
	if err != nil {
		return nil, fmt.Errorf("propagation failed: %w", err)
	}

	psi.Normalize(g.Dx)
	obs := metrics.Evaluate(g, psi, setup.Fields.Measure)

	return &Outcome{
		Results: Results{
			Model:      setup.Model,
			L:          setup.Params.L,
			N:          setup.Params.N,
			T:          setup.Params.T,
			Dt:         setup.Params.Dt,
			Steps:      res.StepsTaken,
			ProbRegion: obs.Region,
			ProbTotal:  obs.Total,
			Control:    obs.Control,
		},
		X:           g.X,
		Psi:         psi,
		Initial:     initial,
		Metrics:     res.Metrics,
		Diagnostics: analysis.Summarize(g, psi),
	}, nil
}

// Decode turns the tagged sub-specifications into variants. Absent or
// unrecognized tags select the documented defaults.
func Decode(cfg *config.Config) (Fields, error) {
	var f Fields
	var err error

	if cfg.Potential != nil {
		if f.Potential, err = physics.ParsePotential(cfg.Potential.Tipo, cfg.Potential.Params); err != nil {
			return Fields{}, fmt.Errorf("potencial: %w", err)
		}
	}
	if cfg.InitialState != nil {
		if f.State, err = physics.ParseState(cfg.InitialState.Tipo, cfg.InitialState.Params); err != nil {
			return Fields{}, fmt.Errorf("estado_inicial: %w", err)
		}
	}
	if cfg.Metric != nil {
		f.Measure = metrics.ParseMeasure(cfg.Metric.Tipo, cfg.Metric.Params)
	}
	return f, nil
}
