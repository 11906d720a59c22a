package experiment_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qsim/internal/analysis"
	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/experiment"
	"github.com/san-kum/qsim/internal/grid"
	"github.com/san-kum/qsim/internal/metrics"
)

// symmetryProbe records the worst mirror asymmetry over every step.
type symmetryProbe struct {
	g     *grid.Grid
	worst float64
	steps int
}

func (p *symmetryProbe) OnStep(psi dynamo.Wavefunction, t float64) {
	p.steps++
	p.worst = math.Max(p.worst, metrics.Asymmetry(p.g, psi.Density()))
}

// firstNorm captures the probability of the state handed to the first step.
type firstNorm struct {
	dx   float64
	seen bool
	p    float64
}

func (f *firstNorm) OnStep(psi dynamo.Wavefunction, t float64) {
	if !f.seen {
		f.seen, f.p = true, psi.Probability(f.dx)
	}
}

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.L, cfg.N, cfg.T, cfg.Dt = 20, 256, 1.0, 0.01
	return cfg
}

var _ = Describe("Clamp", func() {
	It("raises a small N to the minimum", func() {
		cfg := baseConfig()
		cfg.N = 10
		p, err := experiment.Clamp(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.N).To(Equal(64))
	})

	It("caps a huge N at the maximum", func() {
		cfg := baseConfig()
		cfg.N = 10_000_000
		p, err := experiment.Clamp(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.N).To(Equal(2048))
	})

	It("clamps dt into [1e-4, 0.05]", func() {
		cfg := baseConfig()
		cfg.Dt = 1.0
		p, _ := experiment.Clamp(cfg)
		Expect(p.Dt).To(Equal(0.05))

		cfg.Dt = 1e-9
		p, _ = experiment.Clamp(cfg)
		Expect(p.Dt).To(Equal(1e-4))

		cfg.Dt = -3
		p, _ = experiment.Clamp(cfg)
		Expect(p.Dt).To(Equal(1e-4))
	})

	It("clamps T into [0.1, 20]", func() {
		cfg := baseConfig()
		cfg.T = 1000
		p, _ := experiment.Clamp(cfg)
		Expect(p.T).To(BeNumerically("<=", 20.0))

		cfg.T = 0
		p, _ = experiment.Clamp(cfg)
		Expect(p.T).To(Equal(0.1))
		Expect(p.Steps).To(Equal(10))
	})

	It("caps the step count and reports the simulated time", func() {
		cfg := baseConfig()
		cfg.T, cfg.Dt = 1000, 0.001
		p, err := experiment.Clamp(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Steps).To(Equal(5000))
		Expect(p.T).To(Equal(5000 * p.Dt))
	})

	It("keeps T when round(T/dt) is within the cap", func() {
		cfg := baseConfig()
		cfg.T, cfg.Dt = 2.0, 0.01
		p, _ := experiment.Clamp(cfg)
		Expect(p.Steps).To(Equal(200))
		Expect(p.T).To(Equal(2.0))
	})

	DescribeTable("rejects invalid scalars",
		func(mutate func(*config.Config)) {
			cfg := baseConfig()
			mutate(cfg)
			_, err := experiment.Clamp(cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		},
		Entry("zero N", func(c *config.Config) { c.N = 0 }),
		Entry("negative N", func(c *config.Config) { c.N = -5 }),
		Entry("zero L", func(c *config.Config) { c.L = 0 }),
		Entry("infinite L", func(c *config.Config) { c.L = math.Inf(1) }),
		Entry("NaN T", func(c *config.Config) { c.T = math.NaN() }),
		Entry("NaN dt", func(c *config.Config) { c.Dt = math.NaN() }),
	)
})

var _ = Describe("Run", func() {
	ctx := context.Background()

	Context("hard failures", func() {
		It("rejects a nil configuration", func() {
			out, err := experiment.Run(ctx, nil)
			Expect(out).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrNilConfig))
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		})

		It("rejects an unsupported model", func() {
			cfg := baseConfig()
			cfg.Model = "foo"
			out, err := experiment.Run(ctx, cfg)
			Expect(out).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrUnsupportedModel))
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))

			var cfgErr *dynamo.ConfigError
			Expect(err).To(BeAssignableToTypeOf(cfgErr))
		})

		It("rejects a non-positive N", func() {
			cfg := baseConfig()
			cfg.N = 0
			out, err := experiment.Run(ctx, cfg)
			Expect(out).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		})

		It("rejects an unknown integrator", func() {
			cfg := baseConfig()
			cfg.Integrator = "rk4"
			out, err := experiment.Run(ctx, cfg)
			Expect(out).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		})

		It("rejects a non-positive sigma", func() {
			cfg := baseConfig()
			cfg.InitialState = config.NewSpec("gauss", map[string]float64{"sigma": 0})
			_, err := experiment.Run(ctx, cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		})

		It("aborts when the potential produces non-finite samples", func() {
			cfg := baseConfig()
			cfg.Potential = config.NewSpec("pozo", map[string]float64{"V_out": math.Inf(1)})
			out, err := experiment.Run(ctx, cfg)
			Expect(out).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})
	})

	Context("lenient fallbacks", func() {
		It("treats an unknown potential tag as free", func() {
			free := baseConfig()
			free.Potential = config.NewSpec("libre", nil)
			unknown := baseConfig()
			unknown.Potential = config.NewSpec("warp_field", map[string]float64{"V0": 50})
			absent := baseConfig()

			a, err := experiment.Run(ctx, free)
			Expect(err).NotTo(HaveOccurred())
			b, err := experiment.Run(ctx, unknown)
			Expect(err).NotTo(HaveOccurred())
			c, err := experiment.Run(ctx, absent)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Psi).To(Equal(a.Psi))
			Expect(c.Psi).To(Equal(a.Psi))
		})

		It("treats an unknown initial-state tag as a centered unit gauss", func() {
			gauss := baseConfig()
			gauss.InitialState = config.NewSpec("gauss", map[string]float64{"x0": 0, "sigma": 1})
			unknown := baseConfig()
			unknown.InitialState = config.NewSpec("coherent", map[string]float64{"x0": 3})

			a, err := experiment.Run(ctx, gauss)
			Expect(err).NotTo(HaveOccurred())
			b, err := experiment.Run(ctx, unknown)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Initial).To(Equal(a.Initial))
		})

		It("publishes the total probability for an unknown metric tag", func() {
			cfg := baseConfig()
			cfg.Metric = config.NewSpec("energy", map[string]float64{"x_min": 100, "x_max": 200})
			out, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Results.ProbRegion).To(Equal(out.Results.ProbTotal))
		})

		It("publishes the total probability when the metric is absent", func() {
			out, err := experiment.Run(ctx, baseConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Results.ProbRegion).To(Equal(out.Results.ProbTotal))
			Expect(out.Results.Control).To(Equal(out.Results.ProbRegion))
		})

		It("pins an empty region to zero rather than the total", func() {
			cfg := baseConfig()
			cfg.Metric = config.NewSpec("prob_region", map[string]float64{"x_min": 30, "x_max": 40})
			out, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Results.ProbRegion).To(Equal(0.0))
			Expect(out.Results.Control).To(Equal(0.0))
			Expect(out.Results.ProbTotal).To(BeNumerically("~", 1.0, 1e-6))
		})

		It("defaults an empty model tag to schrodinger_1d", func() {
			cfg := baseConfig()
			cfg.Model = ""
			out, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Results.Model).To(Equal("schrodinger_1d"))
		})
	})

	Context("results record", func() {
		It("reports the clamped parameters and executed steps", func() {
			cfg := baseConfig()
			cfg.N, cfg.Dt, cfg.T = 10, 1.0, 0.5
			out, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())

			r := out.Results
			Expect(r.Model).To(Equal("schrodinger_1d"))
			Expect(r.N).To(Equal(64))
			Expect(r.Dt).To(Equal(0.05))
			Expect(r.T).To(Equal(0.5))
			Expect(r.Steps).To(Equal(10))
			Expect(r.L).To(Equal(20.0))
			Expect(out.X).To(HaveLen(64))
			Expect(out.Psi).To(HaveLen(64))
		})

		It("reports T = steps*dt when the step cap applies", func() {
			cfg := baseConfig()
			cfg.N, cfg.T, cfg.Dt = 64, 1000, 0.001
			out, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Results.Steps).To(Equal(5000))
			Expect(out.Results.T).To(Equal(5000 * 0.001))
		})

		It("tracks norm drift and asymmetry metrics", func() {
			out, err := experiment.Run(ctx, baseConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Metrics).To(HaveKey("norm_drift"))
			Expect(out.Metrics).To(HaveKey("mirror_asymmetry"))
			Expect(out.Metrics["norm_drift"]).To(BeNumerically("<", 1e-9))
		})
	})

	Context("properties", func() {
		presets := config.ListPresets()

		for _, name := range presets {
			name := name
			It("holds normalization and bounds for preset "+name, func() {
				cfg := config.GetPreset(name)
				e := experiment.New(cfg)
				g, err := grid.New(cfg.L, cfg.N)
				Expect(err).NotTo(HaveOccurred())
				probe := &firstNorm{dx: g.Dx}
				e.AddObserver(probe)

				out, err := e.Run(ctx)
				Expect(err).NotTo(HaveOccurred())

				Expect(probe.seen).To(BeTrue())
				Expect(probe.p).To(BeNumerically("~", 1.0, 1e-9))
				Expect(out.Initial.Probability(g.Dx)).To(BeNumerically("~", 1.0, 1e-9))
				Expect(out.Results.ProbTotal).To(BeNumerically("~", 1.0, 1e-6))
				Expect(out.Results.ProbRegion).To(BeNumerically(">=", 0.0))
				Expect(out.Results.ProbRegion).To(BeNumerically("<=", out.Results.ProbTotal+1e-9))
			})
		}

		It("is deterministic", func() {
			cfg := config.GetPreset("tunneling")
			a, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Results).To(Equal(a.Results))
			Expect(b.Psi).To(Equal(a.Psi))
			Expect(b.X).To(Equal(a.X))
		})
	})

	Context("scenarios", func() {
		It("keeps a centered gauss symmetric under free evolution", func() {
			cfg := config.DefaultConfig()
			cfg.L, cfg.N, cfg.T, cfg.Dt = 20, 512, 2.0, 0.01
			cfg.Potential = config.NewSpec("libre", nil)
			cfg.InitialState = config.NewSpec("gauss", map[string]float64{"x0": 0, "sigma": 1})

			g, err := grid.New(cfg.L, cfg.N)
			Expect(err).NotTo(HaveOccurred())
			probe := &symmetryProbe{g: g}

			e := experiment.New(cfg)
			e.AddObserver(probe)
			out, err := e.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(out.Results.Steps).To(Equal(200))
			Expect(probe.steps).To(Equal(201))
			Expect(probe.worst).To(BeNumerically("<", 1e-6))
			Expect(out.Metrics["mirror_asymmetry"]).To(BeNumerically("<", 1e-6))
			Expect(metrics.Asymmetry(g, out.Psi.Density())).To(BeNumerically("<", 1e-6))
		})

		It("partially transmits a packet through a finite barrier", func() {
			cfg := config.DefaultConfig()
			cfg.Potential = config.NewSpec("barrera", map[string]float64{"x_min": -0.5, "x_max": 0.5, "V0": 5.0})
			cfg.InitialState = config.NewSpec("gauss_momentum", map[string]float64{"x0": -4.0, "sigma": 0.7, "k0": 2.0})
			cfg.Metric = config.NewSpec("prob_region", map[string]float64{"x_min": 0, "x_max": 5})

			out, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Results.ProbRegion).To(BeNumerically(">", 0.0))
			Expect(out.Results.ProbRegion).To(BeNumerically("<", 1.0))
			Expect(out.Results.Control).To(Equal(out.Results.ProbRegion))
		})

		It("moves a momentum packet right under free evolution", func() {
			cfg := baseConfig()
			cfg.L, cfg.N, cfg.T = 40, 512, 2.0
			cfg.InitialState = config.NewSpec("gauss_momentum", map[string]float64{"x0": -5, "sigma": 1, "k0": 2})

			out, err := experiment.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Diagnostics.MeanX).To(BeNumerically("~", -1.0, 1e-3))
			Expect(out.Diagnostics.MeanK).To(BeNumerically("~", 2.0, 1e-6))
		})
	})
})

var _ = Describe("RunBatch", func() {
	It("runs independent configurations and preserves order", func() {
		names := config.ListPresets()
		cfgs := make([]*config.Config, len(names))
		for i, name := range names {
			cfgs[i] = config.GetPreset(name)
		}

		outcomes, err := experiment.RunBatch(context.Background(), cfgs)
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes).To(HaveLen(len(cfgs)))

		for i, cfg := range cfgs {
			single, err := experiment.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes[i].Results).To(Equal(single.Results))
		}
	})

	It("fails the batch when one configuration is rejected", func() {
		bad := baseConfig()
		bad.Model = "heat_equation"
		outcomes, err := experiment.RunBatch(context.Background(), []*config.Config{baseConfig(), bad})
		Expect(err).To(MatchError(dynamo.ErrUnsupportedModel))
		Expect(outcomes).To(BeNil())
	})
})

var _ = Describe("Registry", func() {
	It("lists the available integrators", func() {
		Expect(experiment.NewRegistry().ListIntegrators()).To(Equal([]string{"lie", "split_step"}))
	})

	It("resolves model tags case-insensitively", func() {
		name, err := experiment.NewRegistry().ResolveModel(" Schrodinger_1D ")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("schrodinger_1d"))
	})
})

var _ = Describe("Prepare", func() {
	It("builds a normalized state and a matching propagator", func() {
		cfg := config.GetPreset("tunneling")
		Expect(cfg).NotTo(BeNil())

		setup, err := experiment.New(cfg).Prepare()
		Expect(err).NotTo(HaveOccurred())
		Expect(setup.Psi).To(HaveLen(setup.Params.N))
		Expect(setup.Potential).To(HaveLen(setup.Params.N))
		Expect(setup.Propagator.Len()).To(Equal(setup.Params.N))
		Expect(setup.Propagator.Dt()).To(Equal(setup.Params.Dt))
		Expect(setup.Psi.Norm(setup.Grid.Dx)).To(BeNumerically("~", 1, 1e-12))
	})

	It("applies params of an untagged initial state as a Gauss", func() {
		cfg, err := config.Parse([]byte(`{"estado_inicial": {"x0": 3, "sigma": 0.5}}`))
		Expect(err).NotTo(HaveOccurred())

		setup, err := experiment.New(cfg).Prepare()
		Expect(err).NotTo(HaveOccurred())
		Expect(analysis.MeanPosition(setup.Grid, setup.Psi)).To(BeNumerically("~", 3, 1e-9))
		Expect(analysis.PositionSpread(setup.Grid, setup.Psi)).To(BeNumerically("~", 0.5/math.Sqrt2, 1e-6))
	})

	It("ignores non-numeric extra keys in sub-specifications", func() {
		cfg, err := config.Parse([]byte(`{"potencial": {"tipo": "barrera", "V0": 5, "nota": "alta"}, "metrica": {"tipo": "prob_region", "x_min": "2"}}`))
		Expect(err).NotTo(HaveOccurred())

		out, err := experiment.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Results.ProbRegion).To(BeNumerically(">", 0))
		Expect(out.Results.ProbRegion).To(BeNumerically("<", 0.5))
	})

	It("rejects what Run rejects", func() {
		_, err := experiment.New(nil).Prepare()
		Expect(err).To(MatchError(dynamo.ErrNilConfig))
	})
})

var _ = Describe("Converge", func() {
	convergeConfig := func() *config.Config {
		cfg := baseConfig()
		cfg.N = 256
		cfg.T = 1
		cfg.Dt = 0.01
		cfg.Potential = config.NewSpec("armonico", nil)
		cfg.InitialState = config.NewSpec("gauss", map[string]float64{"x0": 1, "sigma": 0.8})
		return cfg
	}

	DescribeTable("estimates the temporal order",
		func(integrator string, lo, hi float64) {
			c, err := experiment.Converge(context.Background(), convergeConfig(), integrator)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.T).To(BeNumerically("~", 1, 1e-12))
			Expect(c.Ratio).To(BeNumerically(">=", lo))
			Expect(c.Ratio).To(BeNumerically("<=", hi))
		},
		Entry("split step", "split_step", 3.5, 4.5),
		Entry("lie", "lie", 1.6, 2.4),
	)

	It("rejects an unknown integrator", func() {
		_, err := experiment.Converge(context.Background(), convergeConfig(), "rk4")
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})
})
