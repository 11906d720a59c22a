package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/experiment"
	"github.com/san-kum/qsim/internal/store"
	"github.com/san-kum/qsim/internal/viz"
	"github.com/spf13/cobra"
)

// loadConfig layers defaults, preset, config file and explicit flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		logger.Debug("loaded preset", "name", preset)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debug("loaded config file", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("L") {
		cfg.L = length
	}
	if flags.Changed("N") {
		cfg.N = samples
	}
	if flags.Changed("T") {
		cfg.T = duration
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	var err error
	if cfg.Potential, err = overrideSpec(cmd, cfg.Potential, "potential", potential, "vparam", vParams); err != nil {
		return nil, err
	}
	if cfg.InitialState, err = overrideSpec(cmd, cfg.InitialState, "state", state, "sparam", stateParams); err != nil {
		return nil, err
	}
	if cfg.Metric, err = overrideSpec(cmd, cfg.Metric, "metric", metric, "mparam", metricArgs); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideSpec(cmd *cobra.Command, spec *config.Spec, tagFlag, tag, paramFlag string, params map[string]string) (*config.Spec, error) {
	flags := cmd.Flags()
	if flags.Changed(tagFlag) {
		spec = config.NewSpec(tag, nil)
	}
	if !flags.Changed(paramFlag) {
		return spec, nil
	}
	if spec == nil {
		return nil, fmt.Errorf("--%s requires --%s or a configured %s", paramFlag, tagFlag, tagFlag)
	}
	if spec.Params == nil {
		spec.Params = make(map[string]float64, len(params))
	}
	for k, raw := range params {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("--%s %s: %w", paramFlag, k, err)
		}
		spec.Params[k] = v
	}
	return spec, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	out, err := experiment.Run(ctx, cfg)
	if err != nil {
		return err
	}
	r := out.Results
	logger.Info("run complete", "steps", r.Steps, "elapsed", time.Since(start))

	if csvFile != "" {
		f, err := os.Create(csvFile)
		if err != nil {
			return err
		}
		if err := store.ExportCSV(f, out); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Debug("wrote samples", "path", csvFile, "rows", len(out.Psi))
	}

	if jsonOut {
		return store.ExportJSON(cmd.OutOrStdout(), out, withState)
	}

	d := out.Diagnostics
	fmt.Fprintln(cmd.OutOrStdout(), viz.Panel(r.Model,
		[]string{"L", "N", "T", "dt", "steps", "prob_region", "prob_total", "<x>", "sigma_x", "<k>", "sigma_k", "norm_drift"},
		[]string{
			fmt.Sprintf("%g", r.L),
			fmt.Sprintf("%d", r.N),
			fmt.Sprintf("%g", r.T),
			fmt.Sprintf("%g", r.Dt),
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%.6f", r.ProbRegion),
			fmt.Sprintf("%.6f", r.ProbTotal),
			fmt.Sprintf("%.4f", d.MeanX),
			fmt.Sprintf("%.4f", d.SigmaX),
			fmt.Sprintf("%.4f", d.MeanK),
			fmt.Sprintf("%.4f", d.SigmaK),
			fmt.Sprintf("%.2e", out.Metrics["norm_drift"]),
		}))
	return nil
}

func plotExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	out, err := experiment.Run(ctx, cfg)
	if err != nil {
		return err
	}

	const width = 72
	chart := asciigraph.PlotMany(
		[][]float64{viz.Downsample(out.Initial.Density(), width), viz.Downsample(out.Psi.Density(), width)},
		asciigraph.Height(15),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("|psi|^2 on [%g, %g]: t=0 blue, t=%g red", out.X[0], out.X[len(out.X)-1], out.Results.T)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), chart)
	fmt.Fprintf(cmd.OutOrStdout(), "\nprob_region=%.6f prob_total=%.6f\n", out.Results.ProbRegion, out.Results.ProbTotal)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	setup, err := experiment.New(cfg).Prepare()
	if err != nil {
		return err
	}

	title := setup.Model
	if setup.Fields.Potential != nil {
		title += " / " + setup.Fields.Potential.Tag()
	}
	m := viz.NewModel(title, setup.Grid, setup.Propagator, setup.Psi, setup.Fields.Measure, setup.Params.Steps)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = experiment.NewRegistry().ListIntegrators()
	}

	ctx, cancel := signalContext()
	defer cancel()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "integrator\tdt\terror(dt)\terror(dt/2)\tratio\torder")
	for _, name := range args {
		c, err := experiment.Converge(ctx, cfg, name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%g\t%.3e\t%.3e\t%.2f\t%.2f\n", c.Integrator, c.Dt, c.Coarse, c.Fine, c.Ratio, c.Order())
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfgs := make([]*config.Config, len(args))
	for i, path := range args {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfgs[i] = cfg
	}

	ctx, cancel := signalContext()
	defer cancel()

	outcomes, err := experiment.RunBatch(ctx, cfgs)
	if err != nil {
		return err
	}
	for _, out := range outcomes {
		if err := store.ExportResultLine(cmd.OutOrStdout(), out.Results); err != nil {
			return err
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "preset\tpotential\tstate\tL\tN\tT\tdt")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%d\t%g\t%g\n", name, specTag(cfg.Potential), specTag(cfg.InitialState), cfg.L, cfg.N, cfg.T, cfg.Dt)
	}
	return w.Flush()
}

func specTag(s *config.Spec) string {
	if s == nil {
		return "-"
	}
	return s.Tipo
}
