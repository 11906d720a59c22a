package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile  string
	preset      string
	length      float64
	samples     int
	duration    float64
	dt          float64
	integrator  string
	potential   string
	state       string
	metric      string
	vParams     map[string]string
	stateParams map[string]string
	metricArgs  map[string]string
	jsonOut     bool
	withState   bool
	csvFile     string
	verbose     bool
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// main registers the qsim commands and executes the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "qsim",
		Short:         "1D Schrödinger split-step simulation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an experiment and print its results",
		Args:  cobra.NoArgs,
		RunE:  runExperiment,
	}
	addExperimentFlags(runCmd)
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full outcome as JSON")
	runCmd.Flags().BoolVar(&withState, "state-samples", false, "include final state samples in JSON output")
	runCmd.Flags().StringVar(&csvFile, "csv", "", "write final state samples to a CSV file")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot initial and final probability density",
		Args:  cobra.NoArgs,
		RunE:  plotExperiment,
	}
	addExperimentFlags(plotCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the evolution in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addExperimentFlags(liveCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge [integrator...]",
		Short: "measure the temporal convergence order of integrators",
		RunE:  runConverge,
	}
	addExperimentFlags(convergeCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [config...]",
		Short: "run several configuration files concurrently, one JSON line each",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, plotCmd, liveCmd, convergeCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addExperimentFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml or json)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&length, "L", 20, "domain length")
	f.IntVar(&samples, "N", 512, "number of grid points")
	f.Float64Var(&duration, "T", 5, "total time")
	f.Float64Var(&dt, "dt", 0.01, "timestep")
	f.StringVar(&integrator, "integrator", "", "integrator (split_step, lie)")
	f.StringVar(&potential, "potential", "", "potential tag (libre, pozo, barrera, armonico, doble_pozo)")
	f.StringToStringVar(&vParams, "vparam", nil, "potential parameters, e.g. V0=5,x_min=-0.5")
	f.StringVar(&state, "state", "", "initial state tag (gauss, gauss_momentum, superposicion)")
	f.StringToStringVar(&stateParams, "sparam", nil, "initial state parameters, e.g. x0=-2,k0=2")
	f.StringVar(&metric, "metric", "", "metric tag (prob_region)")
	f.StringToStringVar(&metricArgs, "mparam", nil, "metric parameters, e.g. x_min=0,x_max=10")
}
