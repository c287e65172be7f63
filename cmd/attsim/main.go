package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	// scenario selection and overrides
	preset     string
	dt         float64
	numSteps   int
	integrator string
	controller string
	actuator   string
	rateHz     float64
	noSave     bool
	traceEvery int

	// export
	outPath  string
	series   string
	allPanel bool
	frameIdx int

	// sweep
	param   string
	values  []float64
	workers int

	// tune
	grid   []string
	metric string

	// montecarlo
	trials      int
	angleSpread float64
	rateSpread  float64
	seed        int64
	threshold   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "attsim",
		Short:         "spacecraft attitude simulation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scenario and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without storing the run")
	runCmd.Flags().IntVar(&traceEvery, "trace", 0, "log every Nth sample after the run (0 = off)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot error and torque history in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id] [out]",
		Short: "render series charts to image files",
		Args:  cobra.ExactArgs(2),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVar(&series, "series", "attitude_error", "series to plot")
	exportPNGCmd.Flags().BoolVar(&allPanel, "all", false, "write every series into the directory given as out")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [out.svg]",
		Short: "snapshot the body frame at one sample as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "sample index (negative counts from the end)")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	gainCmd := &cobra.Command{
		Use:   "gain [scenario.yaml]",
		Short: "print the LQR gain for a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printGain,
	}
	gainCmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "run a scenario in parallel over values of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&param, "param", "kp", "parameter to vary")
	sweepCmd.Flags().Float64SliceVar(&values, "values", []float64{0.5, 1, 2, 4}, "parameter values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "maximum concurrent runs (0 = unlimited)")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario.yaml]",
		Short: "grid-search parameters that minimize a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneScenario,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", []string{"kp=0.5,1,2,4", "kd=2,4,8"}, "param=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "attitude_error_rms", "metric to minimize")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "maximum concurrent runs (0 = unlimited)")

	campaignCmd := &cobra.Command{
		Use:   "campaign [campaign.yaml]",
		Short: "run a scripted sequence of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runCampaign,
	}
	campaignCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scenario.yaml]",
		Short: "run a scenario over dispersed initial conditions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addScenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&angleSpread, "angle-spread", 0.5, "max initial attitude offset [rad]")
	monteCarloCmd.Flags().Float64Var(&rateSpread, "rate-spread", 0.05, "max initial rate offset per axis [rad/s]")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 1, "random seed (0 = from clock)")
	monteCarloCmd.Flags().Float64Var(&threshold, "threshold", 0.01, "final attitude error counted as converged [rad]")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 0, "maximum concurrent runs (0 = unlimited)")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario.yaml] [integrator1] [integrator2] ...",
		Short: "compare integrators on one scenario",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportPNGCmd,
		exportSVGCmd, replayCmd, presetsCmd, gainCmd, sweepCmd, tuneCmd,
		campaignCmd, monteCarloCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep [s]")
	cmd.Flags().IntVar(&numSteps, "steps", 2000, "number of steps")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&controller, "controller", "pd", "controller")
	cmd.Flags().StringVar(&actuator, "actuator", "ideal", "actuator")
	cmd.Flags().Float64Var(&rateHz, "rate", 0, "control rate [Hz] (0 = every step)")
}
