package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/attsim/internal/automation"
	"github.com/san-kum/attsim/internal/config"
	"github.com/san-kum/attsim/internal/experiment"
	"github.com/san-kum/attsim/internal/export"
	"github.com/san-kum/attsim/internal/optim"
	"github.com/san-kum/attsim/internal/sim"
	"github.com/san-kum/attsim/internal/storage"
	"github.com/san-kum/attsim/internal/viz"
)

// loadScenario resolves --preset, a scenario file, or the defaults, in that
// order, then applies any flags the user set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case len(args) > 0:
		loaded, err := config.Load(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Lookup("dt") == nil {
		return cfg, nil
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.NumSteps = numSteps
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("controller") {
		cfg.Controller = controller
	}
	if flags.Changed("actuator") {
		cfg.Actuator = actuator
	}
	if flags.Changed("rate") {
		cfg.ControlRateHz = rateHz
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, nil)
	if err := exp.Setup(); err != nil {
		return err
	}
	if traceEvery > 0 {
		exp.GetSimulator().AddObserver(experiment.NewTraceObserver(nil, traceEvery, cfg.NumSteps))
	}

	start := time.Now()
	result, runErr := exp.Run(cmd.Context())
	elapsed := time.Since(start)
	if runErr != nil && result == nil {
		return runErr
	}
	if runErr != nil {
		logrus.Warnf("run stopped early: %v", runErr)
	}

	fmt.Printf("completed %d steps in %v\n", len(result.Applied), elapsed)

	wheelSpeeds := exp.WheelSpeeds()
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Metadata(), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println(viz.MetricsTable("metrics", sortedKeys(result.Metrics), result.Metrics))
	if params := exp.ControllerParams(); params != nil {
		fmt.Println(viz.MetricsTable("controller", sortedKeys(params), params))
	}
	if len(wheelSpeeds) > 0 {
		fmt.Printf("wheel speeds [rpm]: %v\n", wheelSpeeds)
	}
	if h, ok := exp.WheelMomentum(); ok {
		fmt.Printf("wheel momentum [N m s]: [%.4g %.4g %.4g] (|h| = %.4g)\n", h[0], h[1], h[2], h.Norm())
	}
	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tDT\tINTEG\tCTRL\tACT\tFINAL_ERR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%s\t%s\t%.3e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumSteps,
			run.Dt,
			run.Integrator,
			run.Controller,
			run.Actuator,
			run.Metrics["final_attitude_error"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.States) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	result.Metrics = meta.Metrics
	return meta, result, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s/%s/%s)\n", meta.Scenario, meta.Integrator, meta.Controller, meta.Actuator)
	fmt.Printf("samples: %d\n\n", len(result.States))

	charts := []struct {
		caption string
		data    []float64
	}{
		{"|attitude error| [rad]", viz.Norms(result.AttitudeErrors)},
		{"|rate error| [rad/s]", viz.Norms(result.RateErrors)},
		{"|applied torque| [N m]", viz.Norms(result.Applied)},
	}
	for _, c := range charts {
		if len(c.data) == 0 {
			continue
		}
		fmt.Println(viz.PlotSeries(c.caption, c.data, 70, 10))
		fmt.Println()
	}
	return nil
}

func openOut() (io.Writer, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := openOut()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, result); err != nil {
		done()
		return err
	}
	return done()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := openOut()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, result); err != nil {
		done()
		return err
	}
	return done()
}

func exportPNG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if allPanel {
		paths, err := export.SaveAllPNG(args[1], result)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	}

	if err := export.SavePNG(args[1], result, series); err != nil {
		return fmt.Errorf("%w (series: %s)", err, strings.Join(export.SeriesNames(), ", "))
	}
	fmt.Println(args[1])
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	k := frameIdx
	if k < 0 {
		k += len(result.States)
	}
	if k < 0 || k >= len(result.States) {
		return fmt.Errorf("frame %d out of range [0, %d)", frameIdx, len(result.States))
	}

	svg := export.FrameSVG(result.States[k].Q, 60, 24, 4)
	return os.WriteFile(args[1], []byte(svg), 0644)
}

func replayRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewReplayModel(meta.Scenario, result), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDYNAMICS\tCTRL\tACT\tREF\tDURATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1fs\n",
			name, p.Dynamics, p.Controller, p.Actuator, p.Reference, p.Duration())
	}
	return w.Flush()
}

func printGain(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if err := config.ValidateInertia(cfg.Inertia); err != nil {
		return err
	}

	k, err := experiment.Gain(cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("K (tau = -K [eAtt; eW])"))
	for _, row := range k {
		for j, v := range row {
			if j == 3 {
				fmt.Print(" |")
			}
			fmt.Printf(" %10.4f", v)
		}
		fmt.Println()
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	variants, err := experiment.ParamSweep(base, param, values)
	if err != nil {
		return err
	}

	results, err := experiment.RunBatch(cmd.Context(), nil, variants, workers)
	if err != nil {
		return err
	}

	printComparison(variants, results)
	return nil
}

func tuneScenario(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(grid))
	ranges := make([][]float64, 0, len(grid))
	for _, entry := range grid {
		name, list, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid grid %q, want param=v1,v2", entry)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return fmt.Errorf("invalid grid value in %q: %w", entry, err)
			}
			vals = append(vals, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, vals)
	}

	best, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), base, metric, workers)
	if err != nil {
		return err
	}

	fmt.Printf("best: %s\n%s = %.6e\n", best.Label, metric, best.Value)
	return nil
}

func runCampaign(cmd *cobra.Command, args []string) error {
	c, err := automation.LoadCampaign(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	results, runErr := automation.RunCampaign(cmd.Context(), c, nil, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENARIO\tRUN_ID\tFINAL_ERR\tEFFORT")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4e\t%.4e\n",
			i+1, r.Name, r.RunID,
			r.Result.Metrics["final_attitude_error"],
			r.Result.Metrics["control_effort"],
		)
	}
	w.Flush()
	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), base, automation.MonteCarloConfig{
		NumTrials:   trials,
		AngleSpread: angleSpread,
		RateSpread:  rateSpread,
		Seed:        seed,
		Threshold:   threshold,
		Workers:     workers,
	}, nil)
	if err != nil {
		return err
	}

	errs := make([]float64, len(results))
	worst := 0
	for i, r := range results {
		errs[i] = r.FinalError
		if r.FinalError > results[worst].FinalError {
			worst = i
		}
	}
	converged, diverged := automation.MonteCarloStats(results)

	fmt.Printf("%s: %d trials, %d converged, %d not converged (threshold %g rad)\n",
		base.Name, len(results), converged, diverged, threshold)
	if len(results) > 0 {
		w := results[worst]
		fmt.Printf("worst trial %d: final error %.4e, w0 = %v\n", w.TrialID, w.FinalError, w.InitState.W)
		fmt.Println(viz.SparklineChart(errs, 60))
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	var scenario []string
	names := args
	if len(args) > 0 && (strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml")) {
		scenario, names = args[:1], args[1:]
	}
	if len(names) == 0 {
		names = []string{config.IntegratorEuler, config.IntegratorRK4}
	}

	base, err := loadScenario(cmd, scenario)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", base.Name, base.Dt, base.Duration())

	variants := experiment.IntegratorVariants(base, names)
	results, err := experiment.RunBatch(cmd.Context(), nil, variants, 0)
	if err != nil {
		return err
	}

	printComparison(variants, results)
	return nil
}

func printComparison(variants []experiment.Variant, results []*sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tERR_RMS\tFINAL_ERR\tEFFORT\tENERGY_DRIFT\tFINAL_|w|")
	for i, v := range variants {
		r := results[i]
		final, _ := r.Final()
		fmt.Fprintf(w, "%s\t%.4e\t%.4e\t%.4e\t%.4e\t%.4e\n",
			v.Label,
			r.Metrics["attitude_error_rms"],
			r.Metrics["final_attitude_error"],
			r.Metrics["control_effort"],
			r.Metrics["energy_drift"],
			final.W.Norm(),
		)
	}
	w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
