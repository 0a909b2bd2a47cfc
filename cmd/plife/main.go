package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plife/internal/analysis"
	"github.com/san-kum/plife/internal/automation"
	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/export"
	"github.com/san-kum/plife/internal/gui"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/sim"
	"github.com/san-kum/plife/internal/storage"
	"github.com/san-kum/plife/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	debug      bool
	configFile string
	preset     string
	mode       string
	backend    string
	workers    int
	seed       int64
	layout     string
	particles  int
	friction   float32
	withAudio  bool

	runTicks      int
	divergeTicks  int
	snapshotTicks int
	sweepTicks    int
	benchTicks    int
	sampleEvery   int
	exportPath    string
	metricName    string
	phaseX        string
	phaseY        string
	delta         float32
	svgPath       string
	plotSVG       string
	svgWidth      int
	sweepParam    string
	sweepMin      float32
	sweepMax      float32
	sweepSteps    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plife",
		Short: "particle life simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.RunInteractive(gui.Options{Audio: withAudio})
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".plife", "data directory")
	pf.BoolVar(&debug, "debug", false, "write logs to <data>/logs/plife.log")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&mode, "mode", "emergence", "physics mode (real|emergence)")
	pf.StringVar(&backend, "backend", "auto", "compute backend ("+strings.Join(compute.Names(), "|")+")")
	pf.IntVar(&workers, "workers", 0, "cpu workers (0 = one per cpu)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&layout, "layout", "uniform", "spawn layout (uniform|perlin)")
	pf.IntVar(&particles, "particles", config.DefaultParticlesPerColor, "particles per color")
	pf.Float32Var(&friction, "friction", life.DefaultFriction, "velocity damping in emergence mode")
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify kinetic energy")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify kinetic energy")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save a report",
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&runTicks, "ticks", 500, "number of ticks")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 5, "ticks between metric samples")
	runCmd.Flags().StringVar(&exportPath, "export", "", "also write the report as json")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare backends and worker counts",
		RunE:  benchBackends,
	}
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 50, "ticks per backend")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric series of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis and phase portrait of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&metricName, "metric", "kinetic_energy", "series to analyze")
	analyzeCmd.Flags().StringVar(&phaseX, "x", "kinetic_energy", "phase portrait x series")
	analyzeCmd.Flags().StringVar(&phaseY, "y", "spread", "phase portrait y series")

	divergeCmd := &cobra.Command{
		Use:   "diverge",
		Short: "estimate the lyapunov exponent of a configuration",
		RunE:  divergeRun,
	}
	divergeCmd.Flags().IntVar(&divergeTicks, "ticks", 200, "number of ticks")
	divergeCmd.Flags().Float32Var(&delta, "delta", 1, "initial displacement of the first particle")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportPath, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "tick headless and write the world as svg",
		RunE:  snapshotWorld,
	}
	snapshotCmd.Flags().IntVar(&snapshotTicks, "ticks", 100, "ticks before the snapshot")
	snapshotCmd.Flags().StringVar(&svgPath, "out", "plife.svg", "output file")
	snapshotCmd.Flags().IntVar(&svgWidth, "width", 1000, "image width in pixels")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario and save every step",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one physics parameter",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", automation.ParamFriction, "parameter to sweep")
	sweepCmd.Flags().Float32Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float32Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&sweepTicks, "ticks", 100, "ticks per value")

	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write each series as <svg>-<name>.svg")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, benchCmd, listCmd, plotCmd, analyzeCmd, divergeCmd, exportCmd, presetsCmd, snapshotCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends the log package to a file under the data directory
// when debugging and discards it otherwise, so terminal views stay clean.
func setupLogging(debug bool) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "plife.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("plife starting, pid %d", os.Getpid())
	return nil
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "emergence"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("layout") {
		cfg.Layout = layout
	}
	if flags.Changed("particles") {
		for color := range cfg.Particles {
			cfg.Particles[color] = particles
		}
		if len(cfg.Particles) == 0 {
			cfg.Particles = map[string]int{"red": particles, "green": particles, "blue": particles, "yellow": particles}
		}
	}
	if flags.Changed("friction") {
		cfg.Physics.Friction = friction
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, name, gui.Options{Audio: withAudio})
}

func runLive(cmd *cobra.Command, args []string) error {
	if preset == "" && configFile == "" {
		return viz.RunInteractive()
	}

	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	world, err := cfg.Build()
	if err != nil {
		return err
	}
	defer world.Close()
	return viz.RunLive(world, name)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	world, err := cfg.Build()
	if err != nil {
		return err
	}
	defer world.Close()

	runner := sim.NewRunner(world)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s: %d particles, %s mode, %s\n", name, world.Len(), world.Mode(), world.Backend().Name())
	start := time.Now()

	result, err := runner.Run(ctx, sim.RunConfig{Ticks: runTicks, SampleEvery: sampleEvery})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		fmt.Printf("interrupted after %d ticks\n", result.Ticks)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:      name,
		Mode:        cfg.Mode,
		Backend:     world.Backend().Name(),
		Seed:        cfg.Seed,
		Particles:   world.Len(),
		SampleEvery: sampleEvery,
		TickAverage: result.TickAverage,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d, average tick: %v\n", result.Ticks, result.TickAverage)
	fmt.Println("\nmetrics:")
	for _, n := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}

	if energy := result.Series["kinetic_energy"]; len(energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("kinetic energy")))
	}

	if exportPath != "" {
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		if err := storage.ExportJSON(exportPath, *meta, result); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", exportPath)
	}
	return nil
}

type benchCase struct {
	backend string
	workers int
}

func benchCases() []benchCase {
	cases := []benchCase{{"serial", 1}, {"kernel", runtime.NumCPU()}}
	seen := map[int]bool{}
	for _, w := range []int{1, 2, 7, runtime.NumCPU()} {
		if !seen[w] {
			seen[w] = true
			cases = append(cases, benchCase{"cpu", w})
		}
	}
	return append(cases, benchCase{"cuda", 0}, benchCase{"opengl", 0})
}

func benchBackends(cmd *cobra.Command, args []string) error {
	base, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if base.Seed == 0 {
		base.Seed = time.Now().UnixNano()
	}

	fmt.Printf("benchmarking %s over %d ticks\n\n", name, benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tPARTICLES\tAVG TICK\tTICKS/SEC")

	for _, bc := range benchCases() {
		cfg := base.Clone()
		cfg.Backend, cfg.Workers = bc.backend, bc.workers

		world, err := cfg.Build()
		if err != nil {
			fmt.Fprintf(w, "%s\t-\tunavailable\t-\n", bc.backend)
			continue
		}
		result, err := sim.NewRunner(world).Run(context.Background(), sim.RunConfig{Ticks: benchTicks})
		label, n := world.Backend().Name(), world.Len()
		world.Close()
		if err != nil {
			return err
		}

		perSec := 0.0
		if result.TickAverage > 0 {
			perSec = float64(time.Second) / float64(result.TickAverage)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.1f\n", label, n, result.TickAverage.Round(time.Microsecond), perSec)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tPRESET\tMODE\tBACKEND\tPARTICLES\tTICKS\tAVG TICK\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%v\t%s\n",
			run.ID,
			run.Preset,
			run.Mode,
			run.Backend,
			run.Particles,
			run.Ticks,
			run.TickAverage.Round(time.Microsecond),
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

// resolveRun picks the run named in args, or the latest one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return st.Latest()
}

func loadRun(args []string) (*storage.RunMetadata, *storage.Series, error) {
	st := storage.New(dataDir)
	runID, err := resolveRun(st, args)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args)
	if err != nil {
		return err
	}
	if len(series.Ticks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s (%s)\n", meta.Preset, meta.Mode)
	fmt.Printf("samples: %d, every %d ticks\n\n", len(series.Ticks), meta.SampleEvery)

	for _, name := range sortedKeys(series.Columns) {
		data := series.Columns[name]
		if len(data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(name)))
		fmt.Println()

		if plotSVG != "" {
			path := strings.TrimSuffix(plotSVG, ".svg") + "-" + name + ".svg"
			if err := export.WriteFile(path, export.SeriesToSVG(data, 800, 200, "#00ff88")); err != nil {
				return err
			}
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args)
	if err != nil {
		return err
	}

	data := series.Columns[metricName]
	if len(data) < 4 {
		return fmt.Errorf("series %q has %d samples, need at least 4", metricName, len(data))
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("series: %s\n\n", metricName)

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(ps) > 8 {
		plotData = ps[:len(ps)/2]
	}
	fmt.Println(asciigraph.Plot(plotData, asciigraph.Height(15), asciigraph.Width(80), asciigraph.Caption("power spectrum ("+metricName+")")))
	fmt.Println()

	if period, ok := analysis.DominantPeriod(data); ok {
		every := max(meta.SampleEvery, 1)
		fmt.Printf("dominant period: %.1f samples (%.1f ticks)\n", period, period*float64(every))
	} else {
		fmt.Println("no dominant period")
	}

	xs, ys := series.Columns[phaseX], series.Columns[phaseY]
	if len(xs) > 1 && len(ys) > 1 {
		portrait := analysis.NewPhasePortrait(phaseX, xs, phaseY, ys)
		fmt.Printf("\nphase portrait: %s vs %s\n", phaseY, phaseX)
		fmt.Println(portrait.ASCII(60, 20))
	}
	return nil
}

func divergeRun(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ref, err := cfg.Build()
	if err != nil {
		return err
	}
	defer ref.Close()

	start := ref.Snapshot()
	if len(start) == 0 {
		return fmt.Errorf("%s has no particles", name)
	}
	moved := append(start[:0:0], start...)
	moved[0].Position[0] += delta

	backend, err := compute.New(cfg.Backend, cfg.Workers)
	if err != nil {
		return err
	}
	perturbed, err := sim.New(moved, ref.Forces(), ref.Mode(), sim.Config{
		Params:  ref.Params(),
		Backend: backend,
		Seed:    uint64(cfg.Seed),
	})
	if err != nil {
		backend.Cleanup()
		return err
	}
	defer perturbed.Close()

	d0 := analysis.Separation(start, moved)
	fmt.Printf("tracking %s: %d particles, %d ticks, d0 = %.3g\n\n", name, len(start), divergeTicks, d0)

	seps := analysis.TrackDivergence(ref, perturbed, divergeTicks)
	fmt.Println(asciigraph.Plot(seps, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("separation")))
	fmt.Printf("\nlyapunov exponent: %.5f per tick\n", analysis.LyapunovExponent(seps, d0))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args)
	if err != nil {
		return err
	}
	result := &sim.Result{
		Ticks:       meta.Ticks,
		TickAverage: meta.TickAverage,
		SampleTicks: series.Ticks,
		Series:      series.Columns,
		Metrics:     meta.Metrics,
	}
	if exportPath != "" {
		return storage.ExportJSON(exportPath, *meta, result)
	}
	return storage.WriteJSON(os.Stdout, *meta, result)
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg := config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tLAYOUT\tPARTICLES\tFORCES")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		total := len(cfg.Bodies)
		for _, n := range cfg.Particles {
			total += n
		}
		forces := fmt.Sprintf("%d entries", len(cfg.Forces))
		if cfg.RandomForces != nil {
			forces = fmt.Sprintf("random [%.2f, %.2f]", cfg.RandomForces.Min, cfg.RandomForces.Max)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", name, cfg.Mode, cfg.Layout, total, forces)
	}
	return w.Flush()
}

func snapshotWorld(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	world, err := cfg.Build()
	if err != nil {
		return err
	}
	defer world.Close()

	for i := 0; i < snapshotTicks; i++ {
		world.Tick()
	}
	if err := export.WriteFile(svgPath, export.SnapshotSVG(world, svgWidth)); err != nil {
		return err
	}
	fmt.Printf("%s after %d ticks written to %s\n", name, snapshotTicks, svgPath)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tTICKS\tAVG TICK\tKINETIC ENERGY")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%.4f\n", r.Name, r.RunID, r.Result.Ticks, r.Result.TickAverage.Round(time.Microsecond), r.Result.Metrics["kinetic_energy"])
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s on %s: %d values in [%g, %g], %d ticks each\n\n", sweepParam, name, sweepSteps, sweepMin, sweepMax, sweepTicks)
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Ticks:    sweepTicks,
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tMEAN KE\tFINAL KE\tFINAL SPREAD\tAVG TICK")
	means := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.2f\t%.2fms\n", r.ParamValue, r.MeanEnergy, r.FinalEnergy, r.FinalSpread, r.TickAverage*1000)
		means = append(means, r.MeanEnergy)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("mean kinetic energy by "+sweepParam)))
	}
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
