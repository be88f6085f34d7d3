package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/driftsim/internal/config"
	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/experiment"
	"github.com/san-kum/driftsim/internal/ocean"
	"github.com/san-kum/driftsim/internal/sim"
	"github.com/san-kum/driftsim/internal/step"
	"github.com/san-kum/driftsim/internal/storage"
	"github.com/san-kum/driftsim/internal/viz"
)

var (
	dataDir       string
	verbose       bool
	dt            float64
	duration      float64
	seed          int64
	numParticles  int
	radius        float64
	depth         float64
	windFactor    float64
	windSpread    float64
	scheme        string
	terminalModel string
	maxAge        float64
	mixing        bool
	vertAdvection bool
	recordEvery   int
	configFile    string
	preset        string
)

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "driftsim",
		Short: "lagrangian particle transport simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".driftsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [field]",
		Short: "run a drift simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 10, "snapshot interval in steps (0 disables)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot active count and mean depth for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write recorded trajectories to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [field]",
		Short: "run with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "list field scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListScenarios() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, liveCmd, presetsCmd, fieldsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "run duration in seconds")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&numParticles, "n", config.DefaultN, "number of particles")
	cmd.Flags().Float64Var(&radius, "radius", 1000, "seed radius in metres")
	cmd.Flags().Float64Var(&depth, "z", 0, "seed depth in metres (<= 0)")
	cmd.Flags().Float64Var(&windFactor, "wind-factor", 0.02, "mean wind drift factor")
	cmd.Flags().Float64Var(&windSpread, "wind-spread", 0, "wind drift factor spread")
	cmd.Flags().StringVar(&scheme, "scheme", drift.SchemeEuler, "advection scheme (euler|runge-kutta)")
	cmd.Flags().StringVar(&terminalModel, "terminal", "passive", "terminal-velocity model")
	cmd.Flags().Float64Var(&maxAge, "max-age", 0, "retire particles older than this (seconds, 0 = never)")
	cmd.Flags().BoolVar(&mixing, "mixing", false, "enable turbulent vertical mixing")
	cmd.Flags().BoolVar(&vertAdvection, "vertical-advection", true, "enable vertical advection")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
}

// buildConfig resolves precedence: defaults < preset < config file < flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Field = args[0]
	}
	if cmd.Flags().Changed("dt") {
		cfg.Run.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Run.Duration = duration
	}
	if cmd.Flags().Changed("n") {
		cfg.Seed.N = numParticles
	}
	if cmd.Flags().Changed("radius") {
		cfg.Seed.Radius = radius
	}
	if cmd.Flags().Changed("z") {
		cfg.Seed.Z = depth
	}
	if cmd.Flags().Changed("wind-factor") {
		cfg.Seed.WindDriftFactor = windFactor
	}
	if cmd.Flags().Changed("wind-spread") {
		cfg.Seed.WindDriftSpread = windSpread
	}
	if cmd.Flags().Changed("scheme") {
		cfg.Drift.Scheme = scheme
	}
	if cmd.Flags().Changed("max-age") && maxAge > 0 {
		cfg.Drift.MaxAgeSeconds = &maxAge
	}
	if cmd.Flags().Changed("mixing") {
		cfg.Processes.TurbulentMixing = mixing
	}
	if cmd.Flags().Changed("vertical-advection") {
		cfg.Processes.VerticalAdvection = vertAdvection
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, terminalModel, log)
	runCfg := sim.Config{
		Dt:          cfg.Run.Dt,
		Duration:    cfg.Run.Duration,
		Seed:        seed,
		RecordEvery: recordEvery,
	}
	if err := exp.Setup(experiment.NewRegistry(), runCfg); err != nil {
		return err
	}

	log.Info().
		Str("field", cfg.Field).
		Int("particles", cfg.Seed.N).
		Float64("dt", cfg.Run.Dt).
		Float64("duration", cfg.Run.Duration).
		Msg("starting run")

	start := time.Now()
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Field, cfg.Drift.Scheme, cfg.Run.Dt, cfg.Run.Duration, seed, exp.Ensemble(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nfinal status:")
	fmt.Print(viz.StatusSummary(exp.Ensemble()))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	if len(result.Snapshots) > 0 {
		fmt.Println()
		fmt.Println(viz.PlotActive(result))
		fmt.Println()
		fmt.Println(viz.PlotMeanDepth(result))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	scenario, err := registry.GetScenario(cfg.Field)
	if err != nil {
		return err
	}
	terminal, err := registry.GetTerminalModel(terminalModel)
	if err != nil {
		return err
	}

	rng := sim.NewRNG(seed)
	ensemble, err := drift.Seed(cfg.ToSeedSpec(), rng)
	if err != nil {
		return err
	}

	pipeline := step.New(
		&ocean.CurrentAdvector{Currents: scenario.Sampler.Currents},
		&ocean.WindAdvector{},
		terminal,
		ocean.NewRandomWalkMixer(seed),
		&ocean.WaterColumnAdvector{},
	)
	if scenario.Sampler.Coast != nil {
		pipeline.Land = scenario.Sampler.Coast.Land
	}

	return viz.RunLive(pipeline, scenario.Sampler, ensemble, cfg.ToDrift(), cfg.Run.Dt)
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

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	bold.Fprintln(w, "ID\tFIELD\tPARTICLES\tSTEPS\tSTRANDED\tWHEN")
	for _, run := range runs {
		strandedCol := green("0")
		if n := run.Deactivated["stranded"]; n > 0 {
			strandedCol = red(fmt.Sprintf("%d", n))
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID, run.Field, run.Particles, run.StepsTaken,
			strandedCol, run.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(st.TrajectoryPath(args[0]))
	if err != nil {
		return fmt.Errorf("no trajectories recorded for %s (run with --record-every): %w", args[0], err)
	}
	defer f.Close()

	active, depths, err := readSeries(f)
	if err != nil {
		return err
	}

	fmt.Printf("run %s (%s, %d particles)\n\n", meta.ID, meta.Field, meta.Particles)
	fmt.Println(asciigraph.Plot(active,
		asciigraph.Height(12), asciigraph.Width(72), asciigraph.Caption("active particles")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(depths,
		asciigraph.Height(12), asciigraph.Width(72), asciigraph.Caption("mean depth (m)")))
	return nil
}

// readSeries folds the trajectory CSV into per-snapshot active counts and
// mean active depths.
func readSeries(f *os.File) (active, depths []float64, err error) {
	r := csv.NewReader(f)
	if _, err = r.Read(); err != nil { // header
		return nil, nil, err
	}

	var curTime string
	var nActive int
	var sumZ float64
	flush := func() {
		if curTime == "" {
			return
		}
		active = append(active, float64(nActive))
		if nActive > 0 {
			depths = append(depths, sumZ/float64(nActive))
		} else {
			depths = append(depths, 0)
		}
		nActive, sumZ = 0, 0
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if row[0] != curTime {
			flush()
			curTime = row[0]
		}
		if row[6] == "active" {
			z, _ := strconv.ParseFloat(row[4], 64)
			nActive++
			sumZ += z
		}
	}
	flush()
	return active, depths, nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMeta(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := os.Open(st.TrajectoryPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(os.Stdout, f)
	return err
}
