package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/solarsys/internal/analysis"
	"github.com/san-kum/solarsys/internal/catalog"
	"github.com/san-kum/solarsys/internal/config"
	"github.com/san-kum/solarsys/internal/console"
	"github.com/san-kum/solarsys/internal/export"
	"github.com/san-kum/solarsys/internal/metrics"
	"github.com/san-kum/solarsys/internal/nbody"
	"github.com/san-kum/solarsys/internal/sim"
	"github.com/san-kum/solarsys/internal/storage"
	"github.com/san-kum/solarsys/internal/viz"
)

var (
	configFile  string
	preset      string
	archiveDir  string
	svgOut      string
	svgWidth    int
	svgHeight   int
	svgStroke   string
	svgBraille  bool
	frameRate   int
	stepsPerFPS int
	sweepDts    []float64
	sweepYears  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "solarsys",
		Short:         "gravitational n-body integrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMenu,
	}

	addGlobalFlags(rootCmd.PersistentFlags())

	visualizeCmd := &cobra.Command{
		Use:   "visualize",
		Short: "run in trace mode, writing every body every step",
		Args:  cobra.NoArgs,
		RunE:  runVisualize,
	}
	visualizeCmd.Flags().Bool("gnuplot", false, "animate the trace with gnuplot")

	obtainCmd := &cobra.Command{
		Use:   "obtain [index]",
		Short: "run in tracked mode, appending one body's position every step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runObtain,
	}
	obtainCmd.Flags().StringVar(&archiveDir, "archive", "", "also archive the run under this directory")

	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "project the wall-clock duration of a run",
		Args:  cobra.NoArgs,
		RunE:  runEstimate,
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the seeded bodies",
		Args:  cobra.NoArgs,
		RunE:  listBodies,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step the system live in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFPS, "steps-per-frame", 1, "steps per frame")

	plotCmd := &cobra.Command{
		Use:   "plot [results_file]",
		Short: "plot a results stream",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotResults,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [results_file]",
		Short: "summarize a results stream",
		Args:  cobra.MaximumNArgs(1),
		RunE:  statsResults,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [results_file]",
		Short: "export a results stream as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "trajectory.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "width in pixels")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "height in pixels")
	exportSVGCmd.Flags().StringVar(&svgStroke, "stroke", "#00ccff", "stroke color")
	exportSVGCmd.Flags().BoolVar(&svgBraille, "braille", false, "render through the Braille canvas")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [results_file]",
		Short: "estimate the orbital period of a results stream",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeResults,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare drift across time steps",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{4e5, 2e5, 1e5, 5e4, 2.5e4}, "time steps to compare")
	sweepCmd.Flags().Float64Var(&sweepYears, "years", 1, "simulated span in years")

	runsCmd := &cobra.Command{
		Use:   "runs <archive_dir>",
		Short: "list archived runs",
		Args:  cobra.ExactArgs(1),
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list step/dt presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDT\tSTEPS\tSPAN (days)\tCATALOG")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2e\t%d\t%.0f\t%s\n", name, p.Dt, p.Steps, p.Duration()/86400, p.Catalog)
			}
			return w.Flush()
		},
	}

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "seed catalogs",
	}
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list built-in catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range catalog.Names() {
				fmt.Printf("%s\t%d bodies\n", name, len(catalog.Presets[name].Bodies))
			}
			return nil
		},
	})
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the selected catalog as yaml for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := catalog.Save(args[0], a.cat); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bodies)\n", args[0], len(a.cat.Bodies))
			return nil
		},
	})

	rootCmd.AddCommand(visualizeCmd, obtainCmd, estimateCmd, bodiesCmd, liveCmd,
		plotCmd, statsCmd, analyzeCmd, exportSVGCmd, sweepCmd, runsCmd, presetsCmd, menuCmd,
		configCmd, catalogCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&configFile, "config", "", "config file (yaml)")
	flags.StringVar(&preset, "preset", "", "step/dt preset (see 'solarsys presets')")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("catalog", config.DefaultCatalog, "seed catalog name")
	flags.String("catalog-file", "", "seed catalog file (yaml), overrides --catalog")
	flags.Float64("dt", config.DefaultDt, "time step in seconds")
	flags.Int("steps", config.DefaultSteps, "number of steps")
	flags.String("integrator", config.DefaultIntegrator, "integrator")
	flags.String("trace", config.DefaultTracePath, "trace file")
	flags.String("results", config.DefaultResultsPath, "results file")
}

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	c := console.New(os.Stdin, os.Stdout, a.seed, a, a.logger)
	return c.Run(cmd.Context())
}

func runVisualize(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.Visualize(cmd.Context(), a.seed())
}

func runObtain(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	index := a.cfg.Tracker
	if len(args) == 1 {
		index, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid body index %q: %w", args[0], err)
		}
	}

	return a.EstimateAndObtain(cmd.Context(), a.seed(), index)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	est, err := a.Estimate(a.seed())
	if err != nil {
		return err
	}
	fmt.Printf("Estimated duration of simulation is %s.\n", est)
	fmt.Printf("  sample: %v x %d bodies x %d steps\n", est.Sample, est.Bodies, est.Steps)
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	sys := a.seed()

	fmt.Printf("catalog: %s\n\n", a.cat.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tMASS (kg)\tDISTANCE (m)\tSPEED (m/s)")
	for i := 0; i < sys.Len(); i++ {
		b := sys.Body(i)
		fmt.Fprintf(w, "%d\t%s\t%.4e\t%.4e\t%.4e\n", i, b.Name, b.Mass, b.Position.Norm(), b.Velocity.Norm())
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	m, err := a.liveModel()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

func resultsPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	a, err := newApp(cmd)
	if err != nil {
		return "", err
	}
	return a.cfg.Results.Path, nil
}

func plotResults(cmd *cobra.Command, args []string) error {
	path, err := resultsPath(cmd, args)
	if err != nil {
		return err
	}
	traj, err := storage.LoadTrajectory(path)
	if err != nil {
		return err
	}
	if len(traj) < 2 {
		return fmt.Errorf("%s: need at least 2 samples, got %d", path, len(traj))
	}

	fmt.Printf("results: %s\n", path)
	fmt.Printf("samples: %d\n\n", len(traj))

	xs := make([]float64, len(traj))
	ys := make([]float64, len(traj))
	for i, p := range traj {
		xs[i], ys[i] = p.X, p.Y
	}
	series := []struct {
		data    []float64
		caption string
	}{
		{xs, "x (m)"},
		{ys, "y (m)"},
		{storage.Radii(traj, nbody.Vector3{}), "distance from origin (m)"},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func statsResults(cmd *cobra.Command, args []string) error {
	path, err := resultsPath(cmd, args)
	if err != nil {
		return err
	}
	traj, err := storage.LoadTrajectory(path)
	if err != nil {
		return err
	}

	s := storage.Summarize(traj, nbody.Vector3{})
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "samples\t%d\n", s.Samples)
	fmt.Fprintf(w, "mean radius\t%.4e m\n", s.MeanRadius)
	fmt.Fprintf(w, "std radius\t%.4e m\n", s.StdRadius)
	fmt.Fprintf(w, "min radius\t%.4e m\n", s.MinRadius)
	fmt.Fprintf(w, "max radius\t%.4e m\n", s.MaxRadius)
	fmt.Fprintf(w, "eccentricity\t%.4f\n", s.Eccentricity())
	fmt.Fprintf(w, "path length\t%.4e m\n", s.PathLength)
	if err := w.Flush(); err != nil {
		return err
	}
	if s.Samples > 1 {
		fmt.Printf("\nradius  %s\n", viz.Sparkline(storage.Radii(traj, nbody.Vector3{}), 60))
	}
	return nil
}

func analyzeResults(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	path := a.cfg.Results.Path
	if len(args) == 1 {
		path = args[0]
	}
	traj, err := storage.LoadTrajectory(path)
	if err != nil {
		return err
	}

	period, err := analysis.OrbitalPeriod(traj, a.cfg.Dt)
	if err != nil {
		return err
	}
	fmt.Printf("samples: %d (dt %.2e s)\n", len(traj), a.cfg.Dt)
	fmt.Printf("dominant period: %.2f days\n", period/86400)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	path, err := resultsPath(cmd, args)
	if err != nil {
		return err
	}
	traj, err := storage.LoadTrajectory(path)
	if err != nil {
		return err
	}

	var svg string
	if svgBraille {
		canvas := viz.NewCanvas(svgWidth/8, svgHeight/16)
		cam := viz.NewCamera(storage.Summarize(traj, nbody.Vector3{}).MaxRadius * 1.1)
		sw, sh := canvas.PixelSize()
		for _, p := range traj {
			if x, y, ok := cam.Project(p, sw, sh); ok {
				canvas.Set(x, y)
			}
		}
		svg = export.CanvasToSVG(canvas, 4)
	} else {
		svg = export.TrajectoryToSVG(traj, svgWidth, svgHeight, svgStroke)
	}
	if svg == "" {
		return fmt.Errorf("%s: not enough samples to export", path)
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d samples)\n", svgOut, len(traj))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	w := &sim.Sweep{
		Integrator: a.cfg.Integrator,
		Span:       sweepYears * 365.25 * 86400,
		Metrics: func() []sim.Metric {
			return []sim.Metric{metrics.NewMomentumDrift(), metrics.NewEnergyDrift()}
		},
	}
	results, err := w.Run(cmd.Context(), a.seed(), sweepDts)
	if err != nil {
		return err
	}

	fmt.Printf("catalog %s, integrator %s, %.2f years\n\n", a.cat.Name, a.cfg.Integrator, sweepYears)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DT (s)\tSTEPS\tMOMENTUM DRIFT\tENERGY DRIFT\tELAPSED")
	for _, r := range results {
		fmt.Fprintf(tw, "%.2e\t%d\t%.3e\t%.3e\t%v\n",
			r.Dt,
			r.Result.StepsTaken,
			r.Result.Metrics["momentum_drift"],
			r.Result.Metrics["energy_drift"],
			r.Result.Elapsed,
		)
	}
	return tw.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(args[0])
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCATALOG\tBODY\tDT\tSTEPS\tMEAN R\tECC")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2e\t%d\t%.3e\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Catalog,
			run.Body,
			run.Dt,
			run.Steps,
			run.Summary.MeanRadius,
			run.Summary.Eccentricity(),
		)
	}
	return w.Flush()
}
