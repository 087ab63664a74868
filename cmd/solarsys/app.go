package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/san-kum/solarsys/internal/catalog"
	"github.com/san-kum/solarsys/internal/config"
	"github.com/san-kum/solarsys/internal/estimate"
	"github.com/san-kum/solarsys/internal/gnuplot"
	"github.com/san-kum/solarsys/internal/integrators"
	"github.com/san-kum/solarsys/internal/metrics"
	"github.com/san-kum/solarsys/internal/nbody"
	"github.com/san-kum/solarsys/internal/record"
	"github.com/san-kum/solarsys/internal/sim"
	"github.com/san-kum/solarsys/internal/storage"
	"github.com/san-kum/solarsys/internal/viz"
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"catalog":      "catalog",
	"catalog-file": "catalog_file",
	"dt":           "dt",
	"steps":        "steps",
	"integrator":   "integrator",
	"trace":        "trace.path",
	"results":      "results.path",
	"gnuplot":      "plot.enabled",
}

// app carries the resolved configuration for one command.
type app struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	logger zerolog.Logger
	out    io.Writer
}

// loadConfig layers flags over SOLARSYS_* environment variables over the
// config file over defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()

	def := config.DefaultConfig()
	v.SetDefault("dt", def.Dt)
	v.SetDefault("steps", def.Steps)
	v.SetDefault("integrator", def.Integrator)
	v.SetDefault("catalog", def.Catalog)
	v.SetDefault("catalog_file", def.CatalogFile)
	v.SetDefault("trace.path", def.Trace.Path)
	v.SetDefault("trace.snapshot", def.Trace.Snapshot)
	v.SetDefault("results.path", def.Results.Path)
	v.SetDefault("tracker", def.Tracker)
	v.SetDefault("validate_state", def.ValidateState)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("plot.enabled", def.Plot.Enabled)
	v.SetDefault("plot.command", def.Plot.Command)
	v.SetDefault("plot.range", def.Plot.Range)
	v.SetDefault("plot.z_range", def.Plot.ZRange)
	v.SetDefault("plot.delay_ms", def.Plot.DelayMS)

	v.SetEnvPrefix("SOLARSYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return nil, bindErr
	}

	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Resolve(cfg.Catalog, cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("catalog", cat.Name).Int("bodies", len(cat.Bodies)).Msg("catalog loaded")

	return &app{cfg: cfg, cat: cat, logger: logger, out: os.Stdout}, nil
}

func (a *app) seed() *nbody.System { return a.cat.System() }

func (a *app) runConfig() sim.Config {
	return sim.Config{Dt: a.cfg.Dt, Steps: a.cfg.Steps, ValidateState: a.cfg.ValidateState}
}

func (a *app) simulator(rec record.Recorder) (*sim.Simulator, error) {
	integ, err := integrators.New(a.cfg.Integrator)
	if err != nil {
		return nil, err
	}
	s := sim.New(integ, rec, sim.WithLogger(a.logger))
	s.AddMetric(metrics.NewMomentumDrift())
	s.AddMetric(metrics.NewEnergyDrift())
	return s, nil
}

func (a *app) trackedPolicy(index int) record.Policy {
	return record.Policy{
		Mode:        record.ModeTracked,
		ResultsPath: a.cfg.Results.Path,
		Tracker:     index,
	}
}

// closeRecorder keeps the first error: a failed close means the stream may
// be incomplete.
func closeRecorder(rec record.Recorder, err *error) {
	if cerr := rec.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close stream: %w", cerr)
	}
}

// Visualize runs in trace mode, driving gnuplot when enabled.
func (a *app) Visualize(ctx context.Context, sys *nbody.System) (err error) {
	policy := record.Policy{
		Mode:      record.ModeTrace,
		TracePath: a.cfg.Trace.Path,
		Snapshot:  a.cfg.Trace.Snapshot,
	}
	rec, err := record.Open(policy, sys.Len())
	if err != nil {
		return err
	}
	defer closeRecorder(rec, &err)

	s, err := a.simulator(rec)
	if err != nil {
		return err
	}

	if a.cfg.Plot.Enabled {
		plotter := gnuplot.New(gnuplot.Options{
			Command:   a.cfg.Plot.Command,
			TracePath: a.cfg.Trace.Path,
			Range:     a.cfg.Plot.Range,
			ZRange:    a.cfg.Plot.ZRange,
			Delay:     time.Duration(a.cfg.Plot.DelayMS) * time.Millisecond,
		}, gnuplot.WithLogger(a.logger))
		if err := plotter.Start(ctx); err != nil {
			return err
		}
		defer func() {
			if err := plotter.Close(); err != nil {
				a.logger.Warn().Err(err).Msg("plotter close")
			}
		}()
		s.AddObserver(plotter)
	}

	result, err := s.Run(ctx, sys, a.runConfig())
	if result != nil {
		a.report(result)
	}
	return err
}

// Obtain runs in tracked mode, appending body index's positions to the
// results stream. With an archive directory the run is also stored.
func (a *app) Obtain(ctx context.Context, sys *nbody.System, index int) (err error) {
	rec, err := record.Open(a.trackedPolicy(index), sys.Len())
	if err != nil {
		return err
	}
	defer closeRecorder(rec, &err)

	s, err := a.simulator(rec)
	if err != nil {
		return err
	}

	var traj []nbody.Vector3
	if archiveDir != "" {
		traj = make([]nbody.Vector3, 0, a.cfg.Steps)
		s.AddObserver(sim.ObserverFunc(func(step int, sys *nbody.System) {
			traj = append(traj, sys.Body(index).Position)
		}))
	}

	result, err := s.Run(ctx, sys, a.runConfig())
	if result != nil {
		a.report(result)
	}
	if err != nil {
		return err
	}

	if archiveDir != "" {
		st := storage.New(archiveDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(storage.RunMetadata{
			Catalog:    a.cat.Name,
			Dt:         a.cfg.Dt,
			Steps:      result.StepsTaken,
			Integrator: a.cfg.Integrator,
			Tracker:    index,
			Body:       sys.Body(index).Name,
			Metrics:    result.Metrics,
		}, traj, sys.Body(0).Position)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "archived as %s\n", id)
	}
	return nil
}

// EstimateAndObtain checks the tracked index, prints the projected duration
// and then runs in tracked mode.
func (a *app) EstimateAndObtain(ctx context.Context, sys *nbody.System, index int) error {
	if err := a.trackedPolicy(index).Validate(sys.Len()); err != nil {
		return err
	}
	est, err := a.Estimate(sys)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Estimated duration of simulation is %s.\n", est)
	return a.Obtain(ctx, sys, index)
}

// liveModel rejects an unusable seed or tracked index before the
// full-screen program starts.
func (a *app) liveModel() (viz.Model, error) {
	integ, err := integrators.New(a.cfg.Integrator)
	if err != nil {
		return viz.Model{}, err
	}
	seed := a.seed()
	if err := seed.CheckConfiguration(); err != nil {
		return viz.Model{}, err
	}
	if !seed.Valid(a.cfg.Tracker) {
		return viz.Model{}, fmt.Errorf("%w: %d not in [0, %d)", record.ErrInvalidSelection, a.cfg.Tracker, seed.Len())
	}
	return viz.NewModel(a.seed, integ, a.cfg.Dt, viz.Options{
		Tracker:      a.cfg.Tracker,
		StepsPerTick: stepsPerFPS,
		FPS:          frameRate,
	}), nil
}

// Estimate writes pair lines to io.Discard so formatting cost is included.
func (a *app) Estimate(sys *nbody.System) (estimate.Estimate, error) {
	e := estimate.New()
	e.Sink = io.Discard
	return e.Estimate(sys, a.cfg.Dt, a.cfg.Steps)
}

func (a *app) report(result *sim.Result) {
	fmt.Fprintf(a.out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(a.out, "simulated: %.1f days\n", result.SimulatedTime/86400)
	fmt.Fprintf(a.out, "completed in %v\n", result.Elapsed)
	fmt.Fprintf(a.out, "metrics:\n")
	for _, name := range []string{"momentum_drift", "energy_drift"} {
		if val, ok := result.Metrics[name]; ok {
			fmt.Fprintf(a.out, "  %s: %.3e\n", name, val)
		}
	}
}
