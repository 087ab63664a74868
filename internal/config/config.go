package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1e5
	DefaultSteps       = 300
	DefaultIntegrator  = "symplectic"
	DefaultCatalog     = "inner"
	DefaultTracePath   = "Vis.dat"
	DefaultResultsPath = "Results.dat"
	DefaultTracker     = 1
	DefaultLogLevel    = "info"
	DefaultPlotRange   = 3e11
	DefaultPlotZRange  = 1e4
	DefaultPlotDelayMS = 50
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Dt            float64       `yaml:"dt" mapstructure:"dt"`
	Steps         int           `yaml:"steps" mapstructure:"steps"`
	Integrator    string        `yaml:"integrator" mapstructure:"integrator"`
	Catalog       string        `yaml:"catalog" mapstructure:"catalog"`
	CatalogFile   string        `yaml:"catalog_file,omitempty" mapstructure:"catalog_file"`
	Trace         TraceConfig   `yaml:"trace" mapstructure:"trace"`
	Results       ResultsConfig `yaml:"results" mapstructure:"results"`
	Tracker       int           `yaml:"tracker" mapstructure:"tracker"`
	ValidateState bool          `yaml:"validate_state" mapstructure:"validate_state"`
	LogLevel      string        `yaml:"log_level" mapstructure:"log_level"`
	Plot          PlotConfig    `yaml:"plot" mapstructure:"plot"`
}

type TraceConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	Snapshot bool   `yaml:"snapshot" mapstructure:"snapshot"`
}

type ResultsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PlotConfig drives the external gnuplot window.
type PlotConfig struct {
	Enabled bool    `yaml:"enabled" mapstructure:"enabled"`
	Command string  `yaml:"command" mapstructure:"command"`
	Range   float64 `yaml:"range" mapstructure:"range"`
	ZRange  float64 `yaml:"z_range" mapstructure:"z_range"`
	DelayMS int     `yaml:"delay_ms" mapstructure:"delay_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:            DefaultDt,
		Steps:         DefaultSteps,
		Integrator:    DefaultIntegrator,
		Catalog:       DefaultCatalog,
		Trace:         TraceConfig{Path: DefaultTracePath, Snapshot: true},
		Results:       ResultsConfig{Path: DefaultResultsPath},
		Tracker:       DefaultTracker,
		ValidateState: true,
		LogLevel:      DefaultLogLevel,
		Plot: PlotConfig{
			Command: "gnuplot",
			Range:   DefaultPlotRange,
			ZRange:  DefaultPlotZRange,
			DelayMS: DefaultPlotDelayMS,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalid, c.Steps)
	}
	if c.Integrator == "" {
		return fmt.Errorf("%w: integrator is empty", ErrInvalid)
	}
	if c.Trace.Path == "" || c.Results.Path == "" {
		return fmt.Errorf("%w: trace and results paths are required", ErrInvalid)
	}
	if c.Tracker < 0 {
		return fmt.Errorf("%w: tracker must not be negative, got %d", ErrInvalid, c.Tracker)
	}
	if c.Plot.DelayMS < 0 {
		return fmt.Errorf("%w: plot delay must not be negative", ErrInvalid)
	}
	return nil
}

// Duration is the simulated span of one run in seconds.
func (c *Config) Duration() float64 {
	return c.Dt * float64(c.Steps)
}
