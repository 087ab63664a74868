package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt != 1e5 {
		t.Errorf("expected dt 1e5, got %g", cfg.Dt)
	}
	if cfg.Steps != 300 {
		t.Errorf("expected 300 steps, got %d", cfg.Steps)
	}
	if cfg.Integrator != "symplectic" {
		t.Errorf("expected symplectic integrator, got %s", cfg.Integrator)
	}
	if cfg.Trace.Path != "Vis.dat" || cfg.Results.Path != "Results.dat" {
		t.Errorf("unexpected stream paths %s %s", cfg.Trace.Path, cfg.Results.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative steps", func(c *Config) { c.Steps = -1 }},
		{"empty integrator", func(c *Config) { c.Integrator = "" }},
		{"empty trace path", func(c *Config) { c.Trace.Path = "" }},
		{"negative delay", func(c *Config) { c.Plot.DelayMS = -1 }},
		{"negative tracker", func(c *Config) { c.Tracker = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solarsys.yaml")

	cfg := DefaultConfig()
	cfg.Steps = 1000
	cfg.Tracker = 3
	cfg.Trace.Snapshot = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", loaded, cfg)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("steps: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Steps != 42 {
		t.Errorf("expected 42 steps, got %d", cfg.Steps)
	}
	if cfg.Dt != DefaultDt || cfg.Results.Path != DefaultResultsPath {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg := DefaultConfig()
	cfg.Apply(GetPreset("outer"))
	if cfg.Catalog != "full" {
		t.Errorf("expected full catalog, got %s", cfg.Catalog)
	}
	if cfg.Duration() < 249*year {
		t.Errorf("outer preset should span about 250 years, got %g s", cfg.Duration())
	}

	names := ListPresets()
	if len(names) != len(Presets) || names[0] != "decade" {
		t.Errorf("unexpected preset list %v", names)
	}
}
