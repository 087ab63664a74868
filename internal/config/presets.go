package config

import "sort"

const (
	day  = 86400.0
	year = 365.25 * day
)

// Presets are named step/dt combinations applied over the loaded config.
var Presets = map[string]*Config{
	"quick":  {Dt: DefaultDt, Steps: DefaultSteps},
	"year":   {Dt: DefaultDt, Steps: stepsFor(year, DefaultDt)},
	"decade": {Dt: 4 * DefaultDt, Steps: stepsFor(10*year, 4*DefaultDt)},
	"fine":   {Dt: day / 4, Steps: stepsFor(year, day/4)},
	"outer":  {Dt: 10 * day, Steps: stepsFor(250*year, 10*day), Catalog: "full"},
}

func stepsFor(span, dt float64) int {
	return int(span / dt)
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's time step, step count and catalog onto c.
func (c *Config) Apply(p *Config) {
	if p == nil {
		return
	}
	if p.Dt > 0 {
		c.Dt = p.Dt
	}
	if p.Steps > 0 {
		c.Steps = p.Steps
	}
	if p.Catalog != "" {
		c.Catalog = p.Catalog
	}
}
