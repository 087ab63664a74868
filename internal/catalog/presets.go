package catalog

import (
	"fmt"
	"sort"
)

var (
	sun     = BodySpec{Name: "Sun", Mass: 1.988e30, PointSize: 5, Color: 5}
	mercury = BodySpec{Name: "Mercury", Distance: 57.9e9, PeriodDays: 88, Mass: 3.3022e23, PointSize: 1, Color: 8}
	venus   = BodySpec{Name: "Venus", Distance: 108.2e9, PeriodDays: 224.7, Mass: 4.868e24, PointSize: 1.5, Color: 4}
	earth   = BodySpec{Name: "Earth", Distance: 149.6e9, PeriodDays: 365.2, Mass: 5.9722e24, PointSize: 1.5, Color: 3}
	mars    = BodySpec{Name: "Mars", Distance: 228e9, PeriodDays: 687, Mass: 6.4169e23, PointSize: 1.5, Color: 7}
	jupiter = BodySpec{Name: "Jupiter", Distance: 778.5e9, PeriodDays: 4331, Mass: 1898e24, PointSize: 2.5, Color: 1}
	saturn  = BodySpec{Name: "Saturn", Distance: 1432e9, PeriodDays: 10747, Mass: 568e24, PointSize: 3, Color: 1}
	uranus  = BodySpec{Name: "Uranus", Distance: 2867e9, PeriodDays: 30589, Mass: 86.811e24, PointSize: 2, Color: 1}
	neptune = BodySpec{Name: "Neptune", Distance: 4515e9, PeriodDays: 59800, Mass: 102.4e24, PointSize: 1, Color: 1}
	pluto   = BodySpec{Name: "Pluto", Distance: 5906.4e9, PeriodDays: 90560, Mass: 0.01303e24, PointSize: 1, Color: 1}
)

// DefaultName is the catalog used when none is configured.
const DefaultName = "inner"

var Presets = map[string]Catalog{
	"inner": {
		Name:   "inner",
		Bodies: []BodySpec{sun, mercury, venus, earth, mars},
	},
	"full": {
		Name:   "full",
		Bodies: []BodySpec{sun, mercury, venus, earth, mars, jupiter, saturn, uranus, neptune, pluto},
	},
}

// Get returns a copy of a preset so callers may extend it freely.
func Get(name string) (*Catalog, error) {
	c, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownCatalog, name, Names())
	}
	c.Bodies = append([]BodySpec(nil), c.Bodies...)
	return &c, nil
}

func MustGet(name string) *Catalog {
	c, err := Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

func Names() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve prefers a catalog file over a preset name.
func Resolve(name, file string) (*Catalog, error) {
	if file != "" {
		return Load(file)
	}
	if name == "" {
		name = DefaultName
	}
	return Get(name)
}
