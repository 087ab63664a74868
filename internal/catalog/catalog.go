// Package catalog holds the seed configurations a run starts from.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/solarsys/internal/nbody"
)

var ErrUnknownCatalog = errors.New("catalog: unknown catalog")

const secondsPerDay = 86400.0

// BodySpec places a body on the +x axis with a circular prograde velocity.
type BodySpec struct {
	Name       string  `yaml:"name"`
	Distance   float64 `yaml:"distance"`
	PeriodDays float64 `yaml:"period_days"`
	Mass       float64 `yaml:"mass"`
	PointSize  float64 `yaml:"point_size"`
	Color      int     `yaml:"color"`
}

// Speed is 2π·distance / period. A zero period means the body is at rest.
func (b BodySpec) Speed() float64 {
	if b.PeriodDays == 0 {
		return 0
	}
	return 2 * math.Pi * b.Distance / (secondsPerDay * b.PeriodDays)
}

func (b BodySpec) Body() nbody.Body {
	body := nbody.NewBody(b.Name,
		nbody.Vector3{X: b.Distance},
		nbody.Vector3{Y: b.Speed()},
		b.Mass)
	body.PointSize = b.PointSize
	body.Color = b.Color
	return body
}

type Catalog struct {
	Name   string     `yaml:"name"`
	Bodies []BodySpec `yaml:"bodies"`
}

// System builds a fresh system. Repeated calls give identical systems.
func (c Catalog) System() *nbody.System {
	sys := nbody.NewSystem()
	for _, spec := range c.Bodies {
		sys.AddBody(spec.Body())
	}
	return sys
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(c.Bodies) == 0 {
		return nil, fmt.Errorf("catalog %s: %w", path, nbody.ErrEmptySystem)
	}
	if c.Name == "" {
		c.Name = path
	}
	return &c, nil
}

func Save(path string, c *Catalog) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
