package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/solarsys/internal/nbody"
)

// ErrUnknownIntegrator is returned by New for unregistered names.
var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

// Integrator advances a system by one fixed step of dt seconds, in place.
type Integrator interface {
	Name() string
	Step(sys *nbody.System, dt float64)
}

var registry = map[string]func() Integrator{
	"symplectic": func() Integrator { return NewSymplecticEuler() },
	"euler":      func() Integrator { return NewEuler() },
	"verlet":     func() Integrator { return NewVerlet() },
	"leapfrog":   func() Integrator { return NewLeapfrog() },
	"rk4":        func() Integrator { return NewRK4() },
}

// New returns a fresh integrator registered under name.
func New(name string) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownIntegrator, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
