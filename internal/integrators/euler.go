package integrators

import "github.com/san-kum/solarsys/internal/nbody"

// Euler is explicit forward Euler: positions advance with the velocities
// from before the step.
type Euler struct {
	prev []nbody.Vector3
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys *nbody.System, dt float64) {
	n := sys.Len()
	if cap(e.prev) < n {
		e.prev = make([]nbody.Vector3, n)
	}
	e.prev = e.prev[:n]
	for i := 0; i < n; i++ {
		e.prev[i] = sys.At(i).Velocity
	}

	kick(sys, dt)

	for i := 0; i < n; i++ {
		b := sys.At(i)
		b.Position = b.Position.Add(e.prev[i].Scale(dt))
	}
}
