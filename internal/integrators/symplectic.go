package integrators

import "github.com/san-kum/solarsys/internal/nbody"

// SymplecticEuler is the semi-implicit Euler scheme: every velocity is
// updated from the start-of-step positions, then every position moves with
// the new velocity.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Name() string { return "symplectic" }

func (s *SymplecticEuler) Step(sys *nbody.System, dt float64) {
	kick(sys, dt)

	for i := 0; i < sys.Len(); i++ {
		b := sys.At(i)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}
}

// kick applies v[i] += dt·Δr(j,i)·F(i,j)/m[i] for every ordered pair i≠j.
// Positions are read only, so all pairs see the same configuration.
func kick(sys *nbody.System, dt float64) {
	n := sys.Len()
	for i := 0; i < n; i++ {
		bi := sys.At(i)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			bj := sys.At(j)
			dr := bj.Position.Sub(bi.Position)
			f := nbody.InteractionAt(bi.Mass, bj.Mass, dr)
			bi.Velocity = bi.Velocity.Add(dr.Scale(dt * f / bi.Mass))
		}
	}
}
