package nbody

import "math"

// G is the gravitational constant in m³ kg⁻¹ s⁻².
const G = 6.6743015e-11

// Interaction is the gravitational magnitude G·ma·mb/|Δr|³. Multiplying it by
// the displacement toward the other body and dividing by the acted-upon mass
// gives that body's acceleration contribution.
//
// Coincident positions yield Inf or NaN; callers keep configurations
// non-degenerate (see System.CheckConfiguration).
func Interaction(a, b Body) float64 {
	return InteractionAt(a.Mass, b.Mass, b.Position.Sub(a.Position))
}

// InteractionAt evaluates the magnitude for an already computed displacement.
// The masses are multiplied first so swapping the bodies gives the same bits.
func InteractionAt(ma, mb float64, dr Vector3) float64 {
	r := math.Sqrt(dr.Norm2())
	return G * (ma * mb) / (r * r * r)
}

// Interaction evaluates the force magnitude between bodies i and j.
func (s *System) Interaction(i, j int) float64 {
	return Interaction(s.bodies[i], s.bodies[j])
}

// Acceleration returns the acceleration of body i due to every other body.
func (s *System) Acceleration(i int) Vector3 {
	var a Vector3
	bi := s.bodies[i]
	for j, bj := range s.bodies {
		if i == j {
			continue
		}
		dr := bj.Position.Sub(bi.Position)
		a = a.Add(dr.Scale(InteractionAt(bi.Mass, bj.Mass, dr) / bi.Mass))
	}
	return a
}
