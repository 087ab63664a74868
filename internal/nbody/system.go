package nbody

import (
	"fmt"
	"math"
)

// System is the ordered body collection stepped by an integrator. Index order
// is insertion order.
type System struct {
	bodies []Body
}

// NewSystem copies bodies into a new system.
func NewSystem(bodies ...Body) *System {
	s := &System{bodies: make([]Body, len(bodies))}
	copy(s.bodies, bodies)
	return s
}

func (s *System) Len() int { return len(s.bodies) }

// Body returns a copy of body i.
func (s *System) Body(i int) Body { return s.bodies[i] }

// At returns a pointer into the system for in-place updates.
func (s *System) At(i int) *Body { return &s.bodies[i] }

// Bodies returns a copy of every body in index order.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Valid reports whether i addresses a body.
func (s *System) Valid(i int) bool { return i >= 0 && i < len(s.bodies) }

// AddBody appends b and returns its index. Existing bodies keep their indices.
func (s *System) AddBody(b Body) int {
	b.Name = truncateName(b.Name)
	s.bodies = append(s.bodies, b)
	return len(s.bodies) - 1
}

func (s *System) Clone() *System {
	return NewSystem(s.bodies...)
}

// CheckConfiguration rejects systems the force model cannot evaluate:
// no bodies, bad masses, or two bodies at the same position.
func (s *System) CheckConfiguration() error {
	if len(s.bodies) == 0 {
		return ErrEmptySystem
	}
	for i, b := range s.bodies {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("body %d (%s): %w", i, b.Name, ErrInvalidMass)
		}
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return fmt.Errorf("body %d (%s): non-finite state: %w", i, b.Name, ErrDegenerateConfiguration)
		}
	}
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			if s.bodies[i].Position == s.bodies[j].Position {
				return &PairError{I: i, J: j, Wrapped: ErrDegenerateConfiguration}
			}
		}
	}
	return nil
}

// IsFinite is false once any position or velocity component is NaN or Inf.
func (s *System) IsFinite() bool {
	for _, b := range s.bodies {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return false
		}
	}
	return true
}

func (s *System) TotalMass() float64 {
	m := 0.0
	for _, b := range s.bodies {
		m += b.Mass
	}
	return m
}

// Momentum is the total linear momentum Σ m·v.
func (s *System) Momentum() Vector3 {
	var p Vector3
	for _, b := range s.bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

// MomentumScale is Σ m·|v|, the natural scale for momentum drift.
func (s *System) MomentumScale() float64 {
	sum := 0.0
	for _, b := range s.bodies {
		sum += b.Mass * b.Velocity.Norm()
	}
	return sum
}

func (s *System) CenterOfMass() Vector3 {
	var c Vector3
	total := s.TotalMass()
	if total == 0 {
		return c
	}
	for _, b := range s.bodies {
		c = c.Add(b.Position.Scale(b.Mass))
	}
	return c.Scale(1 / total)
}

func (s *System) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range s.bodies {
		ke += 0.5 * b.Mass * b.Velocity.Norm2()
	}
	return ke
}

func (s *System) PotentialEnergy() float64 {
	pe := 0.0
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			r := s.bodies[i].Position.Distance(s.bodies[j].Position)
			pe -= G * s.bodies[i].Mass * s.bodies[j].Mass / r
		}
	}
	return pe
}

func (s *System) TotalEnergy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}
