package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/solarsys/internal/nbody"
)

func pair() *nbody.System {
	return nbody.NewSystem(
		nbody.Body{Name: "probe", Mass: 1e24, Velocity: nbody.Vector3{X: 1, Y: 2}},
		nbody.Body{Name: "star", Mass: 1e30, Position: nbody.Vector3{X: 1e9}},
	)
}

func sunEarth() *nbody.System {
	r := 149.6e9
	return nbody.NewSystem(
		nbody.Body{Name: "Sun", Mass: 1.988e30},
		nbody.Body{
			Name:     "Earth",
			Mass:     5.9722e24,
			Position: nbody.Vector3{X: r},
			Velocity: nbody.Vector3{Y: math.Sqrt(nbody.G * 1.988e30 / r)},
		},
	)
}

func TestSymplecticEulerOrdering(t *testing.T) {
	sys := pair()
	dt := 10.0
	before := sys.Bodies()

	dr := before[1].Position.Sub(before[0].Position)
	f := nbody.InteractionAt(before[0].Mass, before[1].Mass, dr)
	newV := before[0].Velocity.Add(dr.Scale(dt * f / before[0].Mass))
	want := before[0].Position.Add(newV.Scale(dt))
	stale := before[0].Position.Add(before[0].Velocity.Scale(dt))

	NewSymplecticEuler().Step(sys, dt)

	got := sys.Body(0)
	if got.Velocity != newV {
		t.Errorf("velocity = %+v, want %+v", got.Velocity, newV)
	}
	if got.Position != want {
		t.Errorf("position = %+v, want %+v (post-update velocity)", got.Position, want)
	}
	if got.Position == stale {
		t.Error("position advanced with the pre-step velocity")
	}
}

func TestSymplecticEulerUsesStartOfStepPositions(t *testing.T) {
	sys := pair()
	dt := 10.0
	before := sys.Bodies()

	NewSymplecticEuler().Step(sys, dt)

	// body 1's kick must use body 0's position before body 0 moved
	dr := before[0].Position.Sub(before[1].Position)
	f := nbody.InteractionAt(before[1].Mass, before[0].Mass, dr)
	wantV := before[1].Velocity.Add(dr.Scale(dt * f / before[1].Mass))
	if got := sys.Body(1).Velocity; got != wantV {
		t.Errorf("velocity of body 1 = %+v, want %+v", got, wantV)
	}
}

func TestEulerUsesPreStepVelocity(t *testing.T) {
	sys := pair()
	dt := 10.0
	before := sys.Bodies()

	NewEuler().Step(sys, dt)

	want := before[0].Position.Add(before[0].Velocity.Scale(dt))
	if got := sys.Body(0).Position; got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
	if sys.Body(0).Velocity == before[0].Velocity {
		t.Error("velocity was not updated")
	}
}

func TestSingleBodyDrifts(t *testing.T) {
	sys := nbody.NewSystem(nbody.Body{Mass: 1, Velocity: nbody.Vector3{X: 2, Y: -1, Z: 0.5}})
	NewSymplecticEuler().Step(sys, 4)

	want := nbody.Vector3{X: 8, Y: -4, Z: 2}
	if got := sys.Body(0).Position; got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func driftOverYear(integ Integrator, dt float64) (momentum, energy float64) {
	sys := sunEarth()
	p0 := sys.Momentum()
	e0 := sys.TotalEnergy()

	steps := int(365.25 * 86400 / dt)
	for i := 0; i < steps; i++ {
		integ.Step(sys, dt)
		if d := sys.Momentum().Sub(p0).Norm(); d > momentum {
			momentum = d
		}
		if d := math.Abs(sys.TotalEnergy()-e0) / math.Abs(e0); d > energy {
			energy = d
		}
	}
	return momentum / sys.MomentumScale(), energy
}

func TestDriftShrinksWithDt(t *testing.T) {
	pLarge, eLarge := driftOverYear(NewSymplecticEuler(), 1e5)
	pSmall, eSmall := driftOverYear(NewSymplecticEuler(), 1e4)

	t.Logf("dt=1e5: momentum %.3e energy %.3e", pLarge, eLarge)
	t.Logf("dt=1e4: momentum %.3e energy %.3e", pSmall, eSmall)

	if pLarge > 1e-12 || pSmall > 1e-12 {
		t.Errorf("momentum drift too high: %e / %e", pLarge, pSmall)
	}
	if pSmall > pLarge && pSmall > 1e-14 {
		t.Errorf("momentum drift grew as dt shrank: %e > %e", pSmall, pLarge)
	}
	if eSmall >= eLarge/2 {
		t.Errorf("energy drift did not shrink with dt: %e vs %e", eSmall, eLarge)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		integ, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("Name() = %q, want %q", integ.Name(), name)
		}
	}

	if _, err := New("rk45"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
}
