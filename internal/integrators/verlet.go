package integrators

import "github.com/san-kum/solarsys/internal/nbody"

// Verlet is velocity Verlet: positions take a full step using the current
// acceleration, then velocities use the mean of old and new accelerations.
type Verlet struct {
	pos    []nbody.Vector3
	acc    []nbody.Vector3
	accNew []nbody.Vector3
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) ensureScratch(n int) {
	v.pos = grow(v.pos, n)
	v.acc = grow(v.acc, n)
	v.accNew = grow(v.accNew, n)
}

func (v *Verlet) Step(sys *nbody.System, dt float64) {
	n := sys.Len()
	v.ensureScratch(n)

	positions(sys, v.pos)
	accelerations(sys, v.pos, v.acc)

	dt2 := 0.5 * dt * dt
	for i := 0; i < n; i++ {
		b := sys.At(i)
		b.Position = b.Position.Add(b.Velocity.Scale(dt)).Add(v.acc[i].Scale(dt2))
		v.pos[i] = b.Position
	}

	accelerations(sys, v.pos, v.accNew)

	halfDt := 0.5 * dt
	for i := 0; i < n; i++ {
		b := sys.At(i)
		b.Velocity = b.Velocity.Add(v.acc[i].Add(v.accNew[i]).Scale(halfDt))
	}
}

// Leapfrog is the kick-drift-kick form: half kick, full drift, half kick.
type Leapfrog struct {
	pos []nbody.Vector3
	acc []nbody.Vector3
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(sys *nbody.System, dt float64) {
	n := sys.Len()
	l.pos = grow(l.pos, n)
	l.acc = grow(l.acc, n)
	halfDt := dt * 0.5

	positions(sys, l.pos)
	accelerations(sys, l.pos, l.acc)
	for i := 0; i < n; i++ {
		b := sys.At(i)
		b.Velocity = b.Velocity.Add(l.acc[i].Scale(halfDt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		l.pos[i] = b.Position
	}

	accelerations(sys, l.pos, l.acc)
	for i := 0; i < n; i++ {
		b := sys.At(i)
		b.Velocity = b.Velocity.Add(l.acc[i].Scale(halfDt))
	}
}
