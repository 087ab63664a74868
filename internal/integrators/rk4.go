package integrators

import "github.com/san-kum/solarsys/internal/nbody"

// RK4 is the classical fourth-order Runge-Kutta scheme over the
// (position, velocity) state of every body. It is not symplectic.
type RK4 struct {
	x0, v0        []nbody.Vector3
	kx1, kx2, kx3 []nbody.Vector3
	kv1, kv2, kv3 []nbody.Vector3
	kv4, scratch  []nbody.Vector3
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.x0) != n {
		r.x0 = make([]nbody.Vector3, n)
		r.v0 = make([]nbody.Vector3, n)
		r.kx1 = make([]nbody.Vector3, n)
		r.kx2 = make([]nbody.Vector3, n)
		r.kx3 = make([]nbody.Vector3, n)
		r.kv1 = make([]nbody.Vector3, n)
		r.kv2 = make([]nbody.Vector3, n)
		r.kv3 = make([]nbody.Vector3, n)
		r.kv4 = make([]nbody.Vector3, n)
		r.scratch = make([]nbody.Vector3, n)
	}
}

func (r *RK4) Step(sys *nbody.System, dt float64) {
	n := sys.Len()
	r.ensureScratch(n)

	for i := 0; i < n; i++ {
		b := sys.At(i)
		r.x0[i] = b.Position
		r.v0[i] = b.Velocity
		r.kx1[i] = b.Velocity
	}
	accelerations(sys, r.x0, r.kv1)

	halfDt := dt * 0.5
	for i := 0; i < n; i++ {
		r.scratch[i] = r.x0[i].Add(r.kx1[i].Scale(halfDt))
		r.kx2[i] = r.v0[i].Add(r.kv1[i].Scale(halfDt))
	}
	accelerations(sys, r.scratch, r.kv2)

	for i := 0; i < n; i++ {
		r.scratch[i] = r.x0[i].Add(r.kx2[i].Scale(halfDt))
		r.kx3[i] = r.v0[i].Add(r.kv2[i].Scale(halfDt))
	}
	accelerations(sys, r.scratch, r.kv3)

	for i := 0; i < n; i++ {
		r.scratch[i] = r.x0[i].Add(r.kx3[i].Scale(dt))
	}
	accelerations(sys, r.scratch, r.kv4)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		kx4 := r.v0[i].Add(r.kv3[i].Scale(dt))
		dx := r.kx1[i].Add(r.kx2[i].Scale(2)).Add(r.kx3[i].Scale(2)).Add(kx4)
		dv := r.kv1[i].Add(r.kv2[i].Scale(2)).Add(r.kv3[i].Scale(2)).Add(r.kv4[i])

		b := sys.At(i)
		b.Position = r.x0[i].Add(dx.Scale(dt6))
		b.Velocity = r.v0[i].Add(dv.Scale(dt6))
	}
}
