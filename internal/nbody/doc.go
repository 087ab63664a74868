// Package nbody holds the point-mass data model and the gravitational force
// model used by the integrators.
//
// The package defines:
//
//   - [Vector3]: 3-component position / velocity / displacement
//   - [Body]: a point mass with rendering hints
//   - [System]: the ordered collection of bodies advanced by an integrator
//   - [Interaction]: pairwise gravitational magnitude G·m1·m2/|Δr|³
//
// # Example
//
//	sys := catalog.MustGet("inner").System()
//	f := sys.Interaction(0, 3)
//	accel := sys.Body(3).Position.Sub(sys.Body(0).Position).Scale(f / sys.Body(0).Mass)
//
// # Thread Safety
//
// A System is owned by the driver loop that steps it and is NOT safe for
// concurrent mutation.
package nbody
