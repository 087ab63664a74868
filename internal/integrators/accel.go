package integrators

import "github.com/san-kum/solarsys/internal/nbody"

// accelerations fills out[i] with the acceleration of body i when the bodies
// sit at pos instead of their stored positions. Masses come from sys.
func accelerations(sys *nbody.System, pos, out []nbody.Vector3) {
	n := sys.Len()
	for i := 0; i < n; i++ {
		mi := sys.At(i).Mass
		var a nbody.Vector3
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dr := pos[j].Sub(pos[i])
			a = a.Add(dr.Scale(nbody.InteractionAt(mi, sys.At(j).Mass, dr) / mi))
		}
		out[i] = a
	}
}

func positions(sys *nbody.System, out []nbody.Vector3) {
	for i := range out {
		out[i] = sys.At(i).Position
	}
}

func grow(buf []nbody.Vector3, n int) []nbody.Vector3 {
	if cap(buf) < n {
		return make([]nbody.Vector3, n)
	}
	return buf[:n]
}
