package nbody

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 is a position, velocity or displacement in SI units.
type Vector3 r3.Vec

func (v Vector3) vec() r3.Vec { return r3.Vec(v) }

func (v Vector3) Add(o Vector3) Vector3      { return Vector3(r3.Add(v.vec(), o.vec())) }
func (v Vector3) Sub(o Vector3) Vector3      { return Vector3(r3.Sub(v.vec(), o.vec())) }
func (v Vector3) Scale(s float64) Vector3    { return Vector3(r3.Scale(s, v.vec())) }
func (v Vector3) Dot(o Vector3) float64      { return r3.Dot(v.vec(), o.vec()) }
func (v Vector3) Cross(o Vector3) Vector3    { return Vector3(r3.Cross(v.vec(), o.vec())) }
func (v Vector3) Distance(o Vector3) float64 { return o.Sub(v).Norm() }

// Norm2 is the squared length dx²+dy²+dz².
func (v Vector3) Norm2() float64 { return r3.Norm2(v.vec()) }

func (v Vector3) Norm() float64 { return r3.Norm(v.vec()) }

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
