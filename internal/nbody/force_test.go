package nbody_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solarsys/internal/catalog"
	"github.com/san-kum/solarsys/internal/nbody"
)

var _ = Describe("Interaction", func() {
	sun := nbody.Body{Name: "Sun", Mass: 1.988e30}
	mercury := nbody.Body{Name: "Mercury", Mass: 3.3022e23, Position: nbody.Vector3{X: 57.9e9}}

	It("matches G·m1·m2/d³ for the sun-mercury pair", func() {
		d := 57.9e9
		want := nbody.G * 1.988e30 * 3.3022e23 / (d * d * d)

		got := nbody.Interaction(sun, mercury)
		Expect(got).To(BeNumerically("~", want, want*1e-12))
		Expect(got).To(BeNumerically(">", 0))
		Expect(math.IsInf(got, 0)).To(BeFalse())
	})

	It("is symmetric for every pair", func() {
		sys := nbody.NewSystem(
			sun,
			mercury,
			nbody.Body{Mass: 5.9722e24, Position: nbody.Vector3{X: 149.6e9, Y: -3e9, Z: 1e8}},
			nbody.Body{Mass: 6.4169e23, Position: nbody.Vector3{X: -228e9, Y: 4e10, Z: -2e9}},
		)
		for i := 0; i < sys.Len(); i++ {
			for j := 0; j < sys.Len(); j++ {
				if i == j {
					continue
				}
				Expect(sys.Interaction(i, j)).To(Equal(sys.Interaction(j, i)))
			}
		}
	})

	DescribeTable("is bit-symmetric for every seeded pair",
		func(name string) {
			sys := catalog.MustGet(name).System()
			for i := 0; i < sys.Len(); i++ {
				for j := 0; j < sys.Len(); j++ {
					if i == j {
						continue
					}
					Expect(sys.Interaction(i, j)).To(Equal(sys.Interaction(j, i)),
						"pair (%d, %d)", i, j)
				}
			}
		},
		Entry("inner catalog", "inner"),
		Entry("full catalog", "full"),
	)

	It("keeps pair forces equal and opposite", func() {
		sys := catalog.MustGet("inner").System()
		ma, mb := sys.Body(0).Mass, sys.Body(3).Mass
		dr := sys.Body(3).Position.Sub(sys.Body(0).Position)
		fab := dr.Scale(nbody.InteractionAt(ma, mb, dr))
		fba := dr.Scale(-1).Scale(nbody.InteractionAt(mb, ma, dr.Scale(-1)))
		Expect(fab.Add(fba)).To(Equal(nbody.Vector3{}))
	})

	It("squares all three displacement axes", func() {
		a := nbody.Body{Mass: 1}
		b := nbody.Body{Mass: 1, Position: nbody.Vector3{X: 3, Y: 4, Z: 12}}
		// |Δr| = 13
		want := nbody.G / (13.0 * 13.0 * 13.0)
		Expect(nbody.Interaction(a, b)).To(BeNumerically("~", want, want*1e-12))

		flipped := nbody.Body{Mass: 1, Position: nbody.Vector3{X: 3, Y: 4, Z: -12}}
		Expect(nbody.Interaction(a, flipped)).To(Equal(nbody.Interaction(a, b)))
	})

	It("is not finite for coincident bodies", func() {
		f := nbody.Interaction(sun, sun)
		Expect(math.IsInf(f, 0) || math.IsNaN(f)).To(BeTrue())
	})

	It("points the acceleration toward the other body", func() {
		sys := nbody.NewSystem(sun, mercury)
		a := sys.Acceleration(1)
		Expect(a.X).To(BeNumerically("<", 0))
		want := nbody.G * 1.988e30 / (57.9e9 * 57.9e9)
		Expect(a.Norm()).To(BeNumerically("~", want, want*1e-9))
	})
})
