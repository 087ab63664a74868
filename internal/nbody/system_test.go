package nbody_test

import (
	"errors"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solarsys/internal/nbody"
)

func twoBody() *nbody.System {
	return nbody.NewSystem(
		nbody.Body{Name: "Sun", Mass: 1.988e30, PointSize: 5, Color: 5},
		nbody.Body{
			Name:     "Earth",
			Mass:     5.9722e24,
			Position: nbody.Vector3{X: 149.6e9},
			Velocity: nbody.Vector3{Y: 29.78e3},
		},
	)
}

var _ = Describe("System", func() {
	Describe("AddBody", func() {
		It("grows by exactly one and leaves prior bodies untouched", func() {
			sys := twoBody()
			before := sys.Bodies()

			idx := sys.AddBody(nbody.NewBody("Comet", nbody.Vector3{X: 1e12}, nbody.Vector3{Y: 1e3}, 1e14))

			Expect(idx).To(Equal(2))
			Expect(sys.Len()).To(Equal(len(before) + 1))
			for i, b := range before {
				Expect(sys.Body(i)).To(Equal(b))
			}
			Expect(sys.Body(2).PointSize).To(Equal(nbody.DefaultPointSize))
			Expect(sys.Body(2).Color).To(Equal(nbody.DefaultColor))
		})

		It("truncates long labels", func() {
			sys := twoBody()
			idx := sys.AddBody(nbody.Body{Name: strings.Repeat("x", 64), Mass: 1, Position: nbody.Vector3{Z: 1}})
			Expect(sys.Body(idx).Name).To(HaveLen(nbody.MaxNameLen))
		})

		It("does not split multi-byte runes", func() {
			name := strings.Repeat("a", 30) + "éé"
			b := nbody.NewBody(name, nbody.Vector3{}, nbody.Vector3{}, 1)
			Expect(b.Name).To(Equal(strings.Repeat("a", 30)))
		})
	})

	Describe("Clone", func() {
		It("is independent of the original", func() {
			sys := twoBody()
			c := sys.Clone()
			c.At(1).Position.X = 0
			Expect(sys.Body(1).Position.X).To(Equal(149.6e9))
		})
	})

	Describe("CheckConfiguration", func() {
		It("accepts a regular system", func() {
			Expect(twoBody().CheckConfiguration()).To(Succeed())
		})

		It("rejects an empty system", func() {
			Expect(nbody.NewSystem().CheckConfiguration()).To(MatchError(nbody.ErrEmptySystem))
		})

		It("rejects non-positive masses", func() {
			sys := twoBody()
			sys.At(1).Mass = 0
			Expect(errors.Is(sys.CheckConfiguration(), nbody.ErrInvalidMass)).To(BeTrue())

			sys.At(1).Mass = math.Inf(1)
			Expect(errors.Is(sys.CheckConfiguration(), nbody.ErrInvalidMass)).To(BeTrue())
		})

		It("reports coincident bodies with their indices", func() {
			sys := twoBody()
			sys.AddBody(nbody.Body{Name: "Twin", Mass: 1, Position: sys.Body(1).Position})

			err := sys.CheckConfiguration()
			Expect(errors.Is(err, nbody.ErrDegenerateConfiguration)).To(BeTrue())

			var pair *nbody.PairError
			Expect(errors.As(err, &pair)).To(BeTrue())
			Expect(pair.I).To(Equal(1))
			Expect(pair.J).To(Equal(2))
		})
	})

	Describe("diagnostics", func() {
		It("computes momentum and energy", func() {
			sys := twoBody()
			p := sys.Momentum()
			Expect(p.Y).To(BeNumerically("~", 5.9722e24*29.78e3, 1e20))
			Expect(sys.KineticEnergy()).To(BeNumerically(">", 0))
			Expect(sys.PotentialEnergy()).To(BeNumerically("<", 0))
			Expect(sys.TotalEnergy()).To(BeNumerically("<", 0))
		})

		It("detects non-finite state", func() {
			sys := twoBody()
			Expect(sys.IsFinite()).To(BeTrue())
			sys.At(0).Velocity.X = math.NaN()
			Expect(sys.IsFinite()).To(BeFalse())
		})

		It("places the center of mass near the dominant body", func() {
			c := twoBody().CenterOfMass()
			Expect(c.X).To(BeNumerically(">", 0))
			Expect(c.X).To(BeNumerically("<", 1e6))
		})
	})
})
