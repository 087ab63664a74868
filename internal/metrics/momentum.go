package metrics

import (
	"math"

	"github.com/san-kum/solarsys/internal/nbody"
)

// MomentumDrift reports max |P(t) - P(0)| normalised by Σ m|v| at the first
// observation. Pairwise forces cancel, so this only grows through roundoff.
type MomentumDrift struct {
	name     string
	initial  nbody.Vector3
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(step int, sys *nbody.System) {
	p := sys.Momentum()
	if m.samples == 0 {
		m.initial = p
		m.scale = sys.MomentumScale()
	}
	m.samples++

	if m.scale > 0 {
		drift := p.Sub(m.initial).Norm() / m.scale
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = nbody.Vector3{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}
