package nbody

import "unicode/utf8"

// MaxNameLen is the longest label a body keeps; longer names are truncated.
const MaxNameLen = 31

// Rendering defaults given to bodies added at runtime.
const (
	DefaultPointSize = 0.5
	DefaultColor     = 8
)

// Body is a point mass. Name, PointSize and Color never affect the physics.
type Body struct {
	Name      string
	Position  Vector3 // m
	Velocity  Vector3 // m/s
	Mass      float64 // kg
	PointSize float64
	Color     int
}

// NewBody returns a body with the default rendering attributes.
func NewBody(name string, pos, vel Vector3, mass float64) Body {
	return Body{
		Name:      truncateName(name),
		Position:  pos,
		Velocity:  vel,
		Mass:      mass,
		PointSize: DefaultPointSize,
		Color:     DefaultColor,
	}
}

// Momentum returns m·v.
func (b Body) Momentum() Vector3 {
	return b.Velocity.Scale(b.Mass)
}

// truncateName cuts at a rune boundary so the label stays valid UTF-8.
func truncateName(name string) string {
	if len(name) <= MaxNameLen {
		return name
	}
	cut := MaxNameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}
