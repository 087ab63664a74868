package storage

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/solarsys/internal/nbody"
)

// Summary describes a trajectory relative to a fixed origin.
type Summary struct {
	Samples    int
	MeanRadius float64
	StdRadius  float64
	MinRadius  float64
	MaxRadius  float64
	PathLength float64
}

// Radii returns the distance of every point from origin.
func Radii(traj []nbody.Vector3, origin nbody.Vector3) []float64 {
	r := make([]float64, len(traj))
	for i, p := range traj {
		r[i] = p.Distance(origin)
	}
	return r
}

func Summarize(traj []nbody.Vector3, origin nbody.Vector3) Summary {
	if len(traj) == 0 {
		return Summary{}
	}

	radii := Radii(traj, origin)
	mean, std := stat.MeanStdDev(radii, nil)
	if len(radii) < 2 {
		std = 0
	}

	steps := make([]float64, 0, len(traj)-1)
	for i := 1; i < len(traj); i++ {
		steps = append(steps, traj[i].Distance(traj[i-1]))
	}

	return Summary{
		Samples:    len(traj),
		MeanRadius: mean,
		StdRadius:  std,
		MinRadius:  floats.Min(radii),
		MaxRadius:  floats.Max(radii),
		PathLength: floats.Sum(steps),
	}
}

// Eccentricity estimates (max-min)/(max+min) of the radius.
func (s Summary) Eccentricity() float64 {
	if s.MaxRadius+s.MinRadius == 0 {
		return 0
	}
	return (s.MaxRadius - s.MinRadius) / (s.MaxRadius + s.MinRadius)
}
