package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/solarsys/internal/nbody"
)

var ErrTooShort = errors.New("analysis: series too short")

// PowerSpectrum returns |c_k| for k in [0, n/2] of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	coeff := fft.FFTReal(centered)
	ps := make([]float64, len(coeff)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeff[i])
	}
	return ps
}

// DominantPeriod returns the period, in units of dt, of the strongest
// non-constant component of data.
func DominantPeriod(data []float64, dt float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrTooShort
	}
	ps := PowerSpectrum(data)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return math.Inf(1), nil
	}
	return float64(len(data)) * dt / float64(peak), nil
}

// OrbitalPeriod estimates the period of a trajectory from its x component.
// The window should cover at least one full orbit.
func OrbitalPeriod(traj []nbody.Vector3, dt float64) (float64, error) {
	xs := make([]float64, len(traj))
	for i, p := range traj {
		xs[i] = p.X
	}
	return DominantPeriod(xs, dt)
}
