// Package estimate projects the wall-clock cost of a run from one timed
// partial pass over the system.
package estimate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/solarsys/internal/nbody"
	"github.com/san-kum/solarsys/internal/record"
)

var ErrNegativeSteps = errors.New("estimate: step count must not be negative")

// Estimate is a projected run duration.
type Estimate struct {
	Sample    time.Duration
	Bodies    int
	Steps     int
	Projected time.Duration
}

func (e Estimate) Seconds() float64 { return e.Projected.Seconds() }

func (e Estimate) String() string {
	return fmt.Sprintf("%.1e seconds", e.Seconds())
}

// Estimator times the velocity update of body 0 against every other body
// and scales it by bodies × steps. It works on a clone; the caller's system
// is left untouched.
type Estimator struct {
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Sink, when set, receives one trace line per pair so the sample
	// includes stream cost.
	Sink io.Writer
}

func New() *Estimator {
	return &Estimator{Clock: time.Now}
}

func (e *Estimator) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

func (e *Estimator) Estimate(sys *nbody.System, dt float64, totalSteps int) (Estimate, error) {
	if sys == nil || sys.Len() == 0 {
		return Estimate{}, nbody.ErrEmptySystem
	}
	if totalSteps < 0 {
		return Estimate{}, fmt.Errorf("%w: %d", ErrNegativeSteps, totalSteps)
	}

	work := sys.Clone()
	n := work.Len()

	start := e.now()
	b0 := work.At(0)
	for j := 1; j < n; j++ {
		bj := work.Body(j)
		dr := bj.Position.Sub(b0.Position)
		f := nbody.InteractionAt(b0.Mass, bj.Mass, dr)
		b0.Velocity = b0.Velocity.Add(dr.Scale(dt * f / b0.Mass))
		if e.Sink != nil {
			if err := record.WriteTraceLine(e.Sink, bj); err != nil {
				return Estimate{}, fmt.Errorf("estimate sink: %w", err)
			}
		}
	}
	sample := e.now().Sub(start)

	return Estimate{
		Sample:    sample,
		Bodies:    n,
		Steps:     totalSteps,
		Projected: sample * time.Duration(n) * time.Duration(totalSteps),
	}, nil
}
