package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/solarsys/internal/integrators"
	"github.com/san-kum/solarsys/internal/nbody"
)

// Sweep runs the same seed once per time step, concurrently, with nothing
// recorded. Every run gets its own clone, integrator and metrics.
type Sweep struct {
	Integrator string
	Metrics    func() []Metric
	Span       float64
}

// SweepResult pairs a time step with the outcome of its run.
type SweepResult struct {
	Dt     float64
	Result *Result
}

// Run integrates seed over Span seconds for each dt.
func (w *Sweep) Run(ctx context.Context, seed *nbody.System, dts []float64) ([]SweepResult, error) {
	results := make([]SweepResult, len(dts))

	g, ctx := errgroup.WithContext(ctx)
	for i, dt := range dts {
		i, dt := i, dt
		g.Go(func() error {
			integ, err := integrators.New(w.Integrator)
			if err != nil {
				return err
			}
			s := New(integ, nil)
			if w.Metrics != nil {
				for _, m := range w.Metrics() {
					s.AddMetric(m)
				}
			}
			steps := 0
			if dt > 0 {
				steps = int(w.Span / dt)
			}
			res, err := s.Run(ctx, seed.Clone(), Config{Dt: dt, Steps: steps, ValidateState: true})
			if err != nil {
				return err
			}
			results[i] = SweepResult{Dt: dt, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
