package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/solarsys/internal/integrators"
	"github.com/san-kum/solarsys/internal/nbody"
	"github.com/san-kum/solarsys/internal/record"
)

type Simulator struct {
	integrator integrators.Integrator
	recorder   record.Recorder
	metrics    []Metric
	observers  []Observer
	logger     zerolog.Logger
}

type Option func(*Simulator)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// New builds a simulator. A nil recorder records nothing.
func New(integ integrators.Integrator, rec record.Recorder, opts ...Option) *Simulator {
	if rec == nil {
		rec = record.Discard{}
	}
	s := &Simulator{
		integrator: integ,
		recorder:   rec,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances sys in place for cfg.Steps steps. Each step is integrated,
// checked, recorded and then handed to the observers. The recorder is left
// open; its owner closes it.
func (s *Simulator) Run(ctx context.Context, sys *nbody.System, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := sys.CheckConfiguration(); err != nil {
		return nil, err
	}

	result := &Result{Metrics: make(map[string]float64)}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(0, sys)
	}

	s.logger.Info().
		Str("integrator", s.integrator.Name()).
		Int("bodies", sys.Len()).
		Float64("dt", cfg.Dt).
		Int("steps", cfg.Steps).
		Msg("run started")

	start := time.Now()
	t := 0.0
	var runErr error

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = fmt.Errorf("%w after %d steps: %v", ErrCanceled, i, ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		s.integrator.Step(sys, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !sys.IsFinite() {
			runErr = &SimulationError{Step: i, Time: t, Wrapped: nbody.ErrDegenerateConfiguration}
			break
		}

		if err := s.recorder.Record(i, sys); err != nil {
			runErr = &SimulationError{Step: i, Time: t, Wrapped: err}
			break
		}

		result.StepsTaken++
		result.SimulatedTime = t

		for _, m := range s.metrics {
			m.Observe(i+1, sys)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, sys)
		}

		s.logger.Debug().Int("step", i).Float64("t", t).Msg("step")
	}

	result.Elapsed = time.Since(start)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		s.logger.Error().Err(runErr).Int("steps_taken", result.StepsTaken).Msg("run stopped")
		return result, runErr
	}

	s.logger.Info().
		Int("steps_taken", result.StepsTaken).
		Dur("elapsed", result.Elapsed).
		Msg("run finished")

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, cfg.Steps)
	}
	return nil
}

// IsCanceled reports whether err came from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
