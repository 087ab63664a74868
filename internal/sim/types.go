package sim

import (
	"time"

	"github.com/san-kum/solarsys/internal/nbody"
)

// Metric accumulates a scalar over the observed states of a run.
type Metric interface {
	Name() string
	Observe(step int, sys *nbody.System)
	Value() float64
	Reset()
}

// Observer is notified after each step has been recorded.
type Observer interface {
	OnStep(step int, sys *nbody.System)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, sys *nbody.System)

func (f ObserverFunc) OnStep(step int, sys *nbody.System) { f(step, sys) }

type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
}

type Result struct {
	StepsTaken    int
	SimulatedTime float64
	Elapsed       time.Duration
	Metrics       map[string]float64
}
