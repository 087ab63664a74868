package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a non-positive dt or a negative step count.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrCanceled indicates the run was interrupted through its context.
	ErrCanceled = errors.New("sim: run canceled")
)

// SimulationError locates a failure inside a run.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4e s): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
