package nbody

import (
	"errors"
	"fmt"
)

// Domain errors for system configuration.
var (
	// ErrEmptySystem indicates a system without bodies.
	ErrEmptySystem = errors.New("nbody: system has no bodies")

	// ErrInvalidMass indicates a non-positive or non-finite body mass.
	ErrInvalidMass = errors.New("nbody: mass must be positive and finite")

	// ErrDegenerateConfiguration indicates coincident bodies or a state that
	// turned non-finite while stepping.
	ErrDegenerateConfiguration = errors.New("nbody: degenerate configuration")
)

// PairError identifies the two bodies behind a configuration error.
type PairError struct {
	I, J    int
	Wrapped error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("bodies %d and %d: %v", e.I, e.J, e.Wrapped)
}

func (e *PairError) Unwrap() error {
	return e.Wrapped
}
