package record

import "errors"

var (
	// ErrResourceUnavailable indicates a stream that cannot be opened for
	// writing. The run must stop: the trajectory would be incomplete.
	ErrResourceUnavailable = errors.New("record: stream unavailable")

	// ErrInvalidSelection indicates a tracked-body index outside the system.
	ErrInvalidSelection = errors.New("record: tracked body index out of range")

	// ErrUnknownMode indicates an unrecognised recording mode name.
	ErrUnknownMode = errors.New("record: unknown mode")
)
