// Package record decides what part of the system state is written after
// each step: the whole frame (trace mode) or one body's position (tracked
// mode).
package record

import (
	"fmt"
	"os"
	"strings"
)

type Mode int

const (
	// ModeTrace writes every body every step, for animation.
	ModeTrace Mode = iota
	// ModeTracked appends the position of one body every step, for analysis.
	ModeTracked
)

func (m Mode) String() string {
	switch m {
	case ModeTrace:
		return "trace"
	case ModeTracked:
		return "tracked"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "visualize", "v":
		return ModeTrace, nil
	case "tracked", "obtain", "o":
		return ModeTracked, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Policy selects the active mode and its stream.
type Policy struct {
	Mode        Mode
	TracePath   string
	ResultsPath string
	Tracker     int
	// Snapshot keeps only the latest frame in the trace file.
	Snapshot bool
}

// Validate checks the tracked index against a system of n bodies. It runs
// before any stream is opened.
func (p Policy) Validate(n int) error {
	switch p.Mode {
	case ModeTrace:
		if p.TracePath == "" {
			return fmt.Errorf("trace path is empty: %w", ErrResourceUnavailable)
		}
	case ModeTracked:
		if p.Tracker < 0 || p.Tracker >= n {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidSelection, p.Tracker, n)
		}
		if p.ResultsPath == "" {
			return fmt.Errorf("results path is empty: %w", ErrResourceUnavailable)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMode, p.Mode)
	}
	return nil
}

// Open validates the policy for a system of n bodies and opens its stream.
// The trace file is truncated; the results file is opened for append so
// successive runs accumulate.
func Open(p Policy, n int) (Recorder, error) {
	if err := p.Validate(n); err != nil {
		return nil, err
	}

	switch p.Mode {
	case ModeTracked:
		f, err := os.OpenFile(p.ResultsPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open results %s: %w: %v", p.ResultsPath, ErrResourceUnavailable, err)
		}
		rec := NewTrackedRecorder(f, p.Tracker)
		rec.closer = f
		return rec, nil
	default:
		f, err := os.OpenFile(p.TracePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("open trace %s: %w: %v", p.TracePath, ErrResourceUnavailable, err)
		}
		rec := NewTraceRecorder(f)
		rec.closer = f
		if p.Snapshot {
			rec.rewind = f
		}
		return rec, nil
	}
}
