package record

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/solarsys/internal/nbody"
)

// Recorder persists the state selected by a policy after each step.
type Recorder interface {
	Record(step int, sys *nbody.System) error
	Close() error
}

// Truncater is satisfied by *os.File.
type Truncater interface {
	io.Seeker
	Truncate(size int64) error
}

// TraceRecorder writes one line per body per step:
// x y z pointSize color.
type TraceRecorder struct {
	bw     *bufio.Writer
	closer io.Closer
	rewind Truncater
	frames int
}

func NewTraceRecorder(w io.Writer) *TraceRecorder {
	return &TraceRecorder{bw: bufio.NewWriter(w)}
}

// WriteTraceLine formats one body in the visualization stream format.
func WriteTraceLine(w io.Writer, b nbody.Body) error {
	_, err := fmt.Fprintf(w, "%e %e %e %f %d\n", b.Position.X, b.Position.Y, b.Position.Z, b.PointSize, b.Color)
	return err
}

func (r *TraceRecorder) Record(step int, sys *nbody.System) error {
	if r.rewind != nil {
		if err := r.reset(); err != nil {
			return err
		}
	}
	for i := 0; i < sys.Len(); i++ {
		if err := WriteTraceLine(r.bw, sys.Body(i)); err != nil {
			return fmt.Errorf("trace step %d: %w", step, err)
		}
	}
	if err := r.bw.Flush(); err != nil {
		return fmt.Errorf("trace step %d: %w", step, err)
	}
	r.frames++
	return nil
}

func (r *TraceRecorder) reset() error {
	if err := r.rewind.Truncate(0); err != nil {
		return fmt.Errorf("truncate trace: %w", err)
	}
	if _, err := r.rewind.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind trace: %w", err)
	}
	return nil
}

// Frames returns the number of frames written so far.
func (r *TraceRecorder) Frames() int { return r.frames }

func (r *TraceRecorder) Close() error {
	err := r.bw.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// TrackedRecorder writes the position of a single body per step: x y z.
type TrackedRecorder struct {
	bw     *bufio.Writer
	closer io.Closer
	index  int
}

func NewTrackedRecorder(w io.Writer, index int) *TrackedRecorder {
	return &TrackedRecorder{bw: bufio.NewWriter(w), index: index}
}

func (r *TrackedRecorder) Record(step int, sys *nbody.System) error {
	if !sys.Valid(r.index) {
		return fmt.Errorf("step %d: %w: %d", step, ErrInvalidSelection, r.index)
	}
	p := sys.Body(r.index).Position
	if _, err := fmt.Fprintf(r.bw, "%e %e %e\n", p.X, p.Y, p.Z); err != nil {
		return fmt.Errorf("results step %d: %w", step, err)
	}
	if err := r.bw.Flush(); err != nil {
		return fmt.Errorf("results step %d: %w", step, err)
	}
	return nil
}

func (r *TrackedRecorder) Close() error {
	err := r.bw.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Discard records nothing; used by runs that only need observers.
type Discard struct{}

func (Discard) Record(int, *nbody.System) error { return nil }
func (Discard) Close() error                    { return nil }
