// Package gnuplot drives an external gnuplot process that re-plots the trace
// file after every recorded frame.
package gnuplot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/solarsys/internal/nbody"
)

var (
	ErrUnavailable = errors.New("gnuplot: plotter unavailable")
	ErrNotStarted  = errors.New("gnuplot: plotter not started")
)

const (
	DefaultCommand = "gnuplot"
	DefaultRange   = 3e11
	DefaultZRange  = 1e4
	DefaultDelay   = 50 * time.Millisecond
)

type Options struct {
	Command   string
	TracePath string
	Range     float64
	ZRange    float64
	Delay     time.Duration
	// Every plots on every n-th step; 0 or 1 plots every step.
	Every int
}

func (o *Options) defaults() {
	if o.Command == "" {
		o.Command = DefaultCommand
	}
	if o.Range <= 0 {
		o.Range = DefaultRange
	}
	if o.ZRange <= 0 {
		o.ZRange = DefaultZRange
	}
	if o.Every <= 0 {
		o.Every = 1
	}
}

// Plotter owns the plotting process for the duration of one run.
type Plotter struct {
	opts   Options
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	w      *bufio.Writer
	sleep  func(time.Duration)
	logger zerolog.Logger
	plots  int
	err    error
}

type Option func(*Plotter)

func WithLogger(l zerolog.Logger) Option {
	return func(p *Plotter) { p.logger = l }
}

func New(opts Options, options ...Option) *Plotter {
	opts.defaults()
	p := &Plotter{
		opts:   opts,
		sleep:  time.Sleep,
		logger: zerolog.Nop(),
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// NewWithWriter sends commands to w instead of a process.
func NewWithWriter(w io.Writer, opts Options, options ...Option) *Plotter {
	p := New(opts, options...)
	p.w = bufio.NewWriter(w)
	return p
}

// Start launches "gnuplot -p" (unless a writer was injected) and sends the
// scene setup.
func (p *Plotter) Start(ctx context.Context) error {
	if p.w == nil {
		path, err := exec.LookPath(p.opts.Command)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		p.cmd = exec.CommandContext(ctx, path, "-p")
		stdin, err := p.cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if err := p.cmd.Start(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		p.stdin = stdin
		p.w = bufio.NewWriter(stdin)
		p.logger.Debug().Str("command", path).Int("pid", p.cmd.Process.Pid).Msg("plotter started")
	}

	r, z := p.opts.Range, p.opts.ZRange
	return p.send(
		"set title 'A N I M A T I O N'",
		"unset key",
		fmt.Sprintf("set xrange [%.0f:%.0f]", -r, r),
		fmt.Sprintf("set yrange [%.0f:%.0f]", -r, r),
		fmt.Sprintf("set zrange [%.0f:%.0f]", -z, z),
	)
}

func (p *Plotter) send(lines ...string) error {
	if p.w == nil {
		return ErrNotStarted
	}
	for _, l := range lines {
		if _, err := p.w.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return p.w.Flush()
}

// Plot redraws the trace file and waits for the configured delay.
func (p *Plotter) Plot() error {
	cmd := fmt.Sprintf("splot '%s' using 1:2:3:4:5 with points pointtype 7 pointsize variable lc variable", p.opts.TracePath)
	if err := p.send(cmd); err != nil {
		return err
	}
	p.plots++
	if p.opts.Delay > 0 {
		p.sleep(p.opts.Delay)
	}
	return nil
}

// OnStep plots every Every-th step. The first failure is kept and later
// steps are skipped.
func (p *Plotter) OnStep(step int, sys *nbody.System) {
	if p.err != nil || step%p.opts.Every != 0 {
		return
	}
	if err := p.Plot(); err != nil {
		p.err = err
		p.logger.Warn().Err(err).Int("step", step).Msg("plot failed")
	}
}

// Plots returns the number of redraws sent.
func (p *Plotter) Plots() int { return p.plots }

func (p *Plotter) Err() error { return p.err }

// Close asks gnuplot to exit and waits for the process.
func (p *Plotter) Close() error {
	if p.w == nil {
		return nil
	}
	err := p.send("exit")
	if p.stdin != nil {
		if cerr := p.stdin.Close(); err == nil {
			err = cerr
		}
	}
	if p.cmd != nil {
		if werr := p.cmd.Wait(); err == nil {
			err = werr
		}
	}
	p.w = nil
	return err
}
