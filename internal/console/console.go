// Package console implements the line-oriented operator menu: visualize,
// obtain, add and quit.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/san-kum/solarsys/internal/estimate"
	"github.com/san-kum/solarsys/internal/nbody"
	"github.com/san-kum/solarsys/internal/viz"
)

var errInvalidInput = errors.New("invalid input")

// Runner executes the runs the menu asks for.
type Runner interface {
	Visualize(ctx context.Context, sys *nbody.System) error
	Obtain(ctx context.Context, sys *nbody.System, index int) error
	Estimate(sys *nbody.System) (estimate.Estimate, error)
}

// Console keeps the working system between menu actions. Bodies added
// through the menu last until the next run completes; the system is then
// re-seeded.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	seed   func() *nbody.System
	runner Runner
	logger zerolog.Logger
	sys    *nbody.System
}

func New(in io.Reader, out io.Writer, seed func() *nbody.System, runner Runner, logger zerolog.Logger) *Console {
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		seed:   seed,
		runner: runner,
		logger: logger,
		sys:    seed(),
	}
}

// System returns the working system.
func (c *Console) System() *nbody.System { return c.sys }

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) banner() {
	title := viz.GradientText("S O L A R S Y S", lipgloss.Color("#ffcc00"), lipgloss.Color("#00ccff"))
	c.printf("%s\n", viz.Panel.Render(title+"\n"+viz.Subtle.Render(fmt.Sprintf("%d bodies loaded", c.sys.Len()))))
}

// Run loops over the menu until quit, end of input or ctx cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.banner()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := c.readLine("\nSelect option: (v)isualize, (o)btain, (a)dd, (q)uit: ")
		if errors.Is(err, io.EOF) {
			c.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "v", "visualize":
			c.runAndReseed(func() error { return c.runner.Visualize(ctx, c.sys) })
		case "o", "obtain":
			if err := c.obtain(ctx); errors.Is(err, io.EOF) {
				return nil
			}
		case "a", "add":
			if err := c.add(); errors.Is(err, io.EOF) {
				return nil
			}
		case "q", "quit":
			return nil
		default:
			c.printf("\aInvalid input!\n")
		}
	}
}

func (c *Console) runAndReseed(run func() error) {
	if err := run(); err != nil {
		c.logger.Error().Err(err).Msg("run failed")
		c.printf("%s\n", viz.StatusFault.Render("Run failed: "+err.Error()))
	}
	c.sys = c.seed()
}

func (c *Console) obtain(ctx context.Context) error {
	c.printf("\nObjects:\n")
	for i := 0; i < c.sys.Len(); i++ {
		c.printf("[%d] - %s\n", i, c.sys.Body(i).Name)
	}

	line, err := c.readLine("Select object to track: ")
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(line)
	if err != nil || !c.sys.Valid(index) {
		c.printf("\aInvalid selection!\n")
		return nil
	}

	est, err := c.runner.Estimate(c.sys)
	if err != nil {
		c.printf("Estimate failed: %v\n", err)
	} else {
		c.printf("Estimated duration of simulation is %s.\n", est)
	}

	c.runAndReseed(func() error { return c.runner.Obtain(ctx, c.sys, index) })
	return nil
}

func (c *Console) add() error {
	name, err := c.readLine("Name: ")
	if err != nil {
		return err
	}
	pos, err := c.readVector("Position x y z (m): ")
	if err != nil {
		return c.rejectInput(err)
	}
	vel, err := c.readVector("Velocity vx vy vz (m/s): ")
	if err != nil {
		return c.rejectInput(err)
	}
	massLine, err := c.readLine("Mass (kg): ")
	if err != nil {
		return err
	}
	mass, err := strconv.ParseFloat(massLine, 64)
	if err != nil {
		return c.rejectInput(errInvalidInput)
	}

	i := c.sys.AddBody(nbody.NewBody(name, pos, vel, mass))
	c.printf("Added [%d] - %s\n", i, c.sys.Body(i).Name)
	return nil
}

func (c *Console) rejectInput(err error) error {
	if errors.Is(err, io.EOF) {
		return err
	}
	c.printf("\aInvalid input!\n")
	return nil
}

func (c *Console) readVector(prompt string) (nbody.Vector3, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return nbody.Vector3{}, err
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nbody.Vector3{}, errInvalidInput
	}
	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nbody.Vector3{}, errInvalidInput
		}
		xyz[i] = v
	}
	return nbody.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
