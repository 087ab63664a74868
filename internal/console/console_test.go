package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/solarsys/internal/estimate"
	"github.com/san-kum/solarsys/internal/nbody"
)

type fakeRunner struct {
	visualized []int
	obtained   []int
	estimates  int
	err        error
}

func (f *fakeRunner) Visualize(ctx context.Context, sys *nbody.System) error {
	f.visualized = append(f.visualized, sys.Len())
	return f.err
}

func (f *fakeRunner) Obtain(ctx context.Context, sys *nbody.System, index int) error {
	f.obtained = append(f.obtained, index)
	return f.err
}

func (f *fakeRunner) Estimate(sys *nbody.System) (estimate.Estimate, error) {
	f.estimates++
	return estimate.Estimate{Projected: 2500 * time.Millisecond}, nil
}

func seed() *nbody.System {
	return nbody.NewSystem(
		nbody.NewBody("Sun", nbody.Vector3{}, nbody.Vector3{}, 1.988e30),
		nbody.NewBody("Mercury", nbody.Vector3{X: 57.9e9}, nbody.Vector3{Y: 47e3}, 3.3022e23),
	)
}

func run(t *testing.T, input string, r *fakeRunner) (*Console, string) {
	t.Helper()
	var out bytes.Buffer
	c := New(strings.NewReader(input), &out, seed, r, zerolog.Nop())
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return c, out.String()
}

func TestQuit(t *testing.T) {
	r := &fakeRunner{}
	_, out := run(t, "q\nv\n", r)
	if len(r.visualized) != 0 {
		t.Error("nothing should run after quit")
	}
	if !strings.Contains(out, "(v)isualize") {
		t.Error("menu not printed")
	}
}

func TestInvalidChoice(t *testing.T) {
	_, out := run(t, "x\nquit\n", &fakeRunner{})
	if !strings.Contains(out, "\aInvalid input!") {
		t.Errorf("expected invalid input message, got %q", out)
	}
}

func TestAddThenVisualizeReseeds(t *testing.T) {
	r := &fakeRunner{}
	input := "a\nComet\n1e11 2e11 0\n0 -1e4 0\n1e15\nv\nv\nq\n"

	c, out := run(t, input, r)

	if !strings.Contains(out, "Added [2] - Comet") {
		t.Errorf("add not confirmed: %q", out)
	}
	if len(r.visualized) != 2 || r.visualized[0] != 3 || r.visualized[1] != 2 {
		t.Errorf("expected runs over 3 then 2 bodies, got %v", r.visualized)
	}
	if c.System().Len() != 2 {
		t.Error("system should be re-seeded after a run")
	}
}

func TestAddRejectsBadNumbers(t *testing.T) {
	c, out := run(t, "a\nComet\n1 2\nq\n", &fakeRunner{})
	if !strings.Contains(out, "Invalid input!") {
		t.Error("expected rejection of a short vector")
	}
	if c.System().Len() != 2 {
		t.Error("rejected body must not be added")
	}
}

func TestObtain(t *testing.T) {
	r := &fakeRunner{}
	_, out := run(t, "o\n1\nq\n", r)

	if !strings.Contains(out, "[0] - Sun") || !strings.Contains(out, "[1] - Mercury") {
		t.Errorf("bodies not listed: %q", out)
	}
	if !strings.Contains(out, "Estimated duration of simulation is 2.5e+00 seconds.") {
		t.Errorf("estimate not printed: %q", out)
	}
	if len(r.obtained) != 1 || r.obtained[0] != 1 {
		t.Errorf("expected obtain on body 1, got %v", r.obtained)
	}
}

func TestObtainRejectsOutOfRange(t *testing.T) {
	r := &fakeRunner{}
	_, out := run(t, "o\n7\no\n-1\no\nfoo\nq\n", r)

	if strings.Count(out, "Invalid selection!") != 3 {
		t.Errorf("expected 3 rejections, got %q", out)
	}
	if len(r.obtained) != 0 || r.estimates != 0 {
		t.Error("no run or estimate for an invalid selection")
	}
}

func TestRunFailureIsReported(t *testing.T) {
	r := &fakeRunner{err: nbody.ErrDegenerateConfiguration}
	c, out := run(t, "v\nq\n", r)
	if !strings.Contains(out, "Run failed") {
		t.Errorf("failure not reported: %q", out)
	}
	if c.System().Len() != 2 {
		t.Error("system should be re-seeded after a failed run")
	}
}

func TestEndOfInput(t *testing.T) {
	r := &fakeRunner{}
	run(t, "a\nComet\n", r)
	run(t, "", r)
}
