package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/solarsys/internal/integrators"
	"github.com/san-kum/solarsys/internal/nbody"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected lit pixels")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected lit pixel")
	}
	if got := c.String(); got != "⠁⢀\n" {
		t.Errorf("unexpected canvas %q", got)
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("clear left pixels set")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("pixel %d not set", x)
		}
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(10)

	x, y, ok := cam.Project(nbody.Vector3{}, 100, 60)
	if !ok || x != 50 || y != 30 {
		t.Errorf("origin projected to (%d, %d, %v)", x, y, ok)
	}

	x, y, ok = cam.Project(nbody.Vector3{X: 10}, 100, 60)
	if !ok || x != 80 || y != 30 {
		t.Errorf("edge projected to (%d, %d, %v)", x, y, ok)
	}

	_, _, ok = cam.Project(nbody.Vector3{Y: 20}, 100, 60)
	if ok {
		t.Error("point beyond extent should be outside")
	}

	cam.Tilt = math.Pi / 2
	_, y, _ = cam.Project(nbody.Vector3{Y: 10}, 100, 60)
	if y != 30 {
		t.Errorf("edge-on view should flatten y, got %d", y)
	}
}

func TestFitExtent(t *testing.T) {
	sys := nbody.NewSystem(
		nbody.NewBody("a", nbody.Vector3{}, nbody.Vector3{}, 1),
		nbody.NewBody("b", nbody.Vector3{X: 3, Y: 4}, nbody.Vector3{}, 1),
	)
	if got := FitExtent(sys); math.Abs(got-5.5) > 1e-12 {
		t.Errorf("expected 5.5, got %g", got)
	}
}

func seed() *nbody.System {
	v := 2 * math.Pi * 149.6e9 / (86400 * 365.2)
	return nbody.NewSystem(
		nbody.NewBody("Sun", nbody.Vector3{}, nbody.Vector3{}, 1.988e30),
		nbody.NewBody("Earth", nbody.Vector3{X: 149.6e9}, nbody.Vector3{Y: v}, 5.9722e24),
	)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAdvances(t *testing.T) {
	m := NewModel(seed, integrators.NewSymplecticEuler(), 1e5, Options{Tracker: 1, StepsPerTick: 3})

	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m = next.(Model)
	if m.Step() != 3 {
		t.Errorf("expected 3 steps, got %d", m.Step())
	}
	if m.System().Body(1).Position.Y <= 0 {
		t.Error("earth should have moved prograde")
	}
}

func TestModelPauseAndReset(t *testing.T) {
	m := NewModel(seed, integrators.NewSymplecticEuler(), 1e5, Options{Tracker: 1})

	next, _ := m.Update(key(" "))
	m = next.(Model)
	if m.Running() {
		t.Fatal("space should pause")
	}

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Step() != 0 {
		t.Error("paused model should not step")
	}

	next, _ = m.Update(key(" "))
	m = next.(Model)
	for i := 0; i < 5; i++ {
		next, _ = m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	if m.Step() != 5 {
		t.Errorf("expected 5 steps, got %d", m.Step())
	}

	next, _ = m.Update(key("r"))
	m = next.(Model)
	if m.Step() != 0 || m.System().Body(1) != seed().Body(1) {
		t.Error("reset should re-seed the system")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(seed, integrators.NewSymplecticEuler(), 1e5, Options{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelFaultPauses(t *testing.T) {
	coincident := func() *nbody.System {
		return nbody.NewSystem(
			nbody.NewBody("a", nbody.Vector3{}, nbody.Vector3{}, 1),
			nbody.NewBody("b", nbody.Vector3{}, nbody.Vector3{}, 1),
		)
	}
	m := NewModel(coincident, integrators.NewSymplecticEuler(), 1, Options{})

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Err() == nil || m.Running() {
		t.Error("non-finite state should fault and pause")
	}
	if !strings.Contains(m.View(), "FAULT") {
		t.Error("view should show the fault")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(seed, integrators.NewSymplecticEuler(), 1e5, Options{Tracker: 1})
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}

	view := m.View()
	for _, want := range []string{"Earth", "Step", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 4); got != "▁█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{1, 2, 3, 4, 5}, 2); len([]rune(got)) != 2 {
		t.Errorf("sparkline not trimmed: %q", got)
	}
}

func TestBodyColor(t *testing.T) {
	if BodyColor(8) != bodyPalette[8] || BodyColor(9) != bodyPalette[0] || BodyColor(-1) != bodyPalette[1] {
		t.Error("unexpected palette mapping")
	}
}
