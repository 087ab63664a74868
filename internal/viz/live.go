package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/solarsys/internal/integrators"
	"github.com/san-kum/solarsys/internal/metrics"
	"github.com/san-kum/solarsys/internal/nbody"
)

const (
	width           = 72
	height          = 24
	historyCapacity = 600
	trailCapacity   = 2000
	secondsPerDay   = 86400.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

type point struct{ x, y int }

// Options tune the live view.
type Options struct {
	Tracker      int
	StepsPerTick int
	FPS          int
}

// Model steps a system on every tick and draws it onto a Braille canvas.
type Model struct {
	seed       func() *nbody.System
	sys        *nbody.System
	integrator integrators.Integrator
	dt         float64
	opts       Options
	step       int
	canvas     *Canvas
	camera     *Camera
	trail      []point
	distances  []float64
	drift      *metrics.MomentumDrift
	energy     *metrics.EnergyDrift
	running    bool
	err        error
}

// NewModel seeds the system from seed; reset calls it again.
func NewModel(seed func() *nbody.System, integ integrators.Integrator, dt float64, opts Options) Model {
	if opts.StepsPerTick <= 0 {
		opts.StepsPerTick = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	sys := seed()
	m := Model{
		seed:       seed,
		sys:        sys,
		integrator: integ,
		dt:         dt,
		opts:       opts,
		canvas:     NewCanvas(width, height),
		camera:     NewCamera(FitExtent(sys)),
		trail:      make([]point, 0, trailCapacity),
		distances:  make([]float64, 0, historyCapacity),
		drift:      metrics.NewMomentumDrift(),
		energy:     metrics.NewEnergyDrift(),
		running:    true,
	}
	m.drift.Observe(0, sys)
	m.energy.Observe(0, sys)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "+", "=":
			m.camera.ZoomIn()
			m.trail = m.trail[:0]
		case "-", "_":
			m.camera.ZoomOut()
			m.trail = m.trail[:0]
		case "x":
			m.camera.Tilt += 0.1
			m.trail = m.trail[:0]
		case "X":
			m.camera.Tilt -= 0.1
			m.trail = m.trail[:0]
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance takes StepsPerTick steps and pauses on a non-finite state.
func (m *Model) advance() {
	for i := 0; i < m.opts.StepsPerTick; i++ {
		m.integrator.Step(m.sys, m.dt)
		m.step++

		if !m.sys.IsFinite() {
			m.err = fmt.Errorf("step %d: %w", m.step, nbody.ErrDegenerateConfiguration)
			m.running = false
			return
		}

		m.drift.Observe(m.step, m.sys)
		m.energy.Observe(m.step, m.sys)
		m.recordTrail()
	}
}

func (m *Model) recordTrail() {
	sw, sh := m.canvas.PixelSize()
	for i := 0; i < m.sys.Len(); i++ {
		if x, y, ok := m.camera.Project(m.sys.Body(i).Position, sw, sh); ok {
			m.trail = append(m.trail, point{x, y})
		}
	}
	if over := len(m.trail) - trailCapacity; over > 0 {
		m.trail = m.trail[over:]
	}

	if m.sys.Valid(m.opts.Tracker) && m.opts.Tracker != 0 {
		d := m.sys.Body(m.opts.Tracker).Position.Distance(m.sys.Body(0).Position)
		m.distances = append(m.distances, d)
		if len(m.distances) > historyCapacity {
			m.distances = m.distances[1:]
		}
	}
}

func (m *Model) reset() {
	m.sys = m.seed()
	m.step = 0
	m.err = nil
	m.running = true
	m.trail = m.trail[:0]
	m.distances = m.distances[:0]
	m.drift.Reset()
	m.energy.Reset()
	m.drift.Observe(0, m.sys)
	m.energy.Observe(0, m.sys)
}

// Step returns the number of steps taken since the last reset.
func (m Model) Step() int { return m.step }

func (m Model) Running() bool { return m.running }

func (m Model) Err() error { return m.err }

func (m Model) System() *nbody.System { return m.sys }

func (m *Model) draw() {
	m.canvas.Clear()
	for _, p := range m.trail {
		m.canvas.Set(p.x, p.y)
	}
	sw, sh := m.canvas.PixelSize()
	for i := 0; i < m.sys.Len(); i++ {
		b := m.sys.Body(i)
		if x, y, ok := m.camera.Project(b.Position, sw, sh); ok {
			m.canvas.Disc(x, y, bodyRadius(b.PointSize))
		}
	}
}

func bodyRadius(size float64) int {
	switch {
	case size >= 4:
		return 2
	case size >= 1.5:
		return 1
	default:
		return 0
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(fmt.Sprintf("SOLARSYS  %d bodies", m.sys.Len())) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusFault.Render("FAULT") + " " + Subtle.Render(m.err.Error()))
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	s.WriteString(MetricLabel.Render("Step") + MetricValue.Render(fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(MetricLabel.Render("Days") + MetricValue.Render(fmt.Sprintf("%.1f", float64(m.step)*m.dt/secondsPerDay)) + "\n")
	s.WriteString(MetricLabel.Render("dt") + MetricValue.Render(fmt.Sprintf("%.2e s", m.dt)) + "\n")
	s.WriteString(MetricLabel.Render("Zoom") + MetricValue.Render(fmt.Sprintf("%.2fx", m.camera.Zoom)) + "\n")
	s.WriteString(MetricLabel.Render("dP/P") + MetricValue.Render(fmt.Sprintf("%.2e", m.drift.Value())) + "\n")
	s.WriteString(MetricLabel.Render("dE/E") + MetricValue.Render(fmt.Sprintf("%.2e", m.energy.Value())) + "\n")

	if m.sys.Valid(m.opts.Tracker) && len(m.distances) > 1 {
		name := m.sys.Body(m.opts.Tracker).Name
		chart := asciigraph.Plot(m.distances, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption(name+" distance (m)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n")
	for i := 0; i < m.sys.Len(); i++ {
		b := m.sys.Body(i)
		dot := lipgloss.NewStyle().Foreground(BodyColor(b.Color)).Render("●")
		s.WriteString(fmt.Sprintf("%s [%d] %s\n", dot, i, b.Name))
	}

	s.WriteString("\n" + KeyHint.Render("SP:Pause R:Reset Q:Quit\n+/-:Zoom x/X:Tilt"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
