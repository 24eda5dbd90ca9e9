// Package live steps the pipeline inside a Bubble Tea program and redraws
// the trajectory after every tick.
package live

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gncsim/internal/sim"
	"github.com/san-kum/gncsim/internal/viz"
)

const (
	width        = 64
	height       = 18
	tickInterval = time.Second / 10
	orbitStep    = 0.1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	faultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a Simulator one step per tick. The simulator should be built
// with a discarded progress writer, since its step lines would tear the view.
type Model struct {
	ctx     context.Context
	sim     *sim.Simulator
	limit   int
	canvas  *viz.Canvas
	camera  viz.Camera
	running bool
	view3D  bool
	last    sim.StepRecord
	stepped bool
}

// NewModel returns a running model. Stepping pauses once limit steps have
// been taken; limit <= 0 runs until quit.
func NewModel(ctx context.Context, s *sim.Simulator, limit int) Model {
	return Model{
		ctx:     ctx,
		sim:     s,
		limit:   limit,
		canvas:  viz.NewCanvas(width, height),
		camera:  viz.NewCamera(),
		running: true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.sim.Reset()
			m.last = sim.StepRecord{}
			m.stepped = false
			m.running = true
		case "m":
			m.view3D = !m.view3D
		case "left", "h":
			m.camera.Orbit(-orbitStep, 0)
		case "right", "l":
			m.camera.Orbit(orbitStep, 0)
		case "up", "k":
			m.camera.Orbit(0, orbitStep)
		case "down", "j":
			m.camera.Orbit(0, -orbitStep)
		}
	case TickMsg:
		if m.running && !m.done() {
			m.last = m.sim.Step(m.ctx)
			m.stepped = true
		}
		if m.done() {
			m.running = false
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) done() bool {
	return m.limit > 0 && m.sim.StepCount() >= m.limit
}

func (m Model) draw() {
	m.canvas.Clear()
	traj := m.sim.Trajectory()
	if traj.Len() == 0 {
		return
	}
	if m.view3D {
		viz.Render3D(m.canvas, traj, m.camera)
	} else {
		viz.Render2D(m.canvas, traj)
	}
}

func (m Model) View() string {
	m.draw()

	status := "RUNNING"
	switch {
	case m.done():
		status = "COMPLETE"
	case !m.running:
		status = "PAUSED"
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(strings.ToUpper(m.sim.Name())) + "\n")
	stats.WriteString(status + "\n\n")

	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	pos := m.sim.Position()
	row("step", fmt.Sprintf("%d", m.sim.StepCount()))
	row("actuated", fmt.Sprintf("%d", m.sim.Actuations()))
	row("x", fmt.Sprintf("%8.2f", pos.X))
	row("y", fmt.Sprintf("%8.2f", pos.Y))
	row("z", fmt.Sprintf("%8.2f", pos.Z))
	if m.stepped {
		w := m.last.Env.Wind
		row("wind", fmt.Sprintf("(%.2f, %.2f, %.2f)", w.X, w.Y, w.Z))
		row("gravity", fmt.Sprintf("%.3f", m.last.Env.Gravity))
		if m.last.SensorCorrupted() {
			stats.WriteString(faultStyle.Render("SENSOR FAULT") + "\n")
		}
		if m.last.ActuatorCorrupted() {
			stats.WriteString(faultStyle.Render("ACTUATOR FAULT") + "\n")
		}
	}

	mode := "x vs cross-range"
	if m.view3D {
		mode = "3D"
	}
	stats.WriteString(helpStyle.Render("view: " + mode + "\n\nspace pause  r reset\nm 2D/3D  hjkl orbit\nq quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(stats.String()))
}

// Run blocks until the user quits.
func Run(ctx context.Context, s *sim.Simulator, limit int) error {
	_, err := tea.NewProgram(NewModel(ctx, s, limit), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
