package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/qsim/internal/dynamo"
	"github.com/san-kum/qsim/internal/grid"
	"github.com/san-kum/qsim/internal/metrics"
)

const (
	plotWidth    = 72
	plotHeight   = 16
	maxPerFrame  = 64
	defaultFrame = 4
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model animates a wavefunction under a propagator.
type Model struct {
	name     string
	grid     *grid.Grid
	prop     dynamo.Propagator
	measure  metrics.Measure
	initial  dynamo.Wavefunction
	psi      dynamo.Wavefunction
	step     int
	limit    int
	perFrame int
	running  bool
}

// NewModel starts from a copy of psi. The animation pauses after limit
// steps; limit <= 0 runs until quit.
func NewModel(name string, g *grid.Grid, prop dynamo.Propagator, psi dynamo.Wavefunction, m metrics.Measure, limit int) Model {
	return Model{
		name:     name,
		grid:     g,
		prop:     prop,
		measure:  m,
		initial:  psi.Clone(),
		psi:      psi.Clone(),
		limit:    limit,
		perFrame: defaultFrame,
		running:  true,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles key presses and advances the state on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "+", "=":
			m.perFrame = min(m.perFrame*2, maxPerFrame)
		case "-", "_":
			m.perFrame = max(m.perFrame/2, 1)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.perFrame; i++ {
		if m.limit > 0 && m.step >= m.limit {
			m.running = false
			return
		}
		m.prop.Step(m.psi)
		m.step++
	}
}

func (m *Model) restart() {
	m.psi = m.initial.Clone()
	m.step = 0
	m.running = true
}

// Time is the simulated time of the current frame.
func (m Model) Time() float64 { return float64(m.step) * m.prop.Dt() }

// Steps is the number of steps applied so far.
func (m Model) Steps() int { return m.step }

// View draws the density plot beside the run statistics.
func (m Model) View() string {
	rho := m.psi.Density()
	chart := asciigraph.Plot(Downsample(rho, plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("|psi|^2 on [%.1f, %.1f]", m.grid.Min(), m.grid.Max())))

	obs := metrics.Evaluate(m.grid, m.psi, m.measure)
	status := "RUNNING"
	if !m.running {
		status = pausedStyle.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f", m.Time())) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(labelStyle.Render("Steps/frame") + valueStyle.Render(fmt.Sprintf("%d", m.perFrame)) + "\n")
	s.WriteString(labelStyle.Render("Total") + valueStyle.Render(fmt.Sprintf("%.6f", obs.Total)) + "\n")
	s.WriteString(labelStyle.Render("Region") + valueStyle.Render(fmt.Sprintf("%.6f", obs.Region)) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause R:Restart\n+/-:Speed Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(chart), statsStyle.Render(s.String()))
}

// Downsample reduces v to at most width points by averaging buckets.
func Downsample(v []float64, width int) []float64 {
	if width <= 0 || len(v) <= width {
		out := make([]float64, len(v))
		copy(out, v)
		return out
	}
	out := make([]float64, width)
	for i := range out {
		lo := i * len(v) / width
		hi := (i + 1) * len(v) / width
		sum := 0.0
		for _, x := range v[lo:hi] {
			sum += x
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
