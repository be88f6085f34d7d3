package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/field"
	"github.com/san-kum/driftsim/internal/step"
)

const (
	canvasWidth  = 72
	canvasHeight = 24
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	canvasStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	strandedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model renders a drifting particle cloud in the terminal, advancing the
// step pipeline on every tick.
type Model struct {
	pipeline *step.Pipeline
	sampler  *field.Sampler
	ensemble *drift.Ensemble
	cfg      drift.Config
	dt       float64

	// viewport bounds in metres, recentred on the cloud as it drifts
	x0, x1, y0, y1 float64

	t       float64
	paused  bool
	stepsPS int
}

func NewModel(pipeline *step.Pipeline, sampler *field.Sampler, ensemble *drift.Ensemble, cfg drift.Config, dt float64) Model {
	m := Model{
		pipeline: pipeline,
		sampler:  sampler,
		ensemble: ensemble,
		cfg:      cfg,
		dt:       dt,
		stepsPS:  10,
	}
	m.recenter()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick(m.stepsPS)
}

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case TickMsg:
		if !m.paused && m.ensemble.NumActive() > 0 {
			env := m.sampler.Sample(m.ensemble)
			m.pipeline.Step(m.ensemble, env, m.cfg, m.dt)
			m.t += m.dt
			m.recenter()
		}
		return m, tick(m.stepsPS)
	}
	return m, nil
}

// recenter keeps the viewport around the cloud's bounding box with a
// margin, so the view follows the drift.
func (m *Model) recenter() {
	first := true
	for i := range m.ensemble.X {
		if !m.ensemble.Status[i].Active() && m.ensemble.Status[i] != drift.StatusStranded {
			continue
		}
		x, y := m.ensemble.X[i], m.ensemble.Y[i]
		if first {
			m.x0, m.x1, m.y0, m.y1 = x, x, y, y
			first = false
			continue
		}
		if x < m.x0 {
			m.x0 = x
		}
		if x > m.x1 {
			m.x1 = x
		}
		if y < m.y0 {
			m.y0 = y
		}
		if y > m.y1 {
			m.y1 = y
		}
	}
	mx := 0.1*(m.x1-m.x0) + 1
	my := 0.1*(m.y1-m.y0) + 1
	m.x0 -= mx
	m.x1 += mx
	m.y0 -= my
	m.y1 += my
}

func (m Model) View() string {
	grid := make([][]rune, canvasHeight)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", canvasWidth))
	}

	stranded := make([][]bool, canvasHeight)
	for r := range stranded {
		stranded[r] = make([]bool, canvasWidth)
	}

	for i := range m.ensemble.X {
		status := m.ensemble.Status[i]
		if !status.Active() && status != drift.StatusStranded {
			continue
		}
		col := int((m.ensemble.X[i] - m.x0) / (m.x1 - m.x0) * float64(canvasWidth-1))
		row := int((m.y1 - m.ensemble.Y[i]) / (m.y1 - m.y0) * float64(canvasHeight-1))
		if col < 0 || col >= canvasWidth || row < 0 || row >= canvasHeight {
			continue
		}
		if status == drift.StatusStranded {
			grid[row][col] = 'x'
			stranded[row][col] = true
		} else if grid[row][col] == ' ' {
			grid[row][col] = '·'
		} else if grid[row][col] == '·' {
			grid[row][col] = 'o'
		} else if grid[row][col] == 'o' {
			grid[row][col] = '@'
		}
	}

	var canvas strings.Builder
	for r := range grid {
		for c, ch := range grid[r] {
			s := string(ch)
			if stranded[r][c] {
				canvas.WriteString(strandedStyle.Render(s))
			} else if ch != ' ' {
				canvas.WriteString(activeStyle.Render(s))
			} else {
				canvas.WriteString(s)
			}
		}
		canvas.WriteByte('\n')
	}

	header := headerStyle.Render("driftsim live")
	stats := labelStyle.Render(fmt.Sprintf(
		"t=%s  active=%d  stranded=%d  view=%.1fx%.1f km",
		(time.Duration(m.t) * time.Second).String(),
		m.ensemble.NumActive(),
		m.ensemble.CountStatus(drift.StatusStranded),
		(m.x1-m.x0)/1000, (m.y1-m.y0)/1000,
	))
	help := helpStyle.Render("space pause · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		canvasStyle.Render(strings.TrimRight(canvas.String(), "\n")),
		stats,
		help,
	)
}

// RunLive starts the live terminal view and blocks until the user quits.
func RunLive(pipeline *step.Pipeline, sampler *field.Sampler, ensemble *drift.Ensemble, cfg drift.Config, dt float64) error {
	p := tea.NewProgram(NewModel(pipeline, sampler, ensemble, cfg, dt))
	_, err := p.Run()
	return err
}
