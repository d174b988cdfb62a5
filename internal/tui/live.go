package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/san-kum/termrain/internal/config"
	"github.com/san-kum/termrain/internal/metrics"
	"github.com/san-kum/termrain/internal/rain"
	"github.com/san-kum/termrain/internal/viz"
)

const (
	statusHeight  = 1
	historyLength = 40
	resetStyle    = termenv.CSI + termenv.ResetSeq + "m"
)

type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the full-screen live view. The grid follows the window size
// unless the configuration pins the dimensions.
type Model struct {
	cfg     *config.Config
	theme   viz.Theme
	styles  rain.Styles
	engine  *rain.Engine
	comp    *rain.Compositor
	history *metrics.Series

	color  bool
	paused bool
	status bool

	width  int
	height int
	frame  string
	err    error
}

func NewModel(cfg *config.Config, profile termenv.Profile) Model {
	theme := viz.GetTheme(cfg.Theme)
	styles := theme.Styles(profile)
	return Model{
		cfg:     cfg,
		theme:   theme,
		styles:  styles,
		comp:    rain.NewCompositor(styles, cfg.Workers),
		history: metrics.NewSeries(historyLength),
		color:   cfg.Color && profile != termenv.Ascii,
		status:  cfg.Status,
	}
}

func (m Model) Init() tea.Cmd { return tick(m.cfg.FrameInterval) }

func (m Model) Err() error { return m.err }

func (m Model) Engine() *rain.Engine { return m.engine }

func (m Model) mode() rain.StyleMode {
	if m.color {
		return rain.Tiered
	}
	return rain.Plain
}

func (m Model) gridSize() (int, int) {
	cols, rows := m.cfg.Columns, m.cfg.Rows
	if cols <= 0 {
		cols = m.width
	}
	if rows <= 0 {
		rows = m.height
		if m.status {
			rows -= statusHeight
		}
	}
	return cols, rows
}

func (m *Model) rebuild() {
	cols, rows := m.gridSize()
	opts, err := m.cfg.EngineOptions(cols, rows)
	if err == nil {
		m.engine, err = rain.NewEngine(opts)
	}
	if err != nil {
		m.err = err
		m.engine = nil
		log.Printf("rebuild %dx%d: %v", cols, rows, err)
		return
	}
	m.err = nil
	m.history.Reset()
	m.render()
	log.Printf("grid %dx%d seed=%d workers=%d", cols, rows, opts.Seed, m.engine.Workers())
}

func (m *Model) render() {
	if m.engine == nil {
		m.frame = ""
		return
	}
	frame := m.comp.Composite(m.engine.Grid(), m.mode())
	frame = strings.TrimSuffix(frame, "\n")
	if m.styles != (rain.Styles{}) {
		frame += resetStyle
	}
	m.frame = frame
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuild()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			log.Printf("paused=%v", m.paused)
		case "c":
			m.color = !m.color && len(m.styles.Tiers[rain.BrightWhite]) > 0
			m.render()
		case "s":
			m.status = !m.status
			m.rebuild()
		case "r":
			if m.engine != nil {
				m.engine.Reset()
				m.history.Reset()
				m.render()
			}
		}
		return m, nil

	case tickMsg:
		if !m.paused && m.engine != nil {
			m.engine.Step()
			m.history.Add(metrics.Occupancy(m.engine.Grid()))
			m.render()
		}
		return m, tick(m.cfg.FrameInterval)
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("termrain: %v\n\npress q to quit", m.err)
	}
	if m.engine == nil {
		return ""
	}
	if !m.status {
		return m.frame
	}
	return m.frame + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	label := viz.StatusTitle.Render("termrain")
	if m.paused {
		label = viz.StatusPaused.Render("paused")
	}
	g := m.engine.Grid()
	parts := []string{
		label,
		viz.Metric("tick", fmt.Sprintf("%d", m.engine.Ticks())),
		viz.Metric("grid", fmt.Sprintf("%dx%d", g.Columns(), g.Rows())),
		viz.Metric("theme", m.theme.Name),
		viz.Metric("density", fmt.Sprintf("%.1f%%", m.history.Last()*100)),
		viz.SparklineChart(m.history.Values(), historyLength),
		viz.KeyHint.Render("space pause · c colour · s status · r reset · q quit"),
	}
	return viz.StatusLine(m.width, parts...)
}

// Run starts the live view on the current terminal.
func Run(cfg *config.Config) error {
	m := NewModel(cfg, lipgloss.ColorProfile())
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
