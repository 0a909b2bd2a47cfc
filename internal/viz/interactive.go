package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	bright  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	keyCap  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errText = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var presetInfo = map[string]string{
	"emergence": "default attraction matrix",
	"real":      "two bodies, inverse square",
	"chaos":     "random forces",
	"clusters":  "perlin noise spawn",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// Tunable fields shown on the config screen.
const (
	fieldParticles = "particles"
	fieldFriction  = "friction"
	fieldRepel     = "repel"
	fieldWorkers   = "workers"
	fieldSeed      = "seed"
)

var fieldNames = []string{fieldParticles, fieldFriction, fieldRepel, fieldWorkers, fieldSeed}

var fieldStep = map[string]float64{
	fieldParticles: 100,
	fieldFriction:  0.05,
	fieldRepel:     0.05,
	fieldWorkers:   1,
	fieldSeed:      1,
}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	params        map[string]float64
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	world         *sim.World
	liveModel     Model
}

func NewInteractiveApp() *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.params = paramsFromConfig(m.cfg)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	name := fieldNames[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.params[name] = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(fieldNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, formatField(name, m.params[name])
	case "m":
		if m.cfg.PhysicsMode() == life.Real {
			m.cfg.Mode = life.Emergence.String()
		} else {
			m.cfg.Mode = life.Real.String()
		}
	case "s":
		cmd := m.start()
		return m, cmd
	case "left", "h":
		m.params[name] -= fieldStep[name]
	case "right", "l":
		m.params[name] += fieldStep[name]
	}
	return m, nil
}

func paramsFromConfig(cfg *config.Config) map[string]float64 {
	perColor := 0
	for _, n := range cfg.Particles {
		perColor = max(perColor, n)
	}
	return map[string]float64{
		fieldParticles: float64(perColor),
		fieldFriction:  float64(cfg.Physics.Friction),
		fieldRepel:     float64(cfg.Physics.RepelRadius),
		fieldWorkers:   float64(cfg.Workers),
		fieldSeed:      float64(cfg.Seed),
	}
}

// apply writes the edited fields back. A zero particle count keeps the
// preset's own counts.
func (m *model) apply() {
	if n := int(m.params[fieldParticles]); n > 0 {
		for _, c := range life.Colors() {
			m.cfg.Particles[c.String()] = n
		}
	}
	m.cfg.Physics.Friction = float32(m.params[fieldFriction])
	m.cfg.Physics.RepelRadius = float32(m.params[fieldRepel])
	m.cfg.Workers = max(0, int(m.params[fieldWorkers]))
	m.cfg.Seed = int64(m.params[fieldSeed])
}

func (m *model) start() tea.Cmd {
	m.apply()
	world, err := m.cfg.Build()
	if err != nil {
		m.err = err
		return nil
	}
	m.world = world
	m.liveModel = NewModel(world, m.selected)
	m.state = stateSim
	return m.liveModel.Init()
}

func formatField(name string, v float64) string {
	switch name {
	case fieldParticles, fieldWorkers, fieldSeed:
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyCap.Render(pairs[i]) + dim.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle().Render("PLIFE") + "\n    " + Subtle.Render("particle life") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cyan.Render("▸"), bright.Render(fmt.Sprintf("%-12s", name)), magenta.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", dim.Render(fmt.Sprintf("  %-12s", name)), dimmer.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle().Render(strings.ToUpper(m.selected)) + "\n    " + Subtle.Render(presetInfo[m.selected]+" · "+m.cfg.Mode) + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range fieldNames {
		valStr := fmt.Sprintf("%8s", formatField(name, m.params[name]))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cyan.Render("▸"), bright.Render(fmt.Sprintf("%-10s", name)), magenta.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", dim.Render(fmt.Sprintf("  %-10s", name)), dimmer.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errText.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "m", "mode", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker and then the live view.
func RunInteractive() error {
	final, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	if m, ok := final.(model); ok && m.world != nil {
		m.world.Close()
	}
	return err
}
