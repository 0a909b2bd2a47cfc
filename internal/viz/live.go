package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plife/internal/camera"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	maxFrames       = 900

	RandomForceMin float32 = -0.3
	RandomForceMax float32 = 1.0
	KickAmount     float32 = 50

	DefaultGIFPath = "plife.gif"
)

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

type TickMsg time.Time

// Model drives a World at the terminal frame rate and draws it on a braille
// canvas through a camera.
type Model struct {
	world         *sim.World
	name          string
	camera        *camera.Camera
	canvas        *Canvas
	width, height int
	running       bool
	tickTimer     *sim.Timer
	drawTimer     *sim.Timer
	tickAvg       time.Duration
	drawAvg       time.Duration
	energyHistory []float64
	tickHistory   []float64
	recording     bool
	frames        []*image.Paletted
	GIFPath       string
	status        string
	showHelp      bool
}

func NewModel(world *sim.World, name string) Model {
	return Model{
		world:         world,
		name:          name,
		camera:        camera.New(),
		canvas:        NewCanvas(width, height),
		width:         width,
		height:        height,
		running:       true,
		tickTimer:     sim.NewTimer(sim.DefaultTimerWindow),
		drawTimer:     sim.NewTimer(sim.DefaultTimerWindow),
		energyHistory: make([]float64, 0, historyCapacity),
		tickHistory:   make([]float64, 0, historyCapacity),
		GIFPath:       DefaultGIFPath,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "1":
		m.world.RandomizeForces(RandomForceMin, RandomForceMax)
		m.world.AccelerateAll(KickAmount)
		m.status = "forces randomized"
	case "2":
		m.world.ResetForces()
		m.status = "forces reset"
	case "up", "w":
		m.pan(camera.Up)
	case "down", "s":
		m.pan(camera.Down)
	case "left", "a":
		m.pan(camera.Left)
	case "right", "d":
		m.pan(camera.Right)
	case "+", "=":
		m.camera.Zoom(1)
	case "-", "_":
		m.camera.Zoom(-1)
	case "c":
		m.center()
	case "t":
		NextTheme()
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// fit is the scale at which the whole world fills the canvas.
func (m *Model) fit() float32 {
	p := m.world.Params()
	fx := float32(m.canvas.SubWidth()) / p.Width
	fy := float32(m.canvas.SubHeight()) / p.Height
	return min(fx, fy)
}

func (m *Model) viewport() sim.Viewport {
	v := m.camera.Viewport(float32(m.canvas.SubWidth()), float32(m.canvas.SubHeight()))
	v.Scale *= m.fit()
	return v
}

// pan moves the view by camera.MoveSensitivity dots.
func (m *Model) pan(d camera.Direction) {
	m.camera.Pan(d, camera.MoveSensitivity/(m.fit()*m.camera.Scale))
}

func (m *Model) center() {
	p := m.world.Params()
	f := m.fit()
	m.camera.Center(life.Vec{p.Width / 2, p.Height / 2},
		float32(m.canvas.SubWidth())/f, float32(m.canvas.SubHeight())/f)
}

func (m *Model) step() {
	stop := m.tickTimer.Start()
	m.world.Tick()
	stop()

	if avg, ok := m.tickTimer.Average(); ok {
		m.tickAvg = avg
	}
	m.energyHistory = appendCapped(m.energyHistory, metrics.Kinetic(m.world.Snapshot()))
	m.tickHistory = appendCapped(m.tickHistory, float64(m.tickAvg.Microseconds())/1000)
}

func appendCapped(history []float64, v float64) []float64 {
	history = append(history, v)
	if len(history) > historyCapacity {
		history = history[1:]
	}
	return history
}

func (m *Model) draw() {
	stop := m.drawTimer.Start()
	defer stop()

	m.canvas.Clear()
	v := m.viewport()

	p := m.world.Params()
	x0, y0 := m.clampX(-v.Origin.X()*v.Scale), m.clampY(-v.Origin.Y()*v.Scale)
	x1, y1 := m.clampX((p.Width-v.Origin.X())*v.Scale), m.clampY((p.Height-v.Origin.Y())*v.Scale)
	m.canvas.DrawRect(x0, y0, x1, y1)

	for _, s := range m.world.Draw(v) {
		m.canvas.SetColor(int(s.Position.X()), int(s.Position.Y()), s.Color)
	}

	if avg, ok := m.drawTimer.Average(); ok {
		m.drawAvg = avg
	}
}

// clampX and clampY keep border endpoints just outside the canvas so zoomed
// lines stay short.
func (m *Model) clampX(x float32) int {
	return max(-1, min(int(x), m.canvas.SubWidth()))
}

func (m *Model) clampY(y float32) int {
	return max(-1, min(int(y), m.canvas.SubHeight()))
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(CurrentTheme.ParticleStyles()))

	var s strings.Builder
	s.WriteString(titleStyle().Render(strings.ToUpper(m.name)) + "\n")
	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("REC %d", len(m.frames))))
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n")
	if m.status != "" {
		s.WriteString(Subtle.Render(m.status) + "\n")
	}
	s.WriteString("\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Foreground(CurrentTheme.Accent).Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.world.Ticks()))
	row("Particles", fmt.Sprintf("%d", m.world.Len()))
	row("Mode", m.world.Mode().String())
	row("Backend", m.world.Backend().Name())
	row("Tick time", formatAverage(m.tickAvg))
	row("Draw time", formatAverage(m.drawAvg))
	row("Zoom", fmt.Sprintf("%.2fx", m.camera.Scale))
	row("Theme", CurrentTheme.Name)
	s.WriteString(SparklineChart(m.tickHistory, 30) + "\n")

	s.WriteString("\nFORCES\n")
	s.WriteString(Subtle.Render(m.world.Forces().String()))

	s.WriteString(KeyHint.Render("\n" + Separator(30) + "\nSP:Pause 1:Random 2:Reset\nWASD:Pan +/-:Zoom C:Center\nT:Theme G:Record ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, Panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  1        - Random forces and kick   ║
║  2        - Restore initial forces   ║
║  WASD     - Pan camera               ║
║  + / -    - Zoom in / out            ║
║  C        - Center on the world      ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func formatAverage(d time.Duration) string {
	if d == 0 {
		return "measuring"
	}
	return d.Round(time.Microsecond).String()
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0, maxFrames)
		m.status = "recording"
		return
	}

	m.recording = false
	if err := saveGIF(m.GIFPath, m.frames); err != nil {
		m.status = err.Error()
	} else if len(m.frames) > 0 {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.GIFPath)
	}
	m.frames = nil
}

func (m *Model) captureFrame() {
	if len(m.frames) >= maxFrames {
		return
	}
	m.frames = append(m.frames, CanvasFrame(m.canvas))
}

const (
	frameCharW = 8
	frameCharH = 16
)

// framePalette holds the background, the border and one entry per particle
// color, in that order.
func framePalette() color.Palette {
	p := color.Palette{color.Black, color.Gray{Y: 128}}
	for _, c := range life.Colors() {
		r, g, b, a := c.RGBA()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: a})
	}
	return p
}

// CanvasFrame rasterizes the canvas into a paletted image, one block per dot.
func CanvasFrame(c *Canvas) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*frameCharW, c.Height*frameCharH), framePalette())
	dotW, dotH := frameCharW/2, frameCharH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blankCell)
			if pattern == 0 {
				continue
			}
			index := uint8(1)
			if cc := c.Colors[row][col]; cc != noColor {
				index = uint8(2 + int(cc))
			}
			baseX, baseY := col*frameCharW, row*frameCharH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, index)
						}
					}
				}
			}
		}
	}
	return img
}

func saveGIF(path string, frames []*image.Paletted) error {
	if len(frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// RunLive opens the terminal view on world until the user quits.
func RunLive(world *sim.World, name string) error {
	_, err := tea.NewProgram(NewModel(world, name), tea.WithAltScreen()).Run()
	return err
}
