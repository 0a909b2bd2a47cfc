package viz

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	particles := []life.Particle{
		life.NewParticle(life.Vec{1000, 1000}, life.Vec{}, life.Red),
		life.NewParticle(life.Vec{1010, 1000}, life.Vec{}, life.Green),
	}
	forces := life.ForcesTable{}.With(life.Red, life.Green, 0.5)
	w, err := sim.New(particles, forces, life.Emergence, sim.Config{
		Params:  life.DefaultParams(),
		Backend: compute.SerialBackend{},
		Seed:    3,
	})
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	return NewModel(w, "test")
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTick(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, TickMsg(time.Now()))

	if got := m.world.Ticks(); got != 1 {
		t.Errorf("ticks = %d, want 1", got)
	}
	if len(m.energyHistory) != 1 {
		t.Errorf("energy samples = %d, want 1", len(m.energyHistory))
	}

	colored := 0
	for _, row := range m.canvas.Colors {
		for _, c := range row {
			if c != noColor {
				colored++
			}
		}
	}
	if colored == 0 {
		t.Error("no particle drawn")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	m.running = false
	m = update(t, m, TickMsg(time.Now()))
	if got := m.world.Ticks(); got != 0 {
		t.Errorf("paused model ticked %d times", got)
	}
}

func TestModelForceKeys(t *testing.T) {
	m := newTestModel(t)
	initial := m.world.Forces()

	m = update(t, m, key("1"))
	randomized := m.world.Forces()
	for i := range randomized {
		for j := range randomized[i] {
			v := randomized[i][j]
			if v < RandomForceMin || v > RandomForceMax {
				t.Fatalf("force[%d][%d] = %v outside range", i, j, v)
			}
		}
	}
	for _, p := range m.world.Snapshot() {
		if p.Velocity.Len() == 0 {
			t.Error("kick left a particle at rest")
		}
	}

	m = update(t, m, key("2"))
	if got := m.world.Forces(); got != initial {
		t.Errorf("forces after reset = %v, want %v", got, initial)
	}
}

func TestModelCenter(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("+"))
	m = update(t, m, key("+"))
	m = update(t, m, key("c"))

	v := m.viewport()
	p := m.world.Params()
	center := life.Vec{p.Width / 2, p.Height / 2}.Sub(v.Origin).Mul(v.Scale)
	wantX, wantY := float32(m.canvas.SubWidth())/2, float32(m.canvas.SubHeight())/2
	if abs(center.X()-wantX) > 0.01 || abs(center.Y()-wantY) > 0.01 {
		t.Errorf("world center drawn at %v, want (%v, %v)", center, wantX, wantY)
	}
}

func TestModelRecordsGIF(t *testing.T) {
	m := newTestModel(t)
	m.GIFPath = filepath.Join(t.TempDir(), "out.gif")

	m = update(t, m, key("g"))
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	if len(m.frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(m.frames))
	}
	m = update(t, m, key("g"))

	info, err := os.Stat(m.GIFPath)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty gif")
	}
	if m.recording || m.frames != nil {
		t.Error("recording state not cleared")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, TickMsg(time.Now()))
	if m.View() == "" {
		t.Error("empty view")
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
