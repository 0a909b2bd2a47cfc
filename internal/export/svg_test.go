package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
)

func TestWorldToSVG(t *testing.T) {
	sprites := []sim.Sprite{
		{Position: life.Vec{10, 20}, Radius: 3, Color: life.Red},
		{Position: life.Vec{30, 40}, Radius: 3, Color: life.Red},
		{Position: life.Vec{50, 60}, Radius: 1.5, Color: life.Yellow},
	}
	svg := WorldToSVG(sprites, 100, 80)

	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	if got := strings.Count(svg, "<g "); got != 2 {
		t.Errorf("groups = %d, want one per present color", got)
	}
	for _, want := range []string{`fill="#ff0000"`, `fill="#ffff00"`, `cx="50.0" cy="60.0" r="1.5"`, `width="100"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
}

func TestSnapshotSVG(t *testing.T) {
	particles := []life.Particle{
		life.NewParticle(life.Vec{1000, 1000}, life.Vec{}, life.Green),
		life.NewParticle(life.Vec{1990, 10}, life.Vec{}, life.Blue),
	}
	w, err := sim.New(particles, life.ForcesTable{}, life.Emergence, sim.Config{
		Params:  life.DefaultParams(),
		Backend: compute.SerialBackend{},
		Seed:    1,
	})
	if err != nil {
		t.Fatal(err)
	}

	svg := SnapshotSVG(w, 200)
	if !strings.Contains(svg, `width="200" height="200"`) {
		t.Error("square world should give a square canvas")
	}
	if !strings.Contains(svg, `cx="100.0" cy="100.0"`) {
		t.Errorf("center particle not scaled: %s", svg)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 10, 10, "#fff") != "" {
		t.Error("single value should not plot")
	}
	svg := SeriesToSVG([]float64{0, 1, 2}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) || strings.Count(svg, " L") != 2 {
		t.Errorf("unexpected path: %s", svg)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := WriteFile(path, ""); err == nil {
		t.Error("empty svg should fail")
	}
	if err := WriteFile(path, "<svg/>"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("read back %q, %v", data, err)
	}
}
