package config

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plife/internal/life"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "emergence" {
		t.Errorf("expected mode emergence, got %s", cfg.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Params() != life.DefaultParams() {
		t.Errorf("Params() = %+v, want defaults", cfg.Params())
	}

	counts, err := cfg.Counts()
	if err != nil {
		t.Fatal(err)
	}
	if counts.Total() != DefaultParticlesPerColor*life.NumColors {
		t.Errorf("total = %d", counts.Total())
	}
}

func TestForcesTable(t *testing.T) {
	cfg := DefaultConfig()
	table, err := cfg.ForcesTable(rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatal(err)
	}

	if got := table.Get(life.Blue, life.Red); got != 0.3 {
		t.Errorf("blue->red = %v, want 0.3", got)
	}
	if got := table.Get(life.Red, life.Blue); got != 0 {
		t.Errorf("red->blue = %v, want 0", got)
	}
}

func TestForcesTable_RandomThenExplicit(t *testing.T) {
	cfg := GetPreset("chaos")
	cfg.Forces = []ForceConfig{{From: "red", To: "green", Value: 5}}

	table, err := cfg.ForcesTable(rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if table.Get(life.Red, life.Green) != 5 {
		t.Errorf("explicit entry not applied over random fill")
	}
	for _, from := range life.Colors() {
		for _, to := range life.Colors() {
			if from == life.Red && to == life.Green {
				continue
			}
			if v := table.Get(from, to); v < -0.3 || v > 1 {
				t.Errorf("table[%s][%s] = %v out of random range", from, to, v)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "quantum" }},
		{"backend", func(c *Config) { c.Backend = "fpga" }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"layout", func(c *Config) { c.Layout = "spiral" }},
		{"world", func(c *Config) { c.World.Width = 0 }},
		{"repel radius", func(c *Config) { c.Physics.RepelRadius = 1.5 }},
		{"particle color", func(c *Config) { c.Particles["purple"] = 3 }},
		{"particle count", func(c *Config) { c.Particles["red"] = -3 }},
		{"force color", func(c *Config) { c.Forces = append(c.Forces, ForceConfig{From: "red", To: "cyan"}) }},
		{"body color", func(c *Config) { c.Bodies = []BodyConfig{{Color: "white"}} }},
		{"random range", func(c *Config) { c.RandomForces = &RangeConfig{Min: 2, Max: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plife.yaml")

	cfg := GetPreset("real")
	cfg.Seed = 99
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Mode != "real" || loaded.Seed != 99 {
		t.Errorf("loaded mode=%s seed=%d", loaded.Mode, loaded.Seed)
	}
	if len(loaded.Bodies) != 2 || len(loaded.Forces) != 2 {
		t.Errorf("loaded %d bodies, %d forces", len(loaded.Bodies), len(loaded.Forces))
	}
}

func TestLoad_PartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "mode: real\nparticles:\n  red: 12\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != "real" {
		t.Errorf("mode = %s, want real", cfg.Mode)
	}
	if len(cfg.Particles) != 1 || cfg.Particles["red"] != 12 {
		t.Errorf("particles = %v, want only red: 12", cfg.Particles)
	}
	if len(cfg.Forces) != len(defaultForces()) {
		t.Errorf("forces not defaulted: %v", cfg.Forces)
	}
	if cfg.Physics.Friction != life.DefaultFriction {
		t.Errorf("friction = %v, want default", cfg.Physics.Friction)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuild(t *testing.T) {
	cfg := GetPreset("real")
	cfg.Backend = "serial"
	cfg.Seed = 1

	w, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer w.Close()

	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
	if w.Mode() != life.Real {
		t.Errorf("Mode() = %s, want real", w.Mode())
	}
	if w.Forces().Get(life.Red, life.Blue) != 10 {
		t.Errorf("red->blue = %v, want 10", w.Forces().Get(life.Red, life.Blue))
	}

	red := w.Snapshot()[1]
	if red.Color != life.Red || red.Velocity != (life.Vec{3, 1}) {
		t.Errorf("red body = %+v", red)
	}
}

func TestBuild_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "nope"
	if _, err := cfg.Build(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Build() error = %v, want ErrInvalidConfig", err)
	}
}

func TestBuild_InvalidBodyColor(t *testing.T) {
	cfg := GetPreset("real")
	cfg.Backend = "serial"
	cfg.Bodies = append(cfg.Bodies, BodyConfig{Color: "purple", X: 1, Y: 1})

	if _, err := cfg.Build(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Build() error = %v, want ErrInvalidConfig", err)
	}
}

func TestBuild_ForcesReadFromWorld(t *testing.T) {
	cfg := GetPreset("real")
	cfg.Backend = "serial"
	cfg.Seed = 3

	w, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer w.Close()

	if got := w.Forces().Get(life.Blue, life.Red); got != -0.1 {
		t.Errorf("blue->red = %v, want -0.1", got)
	}
	if got := w.Forces().Flatten()[int(life.Red)*life.NumColors+int(life.Blue)]; got != 10 {
		t.Errorf("flattened red->blue = %v, want 10", got)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}

	a := GetPreset("emergence")
	a.Particles["red"] = 1
	if Presets["emergence"].Particles["red"] != DefaultParticlesPerColor {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"chaos", "clusters", "emergence", "real"}
	got := ListPresets()
	if len(got) != len(want) {
		t.Fatalf("ListPresets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListPresets()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
