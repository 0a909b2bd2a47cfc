package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/storage"
)

const scenarioYAML = `name: demo
description: two short runs
steps:
  - preset: real
    backend: serial
    seed: 5
    ticks: 10
    sample_every: 2
  - preset: emergence
    backend: serial
    seed: 5
    ticks: 5
    physics:
      friction: 0.5
    random_forces:
      min: -0.3
      max: 1.0
    kick: 10
    save_as: kicked
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if s.Name != "demo" || len(s.Steps) != 2 {
		t.Fatalf("got %+v", s)
	}
	if s.Steps[1].RandomForces == nil || s.Steps[1].Kick != 10 {
		t.Errorf("second step lost its actions: %+v", s.Steps[1])
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("scenario without steps should fail")
	}
}

func TestStepConfig(t *testing.T) {
	step := ScenarioStep{Preset: "emergence", Mode: "real", Physics: &config.PhysicsConfig{Friction: 0.3}}
	cfg, err := step.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Mode != "real" {
		t.Errorf("mode = %s", cfg.Mode)
	}
	if cfg.Physics.Friction != 0.3 {
		t.Errorf("friction = %v", cfg.Physics.Friction)
	}
	if cfg.Physics.WorldUnit == 0 {
		t.Error("unset physics fields should keep the preset values")
	}

	if _, err := (ScenarioStep{Preset: "nope"}).Config(); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	// keep the second step small
	s.Steps[1].Preset = "real"

	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), s, store)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Result.Ticks != 10 || results[1].Result.Ticks != 5 {
		t.Errorf("ticks = %d, %d", results[0].Result.Ticks, results[1].Result.Ticks)
	}
	if results[1].Name != "kicked" {
		t.Errorf("name = %s", results[1].Name)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("stored %d runs, want 2", len(runs))
	}
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend = "serial"
	cfg.Seed = 11
	cfg.Particles = map[string]int{"red": 10, "green": 10, "blue": 10, "yellow": 10}
	return cfg
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:     smallConfig(),
		Param:    ParamFriction,
		Min:      0.2,
		Max:      0.8,
		NumSteps: 3,
		Ticks:    5,
	})
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	want := []float32{0.2, 0.5, 0.8}
	for i, r := range results {
		if d := r.ParamValue - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("value %d = %v, want %v", i, r.ParamValue, want[i])
		}
		if r.FinalEnergy < 0 || r.MeanEnergy < 0 {
			t.Errorf("negative energy in %+v", r)
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	tests := []struct {
		name  string
		sweep ParameterSweep
	}{
		{"unknown param", ParameterSweep{Base: smallConfig(), Param: "gravity", NumSteps: 1, Ticks: 1}},
		{"no steps", ParameterSweep{Base: smallConfig(), Param: ParamFriction, NumSteps: 0, Ticks: 1}},
		{"invalid value", ParameterSweep{Base: smallConfig(), Param: ParamWorldUnit, Min: 0, Max: 0, NumSteps: 1, Ticks: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RunSweep(context.Background(), &tt.sweep); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
