// Package automation runs scripted scenarios and parameter sweeps headless.
package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/sim"
	"github.com/san-kum/plife/internal/storage"
)

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides the
// non-zero fields. RandomForces and Kick are applied once before the first tick.
type ScenarioStep struct {
	Preset       string                `yaml:"preset"`
	Mode         string                `yaml:"mode"`
	Backend      string                `yaml:"backend"`
	Seed         int64                 `yaml:"seed"`
	Ticks        int                   `yaml:"ticks"`
	SampleEvery  int                   `yaml:"sample_every"`
	Physics      *config.PhysicsConfig `yaml:"physics,omitempty"`
	RandomForces *config.RangeConfig   `yaml:"random_forces,omitempty"`
	Kick         float32               `yaml:"kick"`
	SaveAs       string                `yaml:"save_as"`
}

// StepResult is one finished step; RunID is empty when nothing was saved.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step to a full configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", s.Preset)
		}
	}
	if s.Mode != "" {
		cfg.Mode = s.Mode
	}
	if s.Backend != "" {
		cfg.Backend = s.Backend
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if p := s.Physics; p != nil {
		overlay(&cfg.Physics.WorldUnit, p.WorldUnit)
		overlay(&cfg.Physics.ForceScalar, p.ForceScalar)
		overlay(&cfg.Physics.RepelRadius, p.RepelRadius)
		overlay(&cfg.Physics.Friction, p.Friction)
		overlay(&cfg.Physics.MaxAppliedForce, p.MaxAppliedForce)
	}
	return cfg, cfg.Validate()
}

// overlay sets dst unless v is the zero value.
func overlay(dst *float32, v float32) {
	if v != 0 {
		*dst = v
	}
}

func (s ScenarioStep) name(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario executes every step in order. With a non-nil store each step
// is saved as a run report. Results gathered before a failure are returned
// with the error.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.name(i)
		log.Printf("automation: step %d/%d: %s", i+1, len(scenario.Steps), name)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		world, err := cfg.Build()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.RandomForces != nil {
			world.RandomizeForces(step.RandomForces.Min, step.RandomForces.Max)
		}
		if step.Kick != 0 {
			world.AccelerateAll(step.Kick)
		}

		result, err := runWorld(ctx, world, step.Ticks, step.SampleEvery)
		if err != nil {
			world.Close()
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := StepResult{Name: name, Result: result}
		if store != nil {
			out.RunID, err = store.Save(storage.RunMetadata{
				Preset:      name,
				Mode:        cfg.Mode,
				Backend:     world.Backend().Name(),
				Seed:        cfg.Seed,
				Particles:   world.Len(),
				SampleEvery: step.SampleEvery,
				TickAverage: result.TickAverage,
			}, result)
		}
		world.Close()
		if err != nil {
			return results, fmt.Errorf("step %d save: %w", i+1, err)
		}
		results = append(results, out)
	}

	return results, nil
}

func runWorld(ctx context.Context, world *sim.World, ticks, sampleEvery int) (*sim.Result, error) {
	runner := sim.NewRunner(world)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}
	return runner.Run(ctx, sim.RunConfig{Ticks: ticks, SampleEvery: sampleEvery})
}

// Sweepable physics parameters.
const (
	ParamFriction    = "friction"
	ParamRepelRadius = "repel_radius"
	ParamForceScalar = "force_scalar"
	ParamWorldUnit   = "world_unit"
)

// ParameterSweep runs Base once per evenly spaced value of Param.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float32
	Max      float32
	NumSteps int
	Ticks    int
}

type SweepResult struct {
	ParamValue  float32
	MeanEnergy  float64
	FinalEnergy float64
	FinalSpread float64
	TickAverage float64
}

func setParam(cfg *config.Config, name string, v float32) error {
	switch name {
	case ParamFriction:
		cfg.Physics.Friction = v
	case ParamRepelRadius:
		cfg.Physics.RepelRadius = v
	case ParamForceScalar:
		cfg.Physics.ForceScalar = v
	case ParamWorldUnit:
		cfg.Physics.WorldUnit = v
	default:
		return fmt.Errorf("unknown sweep parameter %q", name)
	}
	return nil
}

// RunSweep keeps the base seed for every value so runs differ only in the
// swept parameter.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	step := float32(0)
	if sweep.NumSteps > 1 {
		step = (sweep.Max - sweep.Min) / float32(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		value := sweep.Min + float32(i)*step
		cfg := sweep.Base.Clone()
		if err := setParam(cfg, sweep.Param, value); err != nil {
			return nil, err
		}

		world, err := cfg.Build()
		if err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.Param, value, err)
		}
		result, err := runWorld(ctx, world, sweep.Ticks, 1)
		world.Close()
		if err != nil {
			return results, err
		}

		energy := result.Series["kinetic_energy"]
		spread := result.Series["spread"]
		results = append(results, SweepResult{
			ParamValue:  value,
			MeanEnergy:  result.Metrics["kinetic_energy"],
			FinalEnergy: last(energy),
			FinalSpread: last(spread),
			TickAverage: result.TickAverage.Seconds(),
		})
		log.Printf("automation: sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.Param, value)
	}

	return results, nil
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
