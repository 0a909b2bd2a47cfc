package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/sim"
	"github.com/san-kum/plife/internal/spawn"
)

var ErrInvalidConfig = errors.New("config: invalid")

const DefaultParticlesPerColor = 1300

type Config struct {
	Mode         string         `yaml:"mode"`
	Backend      string         `yaml:"backend"`
	Workers      int            `yaml:"workers"`
	Seed         int64          `yaml:"seed"`
	Layout       string         `yaml:"layout"`
	World        WorldConfig    `yaml:"world"`
	Physics      PhysicsConfig  `yaml:"physics"`
	Particles    map[string]int `yaml:"particles"`
	Bodies       []BodyConfig   `yaml:"bodies,omitempty"`
	Forces       []ForceConfig  `yaml:"forces"`
	RandomForces *RangeConfig   `yaml:"random_forces,omitempty"`
}

type WorldConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type PhysicsConfig struct {
	WorldUnit       float32 `yaml:"world_unit"`
	ForceScalar     float32 `yaml:"force_scalar"`
	RepelRadius     float32 `yaml:"repel_radius"`
	Friction        float32 `yaml:"friction"`
	MaxAppliedForce float32 `yaml:"max_applied_force"`
}

// BodyConfig places a single particle exactly, after the layout has spawned
// the counted ones.
type BodyConfig struct {
	Color string  `yaml:"color"`
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
	VX    float32 `yaml:"vx"`
	VY    float32 `yaml:"vy"`
}

type ForceConfig struct {
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
	Value float32 `yaml:"value"`
}

type RangeConfig struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:    "emergence",
		Backend: "auto",
		Layout:  spawn.LayoutUniform,
		World: WorldConfig{
			Width:  life.DefaultWorldWidth,
			Height: life.DefaultWorldHeight,
		},
		Physics: PhysicsConfig{
			WorldUnit:       life.DefaultWorldUnit,
			ForceScalar:     life.DefaultForceScalar,
			RepelRadius:     life.DefaultRepelRadius,
			Friction:        life.DefaultFriction,
			MaxAppliedForce: life.DefaultMaxAppliedForce,
		},
		Particles: defaultParticles(),
		Forces:    defaultForces(),
	}
}

func defaultParticles() map[string]int {
	counts := make(map[string]int, life.NumColors)
	for _, c := range life.Colors() {
		counts[c.String()] = DefaultParticlesPerColor
	}
	return counts
}

func defaultForces() []ForceConfig {
	return []ForceConfig{
		{From: "red", To: "red", Value: 0.4},
		{From: "blue", To: "red", Value: 0.3},
		{From: "yellow", To: "red", Value: 0.4},
		{From: "blue", To: "blue", Value: 0.3},
		{From: "green", To: "green", Value: 0.2},
		{From: "green", To: "blue", Value: 0.2},
		{From: "yellow", To: "green", Value: 0.4},
	}
}

// Load reads a YAML file over the defaults. Particle counts and forces are
// replaced as a whole when the file names any of them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Particles = nil
	cfg.Forces = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Particles == nil && len(cfg.Bodies) == 0 {
		cfg.Particles = defaultParticles()
	}
	if cfg.Forces == nil && cfg.RandomForces == nil {
		cfg.Forces = defaultForces()
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func invalid(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	if _, err := life.ParseMode(c.Mode); err != nil {
		return invalid("mode", "%v", err)
	}
	if !contains(compute.Names(), c.Backend) && c.Backend != "" {
		return invalid("backend", "%q not one of %v", c.Backend, compute.Names())
	}
	if c.Workers < 0 {
		return invalid("workers", "%d is negative", c.Workers)
	}
	if c.Layout != "" && !contains(spawn.Layouts(), c.Layout) {
		return invalid("layout", "%q not one of %v", c.Layout, spawn.Layouts())
	}
	if err := c.Params().Validate(); err != nil {
		return invalid("physics", "%v", err)
	}
	if _, err := c.Counts(); err != nil {
		return invalid("particles", "%v", err)
	}
	for i, b := range c.Bodies {
		if _, err := life.ParseColor(b.Color); err != nil {
			return invalid(fmt.Sprintf("bodies[%d]", i), "%v", err)
		}
	}
	for i, f := range c.Forces {
		if _, err := life.ParseColor(f.From); err != nil {
			return invalid(fmt.Sprintf("forces[%d].from", i), "%v", err)
		}
		if _, err := life.ParseColor(f.To); err != nil {
			return invalid(fmt.Sprintf("forces[%d].to", i), "%v", err)
		}
	}
	if r := c.RandomForces; r != nil && r.Min > abs(r.Max) {
		return invalid("random_forces", "min %g above max %g", r.Min, r.Max)
	}
	return nil
}

func (c *Config) PhysicsMode() life.PhysicsMode {
	mode, err := life.ParseMode(c.Mode)
	if err != nil {
		return life.Emergence
	}
	return mode
}

func (c *Config) Params() life.Params {
	return life.Params{
		Width:           c.World.Width,
		Height:          c.World.Height,
		WorldUnit:       c.Physics.WorldUnit,
		ForceScalar:     c.Physics.ForceScalar,
		MaxAppliedForce: c.Physics.MaxAppliedForce,
		RepelRadius:     c.Physics.RepelRadius,
		Friction:        c.Physics.Friction,
	}
}

func (c *Config) Counts() (spawn.Counts, error) {
	counts := make(spawn.Counts, len(c.Particles))
	for name, n := range c.Particles {
		color, err := life.ParseColor(name)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%s: negative count %d", name, n)
		}
		counts[color] += n
	}
	return counts, nil
}

// ForcesTable fills the table from RandomForces when set, then applies the
// explicit entries in order.
func (c *Config) ForcesTable(rng *rand.Rand) (life.ForcesTable, error) {
	var table life.ForcesTable
	if r := c.RandomForces; r != nil {
		table = life.RandomForces(rng, r.Min, r.Max)
	}
	for _, f := range c.Forces {
		from, err := life.ParseColor(f.From)
		if err != nil {
			return table, err
		}
		to, err := life.ParseColor(f.To)
		if err != nil {
			return table, err
		}
		table.Set(from, to, f.Value)
	}
	return table, nil
}

// Build validates the configuration and assembles a World with its backend.
// An unavailable accelerator is reported here.
func (c *Config) Build() (*sim.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	seed := uint64(c.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1))

	params := c.Params()
	forces, err := c.ForcesTable(rng)
	if err != nil {
		return nil, err
	}
	counts, err := c.Counts()
	if err != nil {
		return nil, err
	}
	particles, err := spawn.Generate(c.Layout, rng, params, counts)
	if err != nil {
		return nil, err
	}
	for i, b := range c.Bodies {
		color, err := life.ParseColor(b.Color)
		if err != nil {
			return nil, invalid(fmt.Sprintf("bodies[%d]", i), "%v", err)
		}
		particles = append(particles, life.NewParticle(life.Vec{b.X, b.Y}, life.Vec{b.VX, b.VY}, color))
	}

	backend, err := compute.New(c.Backend, c.Workers)
	if err != nil {
		return nil, err
	}

	w, err := sim.New(particles, forces, c.PhysicsMode(), sim.Config{
		Params:  params,
		Backend: backend,
		Seed:    seed,
	})
	if err != nil {
		backend.Cleanup()
		return nil, err
	}
	return w, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Particles = make(map[string]int, len(c.Particles))
	for k, v := range c.Particles {
		out.Particles[k] = v
	}
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	out.Forces = append([]ForceConfig(nil), c.Forces...)
	if c.RandomForces != nil {
		r := *c.RandomForces
		out.RandomForces = &r
	}
	return &out
}

// SortedParticles lists color counts in color order for display.
func (c *Config) SortedParticles() []string {
	names := make([]string, 0, len(c.Particles))
	for name := range c.Particles {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, erri := life.ParseColor(names[i])
		cj, errj := life.ParseColor(names[j])
		if erri != nil || errj != nil {
			return names[i] < names[j]
		}
		return ci < cj
	})
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
