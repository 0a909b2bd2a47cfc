package sim

import (
	"time"

	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/life"
)

// BaseParticleRadius is the drawn radius of a particle at scale 1.
const BaseParticleRadius = 3.0

type Config struct {
	Params  life.Params
	Backend compute.Backend
	Seed    uint64
}

// Metric reduces a particle snapshot to one number. Value reports the most
// recent observation.
type Metric interface {
	Name() string
	Observe(particles []life.Particle)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, particles []life.Particle)
}

// Viewport is the visible world rectangle: Origin is the world point shown at
// the top-left corner and Width, Height are screen pixels.
type Viewport struct {
	Origin life.Vec
	Scale  float32
	Width  float32
	Height float32
}

// Sprite is one particle projected to screen coordinates.
type Sprite struct {
	Position life.Vec
	Radius   float32
	Color    life.Color
}

type RunConfig struct {
	Ticks       int
	SampleEvery int
}

type Result struct {
	Ticks       int
	TickTimes   []time.Duration
	TickAverage time.Duration
	SampleTicks []int
	Series      map[string][]float64
	Metrics     map[string]float64
}
