// Package spawn generates initial particle layouts.
package spawn

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/san-kum/plife/internal/life"
)

var ErrUnknownLayout = errors.New("spawn: unknown layout")

const (
	LayoutUniform = "uniform"
	LayoutPerlin  = "perlin"
)

// Counts is the number of particles to spawn per color.
type Counts map[life.Color]int

func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Layouts lists the names Generate accepts.
func Layouts() []string {
	return []string{LayoutUniform, LayoutPerlin}
}

// Generate spawns counts with the named layout. Particles are ordered by
// color ordinal and start at rest.
func Generate(layout string, rng *rand.Rand, params life.Params, counts Counts) ([]life.Particle, error) {
	switch layout {
	case "", LayoutUniform:
		return Uniform(rng, params, counts), nil
	case LayoutPerlin:
		return NewPerlin(rng.Int64()).Spawn(rng, params, counts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
}

// Uniform places every particle at an independent uniform point of the world.
func Uniform(rng *rand.Rand, params life.Params, counts Counts) []life.Particle {
	particles := make([]life.Particle, 0, counts.Total())
	for _, color := range life.Colors() {
		for i := 0; i < counts[color]; i++ {
			particles = append(particles, life.NewParticle(params.RandomPosition(rng), life.Vec{}, color))
		}
	}
	return particles
}

// Perlin rejection-samples positions against a 2-D noise field so particles
// start in loose clumps instead of an even haze.
type Perlin struct {
	noise     *perlin.Perlin
	Frequency float64
	Threshold float64
	MaxTries  int
}

func NewPerlin(seed int64) *Perlin {
	return &Perlin{
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		Frequency: 4,
		Threshold: 0.1,
		MaxTries:  64,
	}
}

// Density maps a world position to [0, 1].
func (p *Perlin) Density(params life.Params, pos life.Vec) float64 {
	x := float64(pos.X()/params.Width) * p.Frequency
	y := float64(pos.Y()/params.Height) * p.Frequency
	v := (p.noise.Noise2D(x, y) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (p *Perlin) Spawn(rng *rand.Rand, params life.Params, counts Counts) []life.Particle {
	particles := make([]life.Particle, 0, counts.Total())
	for _, color := range life.Colors() {
		for i := 0; i < counts[color]; i++ {
			particles = append(particles, life.NewParticle(p.position(rng, params), life.Vec{}, color))
		}
	}
	return particles
}

// position gives up after MaxTries rejections and keeps the last candidate,
// so a flat noise field still yields a full population.
func (p *Perlin) position(rng *rand.Rand, params life.Params) life.Vec {
	pos := params.RandomPosition(rng)
	for try := 0; try < p.MaxTries; try++ {
		if p.Density(params, pos) >= p.Threshold+rng.Float64()*(1-p.Threshold) {
			return pos
		}
		pos = params.RandomPosition(rng)
	}
	return pos
}
