package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/life"
)

type World struct {
	mu sync.RWMutex

	particles []life.Particle
	forces    life.ForcesTable
	initial   life.ForcesTable
	mode      life.PhysicsMode
	params    life.Params
	backend   compute.Backend
	rng       *rand.Rand
	ticks     int
}

// New copies particles into a fresh store. A nil cfg.Backend gets a cpu
// scheduler with one worker per CPU; a zero Seed is replaced by the clock.
func New(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, cfg Config) (*World, error) {
	if mode != life.Real && mode != life.Emergence {
		return nil, fmt.Errorf("%w: %d", life.ErrUnknownMode, mode)
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	for i := range particles {
		if !particles[i].Color.Valid() {
			return nil, fmt.Errorf("particle %d: %w: %d", i, life.ErrUnknownColor, particles[i].Color)
		}
	}

	backend := cfg.Backend
	if backend == nil {
		backend = compute.NewCPUBackend(runtime.NumCPU())
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &World{
		particles: append([]life.Particle(nil), particles...),
		forces:    forces,
		initial:   forces,
		mode:      mode,
		params:    cfg.Params,
		backend:   backend,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Tick applies friction (emergence only), adds pairwise accelerations
// through the backend and integrates every particle.
func (w *World) Tick() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.mode == life.Emergence {
		for i := range w.particles {
			w.params.ApplyFriction(&w.particles[i])
		}
	}

	w.backend.Accelerate(w.particles, w.forces, w.mode, w.params)

	for i := range w.particles {
		w.params.Integrate(&w.particles[i], w.mode, w.rng)
	}
	w.ticks++
}

// Draw projects the particles inside v to screen space.
func (w *World) Draw(v Viewport) []Sprite {
	w.mu.RLock()
	defer w.mu.RUnlock()

	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	minX, minY := v.Origin.X(), v.Origin.Y()
	maxX, maxY := minX+v.Width/scale, minY+v.Height/scale

	sprites := make([]Sprite, 0, len(w.particles))
	for i := range w.particles {
		pos := w.particles[i].Position
		if pos.X() < minX || pos.X() > maxX || pos.Y() < minY || pos.Y() > maxY {
			continue
		}
		sprites = append(sprites, Sprite{
			Position: pos.Sub(v.Origin).Mul(scale),
			Radius:   BaseParticleRadius * scale,
			Color:    w.particles[i].Color,
		})
	}
	return sprites
}

// SetForces replaces the table used from the next tick on.
func (w *World) SetForces(t life.ForcesTable) {
	w.mu.Lock()
	w.forces = t
	w.mu.Unlock()
}

func (w *World) Forces() life.ForcesTable {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.forces
}

// ResetForces restores the table the world was built with.
func (w *World) ResetForces() {
	w.mu.Lock()
	w.forces = w.initial
	w.mu.Unlock()
}

// RandomizeForces installs a random table drawn from the world's RNG and
// returns it.
func (w *World) RandomizeForces(min, max float32) life.ForcesTable {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.forces = life.RandomForces(w.rng, min, max)
	return w.forces
}

// AccelerateAll lengthens every velocity by |amount|, keeping its direction.
// A particle at rest is pushed in a random direction.
func (w *World) AccelerateAll(amount float32) {
	if amount < 0 {
		amount = -amount
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.particles {
		v := &w.particles[i].Velocity
		speed := v.Len()
		if speed == 0 {
			angle := w.rng.Float64() * 2 * math.Pi
			*v = life.Vec{float32(math.Cos(angle)), float32(math.Sin(angle))}.Mul(amount)
			continue
		}
		*v = v.Mul((speed + amount) / speed)
	}
}

// Snapshot returns a copy of the store as of the last completed tick.
func (w *World) Snapshot() []life.Particle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]life.Particle(nil), w.particles...)
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.particles)
}

func (w *World) Ticks() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ticks
}

func (w *World) Mode() life.PhysicsMode   { return w.mode }
func (w *World) Params() life.Params      { return w.params }
func (w *World) Backend() compute.Backend { return w.backend }

// Close releases the backend.
func (w *World) Close() {
	w.backend.Cleanup()
}
