package metrics

import "github.com/san-kum/plife/internal/life"

// DefaultCalmSpeed is the speed under which a particle counts as settled.
const DefaultCalmSpeed = 0.5

// Calm is the fraction of particles moving slower than a threshold. An empty
// world is fully calm.
type Calm struct {
	name      string
	threshold float32
	value     float64
}

func NewCalm(threshold float32) *Calm {
	return &Calm{
		name:      "calm",
		threshold: threshold,
		value:     1,
	}
}

func (c *Calm) Name() string {
	return c.name
}

func (c *Calm) Observe(particles []life.Particle) {
	if len(particles) == 0 {
		c.value = 1
		return
	}
	calm := 0
	for i := range particles {
		if particles[i].Velocity.Len() < c.threshold {
			calm++
		}
	}
	c.value = float64(calm) / float64(len(particles))
}

func (c *Calm) Value() float64 {
	return c.value
}

func (c *Calm) Reset() {
	c.value = 1
}
