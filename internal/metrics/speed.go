package metrics

import (
	"math"

	"github.com/san-kum/plife/internal/life"
)

type MeanSpeed struct {
	name  string
	value float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(particles []life.Particle) {
	if len(particles) == 0 {
		m.value = 0
		return
	}
	var sum float64
	for i := range particles {
		sum += float64(particles[i].Velocity.Len())
	}
	m.value = sum / float64(len(particles))
}

func (m *MeanSpeed) Value() float64 { return m.value }
func (m *MeanSpeed) Reset()         { m.value = 0 }

// Spread is the RMS distance of particles from their centroid. It falls as
// clusters form.
type Spread struct {
	name  string
	value float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(particles []life.Particle) {
	n := float64(len(particles))
	if n == 0 {
		s.value = 0
		return
	}

	var cx, cy float64
	for i := range particles {
		cx += float64(particles[i].Position.X())
		cy += float64(particles[i].Position.Y())
	}
	cx, cy = cx/n, cy/n

	var sum float64
	for i := range particles {
		dx := float64(particles[i].Position.X()) - cx
		dy := float64(particles[i].Position.Y()) - cy
		sum += dx*dx + dy*dy
	}
	s.value = math.Sqrt(sum / n)
}

func (s *Spread) Value() float64 { return s.value }
func (s *Spread) Reset()         { s.value = 0 }
