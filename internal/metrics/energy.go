package metrics

import (
	"math"

	"github.com/san-kum/plife/internal/life"
)

// KineticEnergy is the sum of |v|²/2 over all particles, unit mass.
type KineticEnergy struct {
	name  string
	value float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(particles []life.Particle) {
	e.value = Kinetic(particles)
}

func (e *KineticEnergy) Value() float64 { return e.value }
func (e *KineticEnergy) Reset()         { e.value = 0 }

func Kinetic(particles []life.Particle) float64 {
	var total float64
	for i := range particles {
		v := particles[i].Velocity
		vx, vy := float64(v.X()), float64(v.Y())
		total += 0.5 * (vx*vx + vy*vy)
	}
	return total
}

// EnergyDrift tracks the largest relative change of kinetic energy from the
// first observation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(particles []life.Particle) {
	energy := Kinetic(particles)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / e.initialEnergy
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
