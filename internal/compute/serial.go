package compute

import "github.com/san-kum/plife/internal/life"

// SerialBackend runs the pairwise double loop on the calling goroutine,
// visiting each unordered pair once and applying both directions. The two
// directions differ because the forces table is asymmetric.
type SerialBackend struct{}

func (SerialBackend) Name() string { return "serial" }
func (SerialBackend) Cleanup()     {}

func (SerialBackend) Accelerate(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, params life.Params) {
	n := len(particles)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			applyOneWay(particles, i, j, &forces, mode, params)
			applyOneWay(particles, j, i, &forces, mode, params)
		}
	}
}

func applyOneWay(particles []life.Particle, target, other int, forces *life.ForcesTable, mode life.PhysicsMode, params life.Params) {
	acc := params.Acceleration(&particles[target], &particles[other], forces, mode)
	if acc.Valid {
		particles[target].Velocity = particles[target].Velocity.Add(acc.V)
	}
}
