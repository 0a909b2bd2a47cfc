package compute

import (
	"runtime"

	"github.com/san-kum/plife/internal/life"
)

// ParticleStride is the number of float32 slots per particle in a flattened
// buffer: x, y, color ordinal and one padding slot so each particle is a
// std430 vec4.
const ParticleStride = 4

// OutcomeStride is the number of float32 slots per particle acceleration.
const OutcomeStride = 2

// KernelConstants are the physics constants uploaded next to the buffers.
// They are always derived from life.Params.
type KernelConstants struct {
	WorldUnit       float32
	ForceScalar     float32
	RepelRadius     float32
	MaxAppliedForce float32
	Mode            int32
}

func ConstantsFor(params life.Params, mode life.PhysicsMode) KernelConstants {
	return KernelConstants{
		WorldUnit:       params.WorldUnit,
		ForceScalar:     params.ForceScalar,
		RepelRadius:     params.RepelRadius,
		MaxAppliedForce: params.MaxAppliedForce,
		Mode:            int32(mode),
	}
}

func (k KernelConstants) params() life.Params {
	return life.Params{
		WorldUnit:       k.WorldUnit,
		ForceScalar:     k.ForceScalar,
		RepelRadius:     k.RepelRadius,
		MaxAppliedForce: k.MaxAppliedForce,
	}
}

// FlattenParticles appends the kernel layout of particles to dst.
func FlattenParticles(particles []life.Particle, dst []float32) []float32 {
	for i := range particles {
		p := &particles[i]
		dst = append(dst, p.Position.X(), p.Position.Y(), float32(p.Color), 0)
	}
	return dst
}

// RunKernel computes the outcome for particle i exactly as one device thread
// would: a plain float sum over every other particle, skipping zero forces.
func RunKernel(i int, particles, forces []float32, k KernelConstants) (ax, ay float32) {
	n := len(particles) / ParticleStride
	params := k.params()
	mode := life.PhysicsMode(k.Mode)

	xi, yi := particles[i*ParticleStride], particles[i*ParticleStride+1]
	row := int(particles[i*ParticleStride+2]) * life.NumColors

	for j := 0; j < n; j++ {
		dx := particles[j*ParticleStride] - xi
		dy := particles[j*ParticleStride+1] - yi
		dist := life.Vec{dx, dy}.Len()
		if dist == 0 {
			continue
		}

		affinity := forces[row+int(particles[j*ParticleStride+2])]
		f := params.Force(mode, affinity, dist/k.WorldUnit)
		if f == 0 {
			continue
		}

		scale := f * k.ForceScalar / dist
		ax += dx * scale
		ay += dy * scale
	}
	return ax, ay
}

// addOutcomes adds a flattened outcome buffer to the live velocities.
func addOutcomes(particles []life.Particle, outcome []float32) {
	for i := range particles {
		v := &particles[i].Velocity
		*v = v.Add(life.Vec{outcome[i*OutcomeStride], outcome[i*OutcomeStride+1]})
	}
}

// KernelBackend runs the device kernel on the host. It exercises the same
// buffer layout as the cuda and opengl backends and serves as their
// reference.
type KernelBackend struct {
	workers   int
	particles []float32
	outcome   []float32
}

func NewKernelBackend(workers int) *KernelBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &KernelBackend{workers: workers}
}

func (k *KernelBackend) Name() string { return "kernel" }
func (k *KernelBackend) Cleanup()     {}

func (k *KernelBackend) Accelerate(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, params life.Params) {
	n := len(particles)
	if n == 0 {
		return
	}

	k.particles = FlattenParticles(particles, k.particles[:0])
	flatForces := forces.Flatten()
	consts := ConstantsFor(params, mode)

	if cap(k.outcome) < n*OutcomeStride {
		k.outcome = make([]float32, n*OutcomeStride)
	}
	k.outcome = k.outcome[:n*OutcomeStride]

	parallelFor(n, k.workers, 64, func(start, end int) {
		for i := start; i < end; i++ {
			ax, ay := RunKernel(i, k.particles, flatForces, consts)
			k.outcome[i*OutcomeStride] = ax
			k.outcome[i*OutcomeStride+1] = ay
		}
	})

	addOutcomes(particles, k.outcome)
}
