package compute

import (
	"fmt"
	"log"

	"github.com/san-kum/plife/internal/life"
)

// Backend adds the summed pairwise acceleration of every particle to its
// velocity. Positions are never written. Implementations must not retain
// particles after Accelerate returns.
type Backend interface {
	Name() string
	Accelerate(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, params life.Params)
	Cleanup()
}

// Names lists the backends New understands.
func Names() []string {
	return []string{"auto", "cpu", "serial", "kernel", "cuda", "opengl"}
}

// New constructs a backend by name. Accelerator backends report a missing
// device here, never mid-tick.
func New(name string, workers int) (Backend, error) {
	switch name {
	case "", "auto":
		return AutoSelectBackend(workers), nil
	case "cpu":
		return NewCPUBackend(workers), nil
	case "serial":
		return SerialBackend{}, nil
	case "kernel":
		return NewKernelBackend(workers), nil
	case "cuda":
		b, err := NewCUDABackend()
		if err != nil {
			return nil, err
		}
		return b, nil
	case "opengl":
		b, err := NewOpenGLBackend()
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// AutoSelectBackend prefers CUDA and falls back to the cpu scheduler.
func AutoSelectBackend(workers int) Backend {
	cuda, err := NewCUDABackend()
	if err == nil {
		return cuda
	}
	log.Printf("compute: %v, using cpu scheduler", err)
	return NewCPUBackend(workers)
}
