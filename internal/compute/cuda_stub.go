//go:build !cuda

package compute

import (
	"fmt"

	"github.com/san-kum/plife/internal/life"
)

type CUDABackend struct{}

func NewCUDABackend() (*CUDABackend, error) {
	return nil, fmt.Errorf("%w: cuda (built without the cuda tag)", ErrAcceleratorUnavailable)
}

func (c *CUDABackend) Name() string { return "cuda (not available)" }
func (c *CUDABackend) Cleanup()     {}

func (c *CUDABackend) Accelerate(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, params life.Params) {
	panic(ErrAcceleratorUnavailable)
}
