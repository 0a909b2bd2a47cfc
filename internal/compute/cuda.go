//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lplifekernels -lstdc++
#include <stdlib.h>

extern int plife_device_count();
extern const char* plife_device_name();
extern int plife_accelerate(const float* particles, int n, const float* forces, int num_colors,
	float world_unit, float force_scalar, float repel_radius, float max_force, int mode, float* outcome);
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/san-kum/plife/internal/life"
)

type CUDABackend struct {
	deviceName string
	particles  []float32
	outcome    []float32
}

func NewCUDABackend() (*CUDABackend, error) {
	if int(C.plife_device_count()) == 0 {
		return nil, fmt.Errorf("%w: cuda (no device)", ErrAcceleratorUnavailable)
	}
	return &CUDABackend{deviceName: C.GoString(C.plife_device_name())}, nil
}

func (c *CUDABackend) Name() string { return "cuda (" + c.deviceName + ")" }
func (c *CUDABackend) Cleanup()     {}

func (c *CUDABackend) Accelerate(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, params life.Params) {
	n := len(particles)
	if n == 0 {
		return
	}

	c.particles = FlattenParticles(particles, c.particles[:0])
	flatForces := forces.Flatten()
	if cap(c.outcome) < n*OutcomeStride {
		c.outcome = make([]float32, n*OutcomeStride)
	}
	c.outcome = c.outcome[:n*OutcomeStride]
	k := ConstantsFor(params, mode)

	status := C.plife_accelerate(
		(*C.float)(unsafe.Pointer(&c.particles[0])),
		C.int(n),
		(*C.float)(unsafe.Pointer(&flatForces[0])),
		C.int(life.NumColors),
		C.float(k.WorldUnit),
		C.float(k.ForceScalar),
		C.float(k.RepelRadius),
		C.float(k.MaxAppliedForce),
		C.int(k.Mode),
		(*C.float)(unsafe.Pointer(&c.outcome[0])),
	)
	if status != 0 {
		panic(&FaultError{Start: 0, Wrapped: fmt.Errorf("cuda launch failed with status %d", int(status))})
	}

	addOutcomes(particles, c.outcome)
}
