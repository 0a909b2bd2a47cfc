// Package compute provides the execution strategies that evaluate pairwise
// particle forces for one tick.
//
// Every strategy implements [Backend]:
//
//   - cpu: fixed worker pool, one contiguous chunk per worker
//   - serial: single-threaded pairwise double loop
//   - kernel: data-parallel kernel over flattened buffers, run on the CPU
//   - cuda: the same kernel on an NVIDIA device (build tag cuda)
//   - opengl: the same kernel as an OpenGL 4.3 compute shader
//
// # Scheduling
//
// The cpu backend copies the particle store into a read-only snapshot,
// fans one job per chunk out to its pool and drains exactly one
// [JobResult] per chunk before adding accelerations to the live store:
//
//	backend := compute.NewCPUBackend(runtime.NumCPU())
//	defer backend.Cleanup()
//	backend.Accelerate(particles, forces, life.Emergence, params)
//
// A chunk whose result never arrives breaks the tick barrier and is raised
// as a panic carrying a [*FaultError].
//
// # GPU Acceleration
//
// Build with CUDA support:
//
//	nvcc -c -o kernels.o kernels.cu && ar rcs libplifekernels.a kernels.o
//	go build -tags cuda ./...
//
// Accelerators that cannot find a device fail at construction with
// [ErrAcceleratorUnavailable] so callers can fall back to the cpu backend.
package compute
