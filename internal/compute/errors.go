package compute

import (
	"errors"
	"fmt"
)

var (
	// ErrAcceleratorUnavailable indicates a missing driver, device or build tag.
	ErrAcceleratorUnavailable = errors.New("compute: accelerator unavailable")

	// ErrUnknownBackend indicates a backend name outside Names().
	ErrUnknownBackend = errors.New("compute: unknown backend")

	// ErrPoolClosed indicates a job submitted after the worker pool shut down.
	ErrPoolClosed = errors.New("compute: worker pool closed")

	// ErrChunkLost indicates a dispatched chunk whose result was never collected.
	ErrChunkLost = errors.New("compute: chunk result lost")

	// ErrChunkDuplicated indicates the same chunk was collected twice.
	ErrChunkDuplicated = errors.New("compute: chunk result collected twice")

	// ErrWorkerPanic indicates a job that panicked before producing accelerations.
	ErrWorkerPanic = errors.New("compute: worker panicked")
)

// FaultError is the panic value of a broken tick barrier.
type FaultError struct {
	Start   int
	Wrapped error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("chunk at %d: %v", e.Start, e.Wrapped)
}

func (e *FaultError) Unwrap() error {
	return e.Wrapped
}
