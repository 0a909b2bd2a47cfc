package compute

import (
	"fmt"
	"runtime"

	"github.com/san-kum/plife/internal/life"
)

// CPUBackend is the parallel scheduler: one contiguous chunk per pool worker,
// results fanned back in through a channel and merged by the caller's
// goroutine only.
type CPUBackend struct {
	pool      *Pool
	snapshots *SnapshotPool
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{
		pool:      NewPool(workers),
		snapshots: NewSnapshotPool(),
	}
}

func (c *CPUBackend) Name() string { return fmt.Sprintf("cpu (%d workers)", c.pool.Size()) }
func (c *CPUBackend) Workers() int { return c.pool.Size() }
func (c *CPUBackend) Cleanup()     { c.pool.Close() }

func (c *CPUBackend) Accelerate(particles []life.Particle, forces life.ForcesTable, mode life.PhysicsMode, params life.Params) {
	n := len(particles)
	if n == 0 {
		return
	}

	snap := c.snapshots.GetAndCopy(particles)
	snapshot := *snap

	chunks := Partition(n, c.pool.Size())
	results := make(chan JobResult, len(chunks))

	for _, chunk := range chunks {
		c.pool.Submit(func() {
			results <- runChunk(snapshot, chunk, forces, mode, params)
		})
	}

	mergeResults(particles, chunks, results)
	c.snapshots.Put(snap)
}

// runChunk sums the acceleration on every particle of chunk against the full
// snapshot. A panic is turned into an error result so the coordinator never
// waits on a chunk that will not arrive.
func runChunk(snapshot []life.Particle, chunk Chunk, forces life.ForcesTable, mode life.PhysicsMode, params life.Params) (res JobResult) {
	res.Start = chunk.Start
	defer func() {
		if r := recover(); r != nil {
			res.Accelerations = nil
			res.Err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()

	res.Accelerations = make([]life.Accel, chunk.Len())
	for k := range res.Accelerations {
		target := &snapshot[chunk.Start+k]

		var acc life.Accel
		for j := range snapshot {
			acc = acc.Plus(params.Acceleration(target, &snapshot[j], &forces, mode))
		}
		res.Accelerations[k] = acc
	}
	return res
}

// mergeResults drains exactly one result per chunk. Accelerations are
// additive and every particle belongs to one chunk, so completion order does
// not matter.
func mergeResults(particles []life.Particle, chunks []Chunk, results <-chan JobResult) {
	pending := make(map[int]Chunk, len(chunks))
	for _, chunk := range chunks {
		pending[chunk.Start] = chunk
	}

	for range chunks {
		res, ok := <-results
		if !ok {
			panic(&FaultError{Start: -1, Wrapped: ErrChunkLost})
		}
		if res.Err != nil {
			panic(&FaultError{Start: res.Start, Wrapped: res.Err})
		}
		chunk, ok := pending[res.Start]
		if !ok {
			panic(&FaultError{Start: res.Start, Wrapped: ErrChunkDuplicated})
		}
		if len(res.Accelerations) != chunk.Len() {
			panic(&FaultError{Start: res.Start, Wrapped: ErrChunkLost})
		}
		delete(pending, res.Start)

		for k, acc := range res.Accelerations {
			if acc.Valid {
				v := &particles[res.Start+k].Velocity
				*v = v.Add(acc.V)
			}
		}
	}
}
