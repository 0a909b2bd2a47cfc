package compute

import "github.com/san-kum/plife/internal/life"

// Chunk is the half-open index range [Start, End) handled by one job.
type Chunk struct {
	Start int
	End   int
}

func (c Chunk) Len() int { return c.End - c.Start }

// Partition splits [0, n) into contiguous chunks of n/workers indices; the
// last chunk absorbs the remainder. workers is clamped to [1, n] so no chunk
// is empty.
func Partition(n, workers int) []Chunk {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	size := n / workers
	chunks := make([]Chunk, workers)
	for w := range chunks {
		start := w * size
		end := start + size
		if w == workers-1 {
			end = n
		}
		chunks[w] = Chunk{Start: start, End: end}
	}
	return chunks
}

// JobResult carries one optional acceleration per particle of a chunk.
type JobResult struct {
	Start         int
	Accelerations []life.Accel
	Err           error
}
