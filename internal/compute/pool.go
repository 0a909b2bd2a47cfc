package compute

import "sync"

// Pool is a fixed set of worker goroutines fed through a job channel. Jobs
// run to completion; there is no cancellation.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
	size int

	mu     sync.RWMutex
	closed bool
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		jobs: make(chan func(), size),
		size: size,
	}
	p.wg.Add(size)
	for w := 0; w < size; w++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

func (p *Pool) Size() int { return p.size }

// Submit queues job, blocking while every worker is busy and the queue is full.
func (p *Pool) Submit(job func()) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		panic(ErrPoolClosed)
	}
	p.jobs <- job
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
