package compute

import (
	"sync"

	"github.com/san-kum/plife/internal/life"
)

// SnapshotPool recycles the read-only particle copies taken every tick.
type SnapshotPool struct {
	pool sync.Pool
}

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]life.Particle)
			},
		},
	}
}

func (p *SnapshotPool) Get(n int) *[]life.Particle {
	buf := p.pool.Get().(*[]life.Particle)
	if cap(*buf) < n {
		*buf = make([]life.Particle, n)
	}
	*buf = (*buf)[:n]
	return buf
}

func (p *SnapshotPool) Put(buf *[]life.Particle) {
	clear(*buf)
	p.pool.Put(buf)
}

func (p *SnapshotPool) GetAndCopy(src []life.Particle) *[]life.Particle {
	dst := p.Get(len(src))
	copy(*dst, src)
	return dst
}
