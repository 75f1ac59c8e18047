package pool

import (
	"sync"
	"sync/atomic"
)

// Pool runs submitted jobs on a fixed set of goroutines.
type Pool struct {
	jobs    chan func()
	wg      sync.WaitGroup
	closed  atomic.Bool
	closeMu sync.RWMutex
}

func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs: make(chan func(), n*2),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for f := range p.jobs {
				if f != nil {
					f()
				}
			}
		}()
	}
	return p
}

// Submit queues f and reports whether it was accepted. Jobs submitted after
// Close are dropped.
func (p *Pool) Submit(f func()) bool {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed.Load() {
		return false
	}
	p.jobs <- f
	return true
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Close() {
	p.closeMu.Lock()
	if p.closed.Swap(true) {
		p.closeMu.Unlock()
		return
	}
	close(p.jobs)
	p.closeMu.Unlock()
	p.wg.Wait()
}
