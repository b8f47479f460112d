package kafka

import (
	"sync"
	"sync/atomic"
)

// Pool runs submitted jobs on a fixed set of goroutines.
type Pool struct {
	jobs    chan func()
	wg      sync.WaitGroup
	closed  atomic.Bool
	closeCh chan struct{}
}

func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs:    make(chan func(), n*2),
		closeCh: make(chan struct{}),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case f := <-p.jobs:
			if f != nil {
				f()
			}
		case <-p.closeCh:
			return
		}
	}
}

// Submit queues f and reports whether the pool accepted it. It blocks while
// the queue is full and gives up once the pool is closed.
func (p *Pool) Submit(f func()) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case p.jobs <- f:
		return true
	case <-p.closeCh:
		return false
	}
}

// Close stops the workers. Queued jobs that have not started are discarded.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.closeCh)
}

func (p *Pool) Wait() {
	p.wg.Wait()
}
