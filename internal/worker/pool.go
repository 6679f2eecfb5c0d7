// Package worker provides a generic worker pool. Each worker goroutine owns
// the state built for it when the pool starts, so work that mutates a private
// copy of shared data (a cloned board, for example) needs no locking.
package worker

import (
	"sync"
	"sync/atomic"
)

// Item is one unit of work. Index records the submission order so callers can
// restore it after results arrive out of order.
type Item[T any] struct {
	Value T
	Index int
}

// Result pairs a processed value with the index of the item it came from.
type Result[R any] struct {
	Value R
	Index int
	Err   error
}

// ProcessFunc processes a single item on behalf of one worker.
type ProcessFunc[T, R any] func(item T) (R, error)

// Factory builds the ProcessFunc for worker n. It is called once per worker
// goroutine, before that goroutine reads any work.
type Factory[T, R any] func(n int) ProcessFunc[T, R]

type options struct {
	workers    int
	bufferSize int
}

// Option configures a Pool.
type Option func(*options)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size >= 1 {
			o.bufferSize = size
		}
	}
}

// Pool runs items through a fixed set of workers.
type Pool[T, R any] struct {
	opts     options
	work     chan Item[T]
	results  chan Result[R]
	factory  Factory[T, R]
	wg       sync.WaitGroup
	stopped  atomic.Bool
	submitMu sync.Mutex
	closed   bool
}

// NewPool creates a pool. Default: 1 worker, buffer size of 10.
func NewPool[T, R any](factory Factory[T, R], opts ...Option) *Pool[T, R] {
	o := options{workers: 1, bufferSize: 10}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[T, R]{
		opts:    o,
		work:    make(chan Item[T], o.bufferSize),
		results: make(chan Result[R], o.bufferSize),
		factory: factory,
	}
}

// Start launches the worker goroutines.
func (p *Pool[T, R]) Start() {
	for n := 0; n < p.opts.workers; n++ {
		p.wg.Add(1)
		go p.run(n)
	}
}

func (p *Pool[T, R]) run(n int) {
	defer p.wg.Done()

	process := p.factory(n)
	for item := range p.work {
		if p.stopped.Load() {
			continue // drain without processing
		}
		v, err := process(item.Value)
		p.results <- Result[R]{Value: v, Index: item.Index, Err: err}
	}
}

// Submit queues an item. It blocks while the work buffer is full and returns
// false once the pool has been stopped or closed.
func (p *Pool[T, R]) Submit(item Item[T]) bool {
	p.submitMu.Lock()
	defer p.submitMu.Unlock()
	if p.closed || p.stopped.Load() {
		return false
	}
	p.work <- item
	return true
}

// Stop makes workers skip the items still queued.
func (p *Pool[T, R]) Stop() {
	p.stopped.Store(true)
}

// Close closes the work channel, waits for the workers, then closes the
// result channel. Results must be drained concurrently or the buffer must be
// large enough to hold them all.
func (p *Pool[T, R]) Close() {
	p.submitMu.Lock()
	if p.closed {
		p.submitMu.Unlock()
		return
	}
	p.closed = true
	close(p.work)
	p.submitMu.Unlock()

	p.wg.Wait()
	close(p.results)
}

// Results returns the channel processed results are delivered on.
func (p *Pool[T, R]) Results() <-chan Result[R] {
	return p.results
}
