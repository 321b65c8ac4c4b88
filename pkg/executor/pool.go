package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	var zero T
	old[0] = zero
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

type workRequest struct {
	fn  Work[any]
	c   chan Result[any] // nil for Execute
	ctx context.Context
}

type worker struct {
	pool *Pool
}

func (w worker) Work(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("worker panicked: %v", rec)
			if r.c != nil {
				r.c <- Result[any]{Err: err}
			} else {
				w.pool.log.Errorw("task panicked", "error", err)
			}
		}
		w.pool.done <- struct{}{}
		w.pool.wg.Done()
	}()

	v, err := r.fn(r.ctx)
	if r.c != nil {
		r.c <- Result[any]{Data: v, Err: err}
	}
}

type PoolOption func(*Pool)

// WithQueueSize bounds the number of accepted tasks not yet picked up by a
// worker. Zero means unbounded.
func WithQueueSize(n int) PoolOption {
	return func(p *Pool) {
		p.maxQueue = n
	}
}

// Pool runs tasks on a fixed number of goroutines.
type Pool struct {
	name       string
	size       int
	maxQueue   int
	pending    atomic.Int64
	workers    *queue[worker]
	workQueue  *queue[workRequest]
	close      chan any
	done       chan any
	stopped    chan any
	work       chan workRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
	log        *zap.SugaredLogger
}

var _ Executor = (*Pool)(nil)

func NewPool(name string, nbWorkers int, opts ...PoolOption) *Pool {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		name:       name,
		size:       nbWorkers,
		workers:    &queue[worker]{},
		workQueue:  &queue[workRequest]{},
		close:      make(chan any),
		done:       make(chan any, nbWorkers),
		stopped:    make(chan any),
		work:       make(chan workRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
		log:        zap.S().Named("executor").With("executor", name),
	}
	for _, opt := range opts {
		opt(p)
	}
	for range nbWorkers {
		p.workers.Push(worker{pool: p})
	}
	go p.run()
	return p
}

func (p *Pool) Name() string { return p.name }

// Size returns the number of worker goroutines.
func (p *Pool) Size() int { return p.size }

// Pending returns the number of accepted tasks waiting for a worker.
func (p *Pool) Pending() int { return int(p.pending.Load()) }

func (p *Pool) Execute(task Task) error {
	return p.enqueue(workRequest{
		fn: func(ctx context.Context) (any, error) {
			task(ctx)
			return nil, nil
		},
		ctx: p.mainCtx,
	})
}

func (p *Pool) Submit(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(p.mainCtx)

	if err := p.enqueue(workRequest{w, c, ctx}); err != nil {
		c <- Result[any]{Err: err}
	}

	return NewFuture(c, cancel)
}

func (p *Pool) Close() {
	p.once.Do(func() {
		p.mainCancel()
		p.close <- struct{}{}
		<-p.stopped
		p.log.Debugw("executor closed")
	})
}

func (p *Pool) enqueue(r workRequest) error {
	if n := p.pending.Add(1); p.maxQueue > 0 && n > int64(p.maxQueue) {
		p.pending.Add(-1)
		return ErrQueueFull
	}

	select {
	case <-p.mainCtx.Done():
		p.pending.Add(-1)
		return ErrExecutorClosed
	case p.work <- r:
		return nil
	}
}

func (p *Pool) run() {
	defer close(p.stopped)
	for {
		select {
		case w := <-p.work:
			p.workQueue.Push(w)
			p.dispatch()
		case <-p.done:
			p.workers.Push(worker{pool: p})
			p.dispatch()
		case <-p.close:
			p.wg.Wait()
			p.reject()
			return
		}
	}
}

// dispatch drains the workQueue as much as possible
// based on available workers
func (p *Pool) dispatch() {
	if p.mainCtx.Err() != nil {
		// closing, queued work is rejected instead
		return
	}
	for p.workers.Len() > 0 && p.workQueue.Len() > 0 {
		r := p.workQueue.Pop()
		w := p.workers.Pop()
		p.pending.Add(-1)
		p.wg.Add(1)
		go w.Work(r)
	}
}

// reject resolves work that was accepted but never reached a worker. Tasks
// given to Execute still run once, with the cancelled pool context.
func (p *Pool) reject() {
	for p.workQueue.Len() > 0 {
		r := p.workQueue.Pop()
		p.pending.Add(-1)
		if r.c != nil {
			r.c <- Result[any]{Err: ErrExecutorClosed}
			continue
		}
		p.runCancelled(r)
	}
}

func (p *Pool) runCancelled(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Errorw("task panicked", "error", fmt.Errorf("%v", rec))
		}
	}()
	_, _ = r.fn(p.mainCtx)
}
