package executor

import (
	"context"
	"errors"
)

var (
	ErrExecutorClosed = errors.New("executor closed")
	ErrQueueFull      = errors.New("executor queue full")
)

// Executor is an execution context that runs tasks on goroutines it owns.
type Executor interface {
	Name() string
	// Execute schedules task without waiting for it. It fails synchronously
	// when the executor cannot accept the task.
	Execute(task Task) error
	// Submit schedules work and returns a future for its result.
	Submit(work Work[any]) *Future[Result[any]]
	Close()
}

type Task func(ctx context.Context)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	f := &Future[T]{
		input:  input,
		cancel: cancel,
	}

	return f
}

func (f *Future[T]) C() chan T {
	return f.input
}

func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the future resolves or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-f.input:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
