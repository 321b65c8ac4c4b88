package syncx

import (
	"container/list"
	"context"
	"sync"
)

// ConditionVariable lets goroutines wait for a notification while atomically
// releasing a lock. It works with any sync.Locker, including Mutex and Guard.
// The zero value has no waiters and is ready to use.
type ConditionVariable struct {
	mu      sync.Mutex
	waiters list.List // of chan struct{}
}

// Wait registers the caller, releases l, suspends until notified and locks l
// again before returning. The caller must hold l.
func (cv *ConditionVariable) Wait(l sync.Locker) {
	_ = cv.WaitContext(context.Background(), l)
}

// WaitFor waits until pred returns true. pred is only evaluated while l is
// held, and it is true when WaitFor returns.
func (cv *ConditionVariable) WaitFor(l sync.Locker, pred func() bool) {
	for !pred() {
		cv.Wait(l)
	}
}

// WaitContext is Wait bounded by ctx. Whatever the outcome, l is held again
// when it returns.
func (cv *ConditionVariable) WaitContext(ctx context.Context, l sync.Locker) error {
	ready := make(chan struct{})
	cv.mu.Lock()
	elem := cv.waiters.PushBack(ready)
	cv.mu.Unlock()

	l.Unlock()
	defer l.Lock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()
	select {
	case <-ready:
		// a notify picked us as we gave up, pass it on
		cv.notifyOneLocked()
	default:
		cv.waiters.Remove(elem)
	}
	return ctx.Err()
}

// NotifyOne wakes one registered waiter, if there is any.
func (cv *ConditionVariable) NotifyOne() {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.notifyOneLocked()
}

// NotifyAll wakes every registered waiter.
func (cv *ConditionVariable) NotifyAll() {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	for cv.waiters.Len() > 0 {
		cv.notifyOneLocked()
	}
}

// Waiters returns the number of registered waiters.
func (cv *ConditionVariable) Waiters() int {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.waiters.Len()
}

func (cv *ConditionVariable) notifyOneLocked() {
	front := cv.waiters.Front()
	if front == nil {
		return
	}
	cv.waiters.Remove(front)
	close(front.Value.(chan struct{}))
}
