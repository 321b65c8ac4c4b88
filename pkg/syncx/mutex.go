package syncx

import (
	"container/list"
	"context"
	"sync"
)

// Mutex is a mutual exclusion lock whose blocked acquirers are queued in FIFO
// order and receive the lock by direct hand-off. The zero value is unlocked.
//
// Mutex must not be copied after first use.
type Mutex struct {
	mu      sync.Mutex
	locked  bool
	waiters list.List // of chan struct{}
}

var _ sync.Locker = (*Mutex)(nil)

// Lock acquires m, suspending the caller until it is available.
func (m *Mutex) Lock() {
	_ = m.LockContext(context.Background())
}

// TryLock acquires m if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked {
		return false
	}
	m.locked = true
	return true
}

// LockContext acquires m or returns ctx.Err() if ctx ends first. On error the
// caller does not hold m.
func (m *Mutex) LockContext(ctx context.Context) error {
	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.mu.Unlock()
		return nil
	}
	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		return err
	}
	ready := make(chan struct{})
	elem := m.waiters.PushBack(ready)
	m.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	select {
	case <-ready:
		// handed over while we were giving up
		m.releaseLocked()
	default:
		m.waiters.Remove(elem)
	}
	return ctx.Err()
}

// Unlock releases m, handing it to the longest waiting acquirer if any.
// It panics if m is not locked.
func (m *Mutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

// ScopedLock acquires m and returns a Guard owning it.
func (m *Mutex) ScopedLock() *Guard {
	m.Lock()
	return &Guard{m: m, held: true}
}

// WithLock runs fn while holding m. The lock is released even if fn panics.
func (m *Mutex) WithLock(fn func()) {
	g := m.ScopedLock()
	defer g.Unlock()
	fn()
}

func (m *Mutex) releaseLocked() {
	if !m.locked {
		panic("syncx: unlock of unlocked mutex")
	}
	if front := m.waiters.Front(); front != nil {
		m.waiters.Remove(front)
		close(front.Value.(chan struct{}))
		return
	}
	m.locked = false
}

// Guard is scoped ownership of a Mutex, returned by ScopedLock. A Guard
// belongs to the goroutine that created it.
type Guard struct {
	m    *Mutex
	held bool
}

var _ sync.Locker = (*Guard)(nil)

// Unlock releases the guarded mutex. Calling it again is a no-op.
func (g *Guard) Unlock() {
	if !g.held {
		return
	}
	g.held = false
	g.m.Unlock()
}

// Lock re-acquires the guarded mutex if the guard released it.
func (g *Guard) Lock() {
	if g.held {
		return
	}
	g.m.Lock()
	g.held = true
}

// Owns reports whether the guard currently holds the mutex.
func (g *Guard) Owns() bool {
	return g.held
}
