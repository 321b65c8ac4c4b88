package syncx

import "sync"

// Barrier is a reusable rendezvous for a fixed number of participants.
type Barrier struct {
	count int

	mu        sync.Mutex
	remaining int
	round     *Condition
	closed    bool
}

// NewBarrier returns a barrier for count participants. It panics if count < 1.
func NewBarrier(count int) *Barrier {
	if count < 1 {
		panic("syncx: barrier count must be >= 1")
	}
	return &Barrier{
		count:     count,
		remaining: count,
		round:     &Condition{},
	}
}

// Count returns the number of participants per round.
func (b *Barrier) Count() int {
	return b.count
}

// Wait blocks until all participants of the current round have called Wait.
// It returns false if the barrier was closed.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false
	}

	round := b.round
	b.remaining--
	if b.remaining > 0 {
		b.mu.Unlock()
		return round.Wait()
	}

	b.remaining = b.count
	b.round = &Condition{}
	b.mu.Unlock()

	round.Satisfy()
	return true
}

// Close releases every waiter of the current round with false. Later calls to
// Wait return false immediately.
func (b *Barrier) Close() {
	b.mu.Lock()
	b.closed = true
	round := b.round
	b.mu.Unlock()

	round.Fail()
}
