// Package syncx implements the synchronization primitives used across the runtime.
//
// Every primitive in this package suspends the calling goroutine on a channel
// rather than spinning or parking an OS thread explicitly. A goroutine running
// as a task on an executor pool and a goroutine locked to its own OS thread
// therefore get the same guarantees: the former yields its worker back to the
// Go scheduler while it waits, the latter simply blocks its thread.
//
// # Primitives
//
//	┌────────────────────┬──────────────────────────────────────────────────┐
//	│ Type               │ Purpose                                          │
//	├────────────────────┼──────────────────────────────────────────────────┤
//	│ Condition          │ tri-state latch: unset / satisfied / failed      │
//	│ Barrier            │ reusable N-party rendezvous built on Condition   │
//	│ Mutex              │ FIFO hand-off lock, cancellable acquisition      │
//	│ Guard              │ scoped ownership of a Mutex                      │
//	│ ConditionVariable  │ wait/notify paired with any sync.Locker          │
//	└────────────────────┴──────────────────────────────────────────────────┘
//
// # Condition
//
//	          Satisfy()                 Fail()
//	 unset ─────────────► satisfied ◄──────────┐
//	   │                     │  ▲              │
//	   │ Fail()              │  │ Satisfy()    │
//	   ▼                     ▼  │              │
//	 failed ◄────────────────────┘─────────────┘
//
//	 Init(v) resets to unset/satisfied without waking anyone.
//
// Wait returns true once the condition is satisfied and false once it has
// failed. A failed condition stays failed for every later Wait until Init is
// called again. Close is the destructor: it fails the condition so that no
// goroutine stays blocked on an object that is going away.
//
// # Barrier
//
// A Barrier releases its participants in rounds:
//
//	round 1:  p1 ─┐
//	          p2 ─┼─► last arrival satisfies round 1, installs round 2
//	          p3 ─┘
//	round 2:  p1 ─┐
//	          ...
//
// Each round owns its own Condition, so a participant that was released from
// round k but has not yet been scheduled cannot be caught by round k+1.
// Participants must not re-enter Wait before everyone from the current round
// has arrived; the barrier does not fence phases beyond that.
//
// # Mutex and Guard
//
// Mutex keeps a FIFO queue of blocked acquirers. Unlock hands ownership
// directly to the head of the queue, so the lock never becomes free while
// someone is waiting:
//
//	holder ── Unlock() ──► waiter[0] now holds the lock
//	                        waiter[1], waiter[2] ... keep waiting
//
// LockContext abandons the wait when its context ends. If the hand-off races
// with the cancellation, the ownership that was just received is passed on to
// the next waiter.
//
// ScopedLock returns a Guard. Releasing a Guard is idempotent, which lets it be
// released early and still deferred:
//
//	g := mu.ScopedLock()
//	defer g.Unlock()
//	if done {
//	    g.Unlock()
//	    return
//	}
//
// # ConditionVariable
//
// A waiter is registered while the caller still holds its lock, and only then
// is the lock released. A notify issued after the lock was released therefore
// always finds the waiter:
//
//	Wait(l):  register ──► l.Unlock() ──► suspend ──► l.Lock() ──► return
//	                                         ▲
//	NotifyOne() / NotifyAll() ───────────────┘
//
// Notifications sent while nobody is registered are dropped. WaitFor wraps
// Wait in the usual predicate loop and is the form to use when a notify may
// arrive before the waiter gets to register:
//
//	g := mu.ScopedLock()
//	defer g.Unlock()
//	cv.WaitFor(g, func() bool { return len(queue) > 0 })
package syncx
