// Package clock abstracts the monotonic time source used by schedulers.
//
// Real reads time.Now, whose values carry Go's monotonic clock reading, so
// deadlines computed from it are immune to wall-clock adjustments. Fake is a
// manually advanced clock for deterministic tests.
package clock

import (
	"context"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// SleepUntil blocks until the absolute time t or until ctx ends, in which
	// case it returns ctx.Err().
	SleepUntil(ctx context.Context, t time.Time) error
}

type Real struct{}

var _ Clock = Real{}

func (Real) Now() time.Time { return time.Now() }

func (Real) SleepUntil(ctx context.Context, t time.Time) error {
	// the timer is armed from the deadline, not from a duration the caller
	// computed earlier
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type sleeper struct {
	until time.Time
	wake  chan struct{}
}

// Fake is a Clock that only moves when told to.
type Fake struct {
	mu       sync.Mutex
	now      time.Time
	sleepers map[*sleeper]struct{}
}

var _ Clock = (*Fake)(nil)

func NewFake(now time.Time) *Fake {
	return &Fake{now: now, sleepers: make(map[*sleeper]struct{})}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) SleepUntil(ctx context.Context, t time.Time) error {
	f.mu.Lock()
	if !t.After(f.now) {
		f.mu.Unlock()
		return ctx.Err()
	}
	s := &sleeper{until: t, wake: make(chan struct{})}
	f.sleepers[s] = struct{}{}
	f.mu.Unlock()

	select {
	case <-s.wake:
		return nil
	case <-ctx.Done():
		f.mu.Lock()
		delete(f.sleepers, s)
		f.mu.Unlock()
		return ctx.Err()
	}
}

// Advance moves the clock forward by d and wakes the sleepers whose deadline
// has been reached.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setLocked(f.now.Add(d))
}

// Set moves the clock to t. Moving backwards is allowed and wakes nobody.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setLocked(t)
}

// Sleepers returns the number of goroutines blocked in SleepUntil.
func (f *Fake) Sleepers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sleepers)
}

// NextDeadline returns the earliest deadline any sleeper is waiting for.
func (f *Fake) NextDeadline() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		next  time.Time
		found bool
	)
	for s := range f.sleepers {
		if !found || s.until.Before(next) {
			next, found = s.until, true
		}
	}
	return next, found
}

func (f *Fake) setLocked(t time.Time) {
	f.now = t
	for s := range f.sleepers {
		if !s.until.After(t) {
			delete(f.sleepers, s)
			close(s.wake)
		}
	}
}
