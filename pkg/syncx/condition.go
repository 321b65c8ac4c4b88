package syncx

import (
	"context"
	"sync"
)

// Condition is a resettable boolean latch that can also fail permanently.
// The zero value is unset and not failed.
type Condition struct {
	mu     sync.Mutex
	value  bool
	failed bool
	// closed and replaced every time waiters are woken
	wake chan struct{}
}

// NewCondition returns a Condition initialised to value.
func NewCondition(value bool) *Condition {
	return &Condition{value: value}
}

// Init resets the condition. It does not wake anyone, even when value is true.
func (c *Condition) Init(value bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.failed = false
}

// Satisfy sets the condition and wakes all waiters.
func (c *Condition) Satisfy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = true
	c.failed = false
	c.broadcastLocked()
}

// Fail marks the condition as permanently unsatisfiable and wakes all waiters,
// which observe false.
func (c *Condition) Fail() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = false
	c.failed = true
	c.broadcastLocked()
}

// Close fails the condition.
func (c *Condition) Close() {
	c.Fail()
}

// Bool reports the current value.
func (c *Condition) Bool() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Failed reports whether Fail was called since the last Init or Satisfy.
func (c *Condition) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

// Wait blocks until the condition is satisfied or has failed, and returns its
// value.
func (c *Condition) Wait() bool {
	ok, _ := c.WaitContext(context.Background())
	return ok
}

// WaitContext is Wait bounded by ctx. It returns ctx.Err() if the context ends
// before the condition is satisfied or failed.
func (c *Condition) WaitContext(ctx context.Context) (bool, error) {
	c.mu.Lock()
	for !c.value && !c.failed {
		if c.wake == nil {
			c.wake = make(chan struct{})
		}
		wake := c.wake
		c.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return false, ctx.Err()
		}

		c.mu.Lock()
	}
	value := c.value
	c.mu.Unlock()
	return value, nil
}

func (c *Condition) broadcastLocked() {
	if c.wake != nil {
		close(c.wake)
		c.wake = nil
	}
}
