package models

import (
	"time"

	"github.com/google/uuid"
)

// Run is one journaled execution of a time wheel worker.
type Run struct {
	ID          uuid.UUID
	Wheel       string
	Worker      string
	ScheduledAt time.Time
	StartedAt   time.Time
	Duration    time.Duration
	Panicked    bool
}

// Lateness is how long after its wake time the run started.
func (r Run) Lateness() time.Duration {
	if r.StartedAt.Before(r.ScheduledAt) {
		return 0
	}
	return r.StartedAt.Sub(r.ScheduledAt)
}

type RunSummary struct {
	Worker      string
	Runs        int
	Panics      int
	AvgDuration time.Duration
	MaxDuration time.Duration
	LastRun     time.Time
}
