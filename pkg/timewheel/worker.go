package timewheel

import (
	"context"
	"time"
)

// Worker is a unit of work scheduled by absolute wake time.
type Worker interface {
	Name() string
	// Period between runs. Zero means the worker runs once.
	Period() time.Duration
	NextWake() time.Time
	ResetWakeTime(now time.Time)
	UpdateWorkerTime(now time.Time)
	IsExpired(now time.Time) bool
	Run(ctx context.Context)
}

// BaseWorker implements the bookkeeping half of Worker. Embed it and add Run.
type BaseWorker struct {
	name     string
	period   time.Duration
	nextWake time.Time
}

func NewBaseWorker(period time.Duration, name string) *BaseWorker {
	return &BaseWorker{name: name, period: period}
}

func (w *BaseWorker) Name() string { return w.name }

func (w *BaseWorker) Period() time.Duration { return w.period }

func (w *BaseWorker) NextWake() time.Time { return w.nextWake }

func (w *BaseWorker) ResetWakeTime(now time.Time) {
	w.nextWake = now
}

// UpdateWorkerTime advances the wake time by one period. A worker that missed
// one or more periods is resynchronised to one period after now instead of
// being scheduled for catch-up runs.
func (w *BaseWorker) UpdateWorkerTime(now time.Time) {
	w.nextWake = w.nextWake.Add(w.period)
	if !w.nextWake.After(now) {
		w.nextWake = now.Add(w.period)
	}
}

func (w *BaseWorker) IsExpired(now time.Time) bool {
	return !now.Before(w.nextWake)
}

// FuncWorker adapts a function to Worker.
type FuncWorker struct {
	*BaseWorker
	fn func(ctx context.Context)
}

var _ Worker = (*FuncWorker)(nil)

func NewFuncWorker(name string, period time.Duration, fn func(ctx context.Context)) *FuncWorker {
	return &FuncWorker{BaseWorker: NewBaseWorker(period, name), fn: fn}
}

func (w *FuncWorker) Run(ctx context.Context) {
	w.fn(ctx)
}
