package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/internal/models"
	"github.com/tidewire/tidewire/pkg/clock"
	"github.com/tidewire/tidewire/pkg/timewheel"
)

type heartbeatWorker struct {
	*timewheel.BaseWorker
	beats uint64
	log   *zap.SugaredLogger
}

func (w *heartbeatWorker) Run(ctx context.Context) {
	w.beats++
	w.log.Debugw("heartbeat", "worker", w.Name(), "beat", w.beats)
}

type sleepWorker struct {
	*timewheel.BaseWorker
	work time.Duration
}

func (w *sleepWorker) Run(ctx context.Context) {
	t := time.NewTimer(w.work)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

type pruneWorker struct {
	*timewheel.BaseWorker
	clock     clock.Clock
	journal   *Journal
	retention time.Duration
	log       *zap.SugaredLogger
}

func (w *pruneWorker) Run(ctx context.Context) {
	n, err := w.journal.Prune(ctx, w.clock.Now().Add(-w.retention))
	if err != nil {
		w.log.Errorw("failed to prune run journal", "worker", w.Name(), "error", err)
		return
	}
	if n > 0 {
		w.log.Infow("run journal pruned", "worker", w.Name(), "removed", n)
	}
}

type WorkerOption func(*workerOptions)

type workerOptions struct {
	clock clock.Clock
}

// WithWorkerClock sets the clock prune workers compute their cutoff from. It
// should be the clock of the wheel the workers run on.
func WithWorkerClock(c clock.Clock) WorkerOption {
	return func(o *workerOptions) {
		o.clock = c
	}
}

// BuildWorkers turns worker definitions into time wheel workers. journal may
// be nil when no prune worker is defined.
func BuildWorkers(defs []config.Worker, journal *Journal, retention time.Duration, opts ...WorkerOption) ([]timewheel.Worker, error) {
	o := workerOptions{clock: clock.Real{}}
	for _, opt := range opts {
		opt(&o)
	}

	log := zap.S().Named("worker")
	workers := make([]timewheel.Worker, 0, len(defs))
	for _, d := range defs {
		kind, err := models.ParseWorkerKind(d.Kind)
		if err != nil {
			return nil, err
		}
		base := timewheel.NewBaseWorker(d.Period, d.Name)

		switch kind {
		case models.WorkerKindHeartbeat:
			workers = append(workers, &heartbeatWorker{BaseWorker: base, log: log})
		case models.WorkerKindSleep:
			workers = append(workers, &sleepWorker{BaseWorker: base, work: d.Work})
		case models.WorkerKindPrune:
			if journal == nil {
				return nil, fmt.Errorf("worker %q: prune needs the run journal", d.Name)
			}
			workers = append(workers, &pruneWorker{BaseWorker: base, clock: o.clock, journal: journal, retention: retention, log: log})
		}
	}
	return workers, nil
}
