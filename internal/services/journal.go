package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tidewire/tidewire/internal/models"
	"github.com/tidewire/tidewire/internal/store"
	"github.com/tidewire/tidewire/pkg/executor"
	"github.com/tidewire/tidewire/pkg/timewheel"
)

type RunListParams struct {
	Workers  []string
	Wheel    string
	Panicked *bool
	Limit    uint64
	Offset   uint64
}

type RunListResult struct {
	Runs  []models.Run
	Total int
}

// Journal records time wheel runs in the store. Writes happen on their own
// executor so the scheduling loop never waits for the database.
type Journal struct {
	runs    *store.RunStore
	ex      executor.Executor
	dropped atomic.Uint64
	log     *zap.SugaredLogger
}

func NewJournal(runs *store.RunStore, ex executor.Executor) *Journal {
	return &Journal{
		runs: runs,
		ex:   ex,
		log:  zap.S().Named("journal"),
	}
}

// Observe is a timewheel.RunObserver.
func (j *Journal) Observe(rec timewheel.RunRecord) {
	run := models.Run{
		ID:          uuid.New(),
		Wheel:       rec.Wheel,
		Worker:      rec.Worker,
		ScheduledAt: rec.Scheduled,
		StartedAt:   rec.Started,
		Duration:    rec.Duration,
		Panicked:    rec.Panicked,
	}

	err := j.ex.Execute(func(ctx context.Context) {
		// a record accepted before shutdown is still written
		if err := j.runs.Insert(context.WithoutCancel(ctx), run); err != nil {
			j.log.Errorw("failed to journal run", "worker", run.Worker, "run_id", run.ID, "error", err)
		}
	})
	if err != nil {
		j.dropped.Add(1)
		j.log.Warnw("run record dropped", "worker", run.Worker, "error", err)
	}
}

// Dropped returns the number of records the executor refused.
func (j *Journal) Dropped() uint64 {
	return j.dropped.Load()
}

func (j *Journal) List(ctx context.Context, params RunListParams) (*RunListResult, error) {
	filters := []store.ListOption{
		store.ByWorkers(params.Workers...),
		store.ByWheel(params.Wheel),
	}
	if params.Panicked != nil {
		filters = append(filters, store.ByPanicked(*params.Panicked))
	}

	total, err := j.runs.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := filters
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}
	runs, err := j.runs.List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &RunListResult{Runs: runs, Total: total}, nil
}

func (j *Journal) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	return j.runs.Get(ctx, id)
}

func (j *Journal) Summary(ctx context.Context, workers ...string) ([]models.RunSummary, error) {
	return j.runs.Summary(ctx, store.ByWorkers(workers...))
}

// Prune deletes the runs started before t.
func (j *Journal) Prune(ctx context.Context, before time.Time) (int64, error) {
	return j.runs.DeleteBefore(ctx, before)
}
