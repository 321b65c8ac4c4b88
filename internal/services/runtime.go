package services

import (
	"go.uber.org/zap"

	"github.com/tidewire/tidewire/internal/models"
	"github.com/tidewire/tidewire/pkg/executor"
	srvErrors "github.com/tidewire/tidewire/pkg/errors"
	"github.com/tidewire/tidewire/pkg/timewheel"
)

type poolStats interface {
	Size() int
	Pending() int
}

// Runtime owns the executors and the time wheel of the process.
type Runtime struct {
	executors *executor.Manager
	wheel     *timewheel.TimeWheel
	log       *zap.SugaredLogger
}

func NewRuntime(executors *executor.Manager, opts ...timewheel.Option) *Runtime {
	return &Runtime{
		executors: executors,
		wheel:     timewheel.New(opts...),
		log:       zap.S().Named("runtime"),
	}
}

// Start binds the wheel to the named executor, hands it the workers and
// starts it.
func (r *Runtime) Start(executorName string, workers []timewheel.Worker) error {
	ex, err := r.executors.Get(executorName)
	if err != nil {
		return err
	}
	r.wheel.Init(ex)

	for _, w := range workers {
		if err := r.wheel.AddWorker(w); err != nil {
			return err
		}
	}

	if err := r.wheel.Start(); err != nil {
		return err
	}
	r.log.Infow("runtime started", "wheel", r.wheel.Name(), "state", r.wheel.State().String(), "workers", r.wheel.Len())
	return nil
}

// Stop shuts the wheel down, then closes every executor.
func (r *Runtime) Stop() {
	r.wheel.Shutdown()
	r.executors.Close()
	r.log.Infow("runtime stopped")
}

func (r *Runtime) Wheel() models.WheelStatus {
	return models.WheelStatus{
		ID:      r.wheel.ID().String(),
		Name:    r.wheel.Name(),
		State:   r.wheel.State().String(),
		Workers: r.wheel.Len(),
	}
}

func (r *Runtime) Workers() []models.WorkerStatus {
	stats := r.wheel.Stats()
	workers := make([]models.WorkerStatus, 0, len(stats))
	for _, s := range stats {
		workers = append(workers, newWorkerStatus(s))
	}
	return workers
}

func (r *Runtime) Worker(name string) (*models.WorkerStatus, error) {
	for _, s := range r.wheel.Stats() {
		if s.Name == name {
			w := newWorkerStatus(s)
			return &w, nil
		}
	}
	return nil, srvErrors.NewWorkerNotFoundError(name)
}

func (r *Runtime) Executors() []models.ExecutorStatus {
	names := r.executors.Names()
	executors := make([]models.ExecutorStatus, 0, len(names))
	for _, name := range names {
		ex, err := r.executors.Get(name)
		if err != nil {
			continue
		}
		status := models.ExecutorStatus{Name: name}
		if p, ok := ex.(poolStats); ok {
			status.Workers = p.Size()
			status.Pending = p.Pending()
		}
		executors = append(executors, status)
	}
	return executors
}

func newWorkerStatus(s timewheel.WorkerStats) models.WorkerStatus {
	return models.WorkerStatus{
		Name:         s.Name,
		Period:       s.Period,
		Runs:         s.Runs,
		Panics:       s.Panics,
		LastRun:      s.LastRun,
		LastDuration: s.LastDuration,
		NextWake:     s.NextWake,
		Retired:      s.Retired,
	}
}
