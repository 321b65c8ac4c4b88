package v1

import (
	"github.com/tidewire/tidewire/internal/models"
	"github.com/tidewire/tidewire/internal/util"
)

func (w *Wheel) FromModel(m models.WheelStatus) {
	w.Id = m.ID
	w.Name = m.Name
	w.State = m.State
	w.Workers = m.Workers
}

func NewExecutorFromModel(m models.ExecutorStatus) Executor {
	return Executor{
		Name:    m.Name,
		Workers: m.Workers,
		Pending: m.Pending,
	}
}

// NewWorkerFromModel converts a models.WorkerStatus to an API Worker.
func NewWorkerFromModel(m models.WorkerStatus) Worker {
	return Worker{
		Name:           m.Name,
		Period:         m.Period.String(),
		Runs:           m.Runs,
		Panics:         m.Panics,
		LastRun:        util.TimePtr(m.LastRun),
		LastDurationMs: util.DurationToMs(m.LastDuration),
		NextWake:       util.TimePtr(m.NextWake),
		Retired:        m.Retired,
	}
}

// NewRunFromModel converts a models.Run to an API Run.
func NewRunFromModel(m models.Run) Run {
	return Run{
		Id:          m.ID.String(),
		Wheel:       m.Wheel,
		Worker:      m.Worker,
		ScheduledAt: m.ScheduledAt,
		StartedAt:   m.StartedAt,
		DurationMs:  util.DurationToMs(m.Duration),
		LatenessMs:  util.DurationToMs(m.Lateness()),
		Panicked:    m.Panicked,
	}
}

func NewRunSummaryFromModel(m models.RunSummary) RunSummary {
	return RunSummary{
		Worker:        m.Worker,
		Runs:          m.Runs,
		Panics:        m.Panics,
		AvgDurationMs: util.DurationToMs(m.AvgDuration),
		MaxDurationMs: util.DurationToMs(m.MaxDuration),
		LastRun:       util.TimePtr(m.LastRun),
	}
}
