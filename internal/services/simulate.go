package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/pkg/clock"
	"github.com/tidewire/tidewire/pkg/executor"
	"github.com/tidewire/tidewire/pkg/timewheel"
)

var ErrSimulationStalled = errors.New("simulation stalled")

// SimulatedRun is a run predicted by Simulate, At is the offset from the
// wheel start.
type SimulatedRun struct {
	Worker string
	At     time.Duration
}

// Simulate drives a time wheel holding workers with the given names and
// periods on a fake clock for horizon and returns the runs it makes, in
// order. Worker bodies are not executed.
func Simulate(defs []config.Worker, horizon time.Duration) ([]SimulatedRun, error) {
	start := time.Unix(0, 0).UTC()
	fake := clock.NewFake(start)

	pool := executor.NewPool("simulation", 1)
	defer pool.Close()

	var (
		mu   sync.Mutex
		runs []SimulatedRun
	)
	tw := timewheel.New(
		timewheel.WithName("simulation"),
		timewheel.WithClock(fake),
		timewheel.WithRunObserver(func(r timewheel.RunRecord) {
			mu.Lock()
			defer mu.Unlock()
			runs = append(runs, SimulatedRun{Worker: r.Worker, At: r.Started.Sub(start)})
		}),
	)
	defer tw.Shutdown()

	tw.Init(pool)
	for _, d := range defs {
		if err := tw.AddWorker(timewheel.NewFuncWorker(d.Name, d.Period, func(context.Context) {})); err != nil {
			return nil, err
		}
	}
	if err := tw.Start(); err != nil {
		return nil, err
	}

	end := start.Add(horizon)
	for {
		if err := waitIdle(fake, tw); err != nil {
			return nil, err
		}
		next, ok := fake.NextDeadline()
		if !ok || next.After(end) {
			break
		}
		fake.Set(next)
	}
	tw.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	return append([]SimulatedRun(nil), runs...), nil
}

// waitIdle waits until the loop sleeps or has no worker left.
func waitIdle(fake *clock.Fake, tw *timewheel.TimeWheel) error {
	deadline := time.Now().Add(5 * time.Second)
	for fake.Sleepers() == 0 && tw.Len() > 0 {
		if time.Now().After(deadline) {
			return ErrSimulationStalled
		}
		time.Sleep(50 * time.Microsecond)
	}
	return nil
}
