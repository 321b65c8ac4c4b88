package timewheel

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tidewire/tidewire/pkg/clock"
	"github.com/tidewire/tidewire/pkg/executor"
	"github.com/tidewire/tidewire/pkg/syncx"
)

var (
	ErrNotInitialized = errors.New("time wheel has no executor")
	ErrAlreadyStarted = errors.New("time wheel already started")
	ErrStopped        = errors.New("time wheel stopped")
)

type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// RunRecord describes one execution of a worker.
type RunRecord struct {
	Wheel     string
	Worker    string
	Scheduled time.Time
	Started   time.Time
	Duration  time.Duration
	Panicked  bool
}

type RunObserver func(RunRecord)

type WorkerStats struct {
	Name         string
	Period       time.Duration
	Runs         uint64
	Panics       uint64
	LastRun      time.Time
	LastDuration time.Duration
	NextWake     time.Time
	Retired      bool
}

type Option func(*TimeWheel)

func WithClock(c clock.Clock) Option {
	return func(tw *TimeWheel) {
		tw.clock = c
	}
}

func WithName(name string) Option {
	return func(tw *TimeWheel) {
		tw.name = name
	}
}

// WithRunObserver registers fn to be called on the scheduling loop after every
// run. fn must not block.
func WithRunObserver(fn RunObserver) Option {
	return func(tw *TimeWheel) {
		tw.observer = fn
	}
}

// WithSpawnBackOff sets the policy used by Start to retry spawning the loop
// while the executor reports executor.ErrQueueFull.
func WithSpawnBackOff(newBackOff func() backoff.BackOff, maxTries uint) Option {
	return func(tw *TimeWheel) {
		tw.newBackOff = newBackOff
		tw.spawnTries = maxTries
	}
}

// TimeWheel runs periodic workers on a single scheduling loop hosted by an
// executor.
type TimeWheel struct {
	id         uuid.UUID
	name       string
	clock      clock.Clock
	observer   RunObserver
	newBackOff func() backoff.BackOff
	spawnTries uint

	// serializes Init, AddWorker, Start and Shutdown
	mu       syncx.Mutex
	state    atomic.Int32
	executor executor.Executor
	workers  workerHeap
	seq      int
	live     atomic.Int32

	running atomic.Bool
	cancel  context.CancelFunc
	done    *syncx.Condition

	statsMu sync.Mutex
	stats   []WorkerStats

	log *zap.SugaredLogger
}

func New(opts ...Option) *TimeWheel {
	tw := &TimeWheel{
		id:    uuid.New(),
		name:  "timewheel",
		clock: clock.Real{},
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 10 * time.Millisecond
			b.MaxInterval = 500 * time.Millisecond
			return b
		},
		spawnTries: 5,
		done:       syncx.NewCondition(false),
	}
	for _, opt := range opts {
		opt(tw)
	}
	tw.log = zap.S().Named("timewheel").With("wheel", tw.name, "wheel_id", tw.id.String())
	return tw
}

func (tw *TimeWheel) ID() uuid.UUID { return tw.id }

func (tw *TimeWheel) Name() string { return tw.name }

func (tw *TimeWheel) State() State { return State(tw.state.Load()) }

// Len returns the number of workers owned by the wheel.
func (tw *TimeWheel) Len() int { return int(tw.live.Load()) }

// Init binds the executor the scheduling loop will run on.
func (tw *TimeWheel) Init(ex executor.Executor) {
	tw.mu.WithLock(func() {
		tw.executor = ex
	})
}

// AddWorker hands w to the wheel. Workers can only be added before Start.
func (tw *TimeWheel) AddWorker(w Worker) error {
	g := tw.mu.ScopedLock()
	defer g.Unlock()

	switch tw.State() {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrStopped
	}

	heap.Push(&tw.workers, entry{w: w, seq: tw.seq})
	tw.seq++
	tw.live.Add(1)

	tw.statsMu.Lock()
	tw.stats = append(tw.stats, WorkerStats{Name: w.Name(), Period: w.Period()})
	tw.statsMu.Unlock()

	return nil
}

// Start spawns the scheduling loop. With no workers it does nothing and the
// wheel stays NotStarted. If the loop cannot be spawned the wheel stays
// NotStarted and the error is returned.
func (tw *TimeWheel) Start() error {
	g := tw.mu.ScopedLock()
	defer g.Unlock()

	switch tw.State() {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrStopped
	}
	if tw.executor == nil {
		return ErrNotInitialized
	}
	if len(tw.workers) == 0 {
		tw.log.Debugw("no workers registered, scheduling loop not started")
		return nil
	}

	// the loop owns the heap once spawned
	n := len(tw.workers)
	ctx, cancel := context.WithCancel(context.Background())
	tw.done.Init(false)
	tw.running.Store(true)

	spawn := func() (struct{}, error) {
		err := tw.executor.Execute(func(exCtx context.Context) {
			if exCtx.Err() != nil {
				// executor closed before the loop got a goroutine
				cancel()
				tw.done.Satisfy()
				return
			}
			stop := context.AfterFunc(exCtx, cancel)
			defer stop()
			tw.loop(ctx)
		})
		if err != nil && !errors.Is(err, executor.ErrQueueFull) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	if _, err := backoff.Retry(ctx, spawn, backoff.WithBackOff(tw.newBackOff()), backoff.WithMaxTries(tw.spawnTries)); err != nil {
		cancel()
		tw.running.Store(false)
		tw.log.Errorw("failed to spawn scheduling loop", "executor", tw.executor.Name(), "error", err)
		return fmt.Errorf("failed to spawn scheduling loop on %q: %w", tw.executor.Name(), err)
	}

	tw.cancel = cancel
	tw.state.Store(int32(StateRunning))
	tw.log.Infow("time wheel started", "executor", tw.executor.Name(), "workers", n)
	return nil
}

// Shutdown stops the scheduling loop, waits for it to return and drops every
// worker. It is safe to call more than once and on a wheel never started.
func (tw *TimeWheel) Shutdown() {
	g := tw.mu.ScopedLock()
	defer g.Unlock()

	switch tw.State() {
	case StateStopped:
		return
	case StateRunning:
		tw.running.Store(false)
		tw.cancel()
		tw.done.Wait()
	}

	tw.workers = nil
	tw.live.Store(0)
	tw.state.Store(int32(StateStopped))
	tw.log.Infow("time wheel stopped")
}

// Stats returns a snapshot of per-worker statistics in registration order.
func (tw *TimeWheel) Stats() []WorkerStats {
	tw.statsMu.Lock()
	defer tw.statsMu.Unlock()

	out := make([]WorkerStats, len(tw.stats))
	copy(out, tw.stats)
	return out
}

func (tw *TimeWheel) loop(ctx context.Context) {
	defer tw.done.Satisfy()

	tw.resetWorkerTime()

	for tw.running.Load() {
		if len(tw.workers) == 0 {
			<-ctx.Done()
			return
		}

		now := tw.clock.Now()
		head := tw.workers[0]
		if !head.w.IsExpired(now) {
			if err := tw.clock.SleepUntil(ctx, head.w.NextWake()); err != nil {
				return
			}
			continue
		}

		heap.Pop(&tw.workers)
		scheduled := head.w.NextWake()
		head.w.UpdateWorkerTime(now)
		tw.run(ctx, head, scheduled)

		if head.w.Period() > 0 {
			heap.Push(&tw.workers, head)
			continue
		}
		tw.live.Add(-1)
		tw.updateStats(head.seq, func(s *WorkerStats) { s.Retired = true })
		tw.log.Debugw("one-shot worker retired", "worker", head.w.Name())
	}
}

// resetWorkerTime gives every worker the same epoch.
func (tw *TimeWheel) resetWorkerTime() {
	now := tw.clock.Now()
	entries := make([]entry, 0, len(tw.workers))
	for len(tw.workers) > 0 {
		entries = append(entries, heap.Pop(&tw.workers).(entry))
	}
	for _, e := range entries {
		e.w.ResetWakeTime(now)
		heap.Push(&tw.workers, e)
	}
}

func (tw *TimeWheel) run(ctx context.Context, e entry, scheduled time.Time) {
	started := tw.clock.Now()
	panicked := func() (panicked bool) {
		defer func() {
			if rec := recover(); rec != nil {
				panicked = true
				tw.log.Errorw("worker panicked", "worker", e.w.Name(), "error", fmt.Errorf("%v", rec))
			}
		}()
		e.w.Run(ctx)
		return false
	}()

	rec := RunRecord{
		Wheel:     tw.name,
		Worker:    e.w.Name(),
		Scheduled: scheduled,
		Started:   started,
		Duration:  tw.clock.Now().Sub(started),
		Panicked:  panicked,
	}
	tw.updateStats(e.seq, func(s *WorkerStats) {
		s.Runs++
		if panicked {
			s.Panics++
		}
		s.LastRun = rec.Started
		s.LastDuration = rec.Duration
		s.NextWake = e.w.NextWake()
	})
	if tw.observer != nil {
		tw.observer(rec)
	}
}

func (tw *TimeWheel) updateStats(seq int, fn func(*WorkerStats)) {
	tw.statsMu.Lock()
	defer tw.statsMu.Unlock()
	fn(&tw.stats[seq])
}
