// Package timewheel schedules periodic workers by absolute wake time.
//
// A TimeWheel owns a min-heap of Workers ordered by NextWake (earliest first,
// registration order on ties) and runs a single scheduling loop as a task on
// an executor.Executor. Workers of one wheel never run concurrently with each
// other.
//
// # Lifecycle
//
//	          Init(ex) + AddWorker(w)...
//	               │
//	               ▼
//	┌──────────────────────┐  Start()   ┌──────────┐  Shutdown()  ┌─────────┐
//	│      NotStarted      │ ─────────► │ Running  │ ───────────► │ Stopped │
//	└──────────────────────┘            └──────────┘              └─────────┘
//	   │   ▲                                                         ▲
//	   │   └── Start() with no workers, or spawn failure             │
//	   └─────────────────────── Shutdown() ──────────────────────────┘
//
// Stopped is terminal: the wheel cannot be restarted.
//
// # Scheduling Loop
//
//  1. Every worker's wake time is reset to the same "now".
//  2. The head of the heap is inspected:
//     - expired: pop it, UpdateWorkerTime(now), Run, push it back
//       (workers with a zero period are retired instead)
//     - not expired: sleep until its absolute NextWake
//  3. Repeat until Shutdown.
//
// Sleeping to an absolute deadline keeps the cadence anchored: the time spent
// running workers and managing the heap does not shift later runs.
//
// # Missed Deadlines
//
// When a run takes longer than a period the worker is not run again to catch
// up. BaseWorker.UpdateWorkerTime moves it to one period after the current
// time:
//
//	period 10ms, next wake 100ms, now 137ms
//	naive advance: 110ms (already past) ──► resync: 147ms
//
// # Usage Example
//
//	pool := executor.NewPool("timer", 1)
//	defer pool.Close()
//
//	tw := timewheel.New(timewheel.WithName("heartbeats"))
//	tw.Init(pool)
//	_ = tw.AddWorker(timewheel.NewFuncWorker("ping", 10*time.Millisecond, func(ctx context.Context) {
//	    ...
//	}))
//	if err := tw.Start(); err != nil {
//	    ...
//	}
//	defer tw.Shutdown()
//
// Custom workers embed *BaseWorker and implement Run:
//
//	type flusher struct {
//	    *timewheel.BaseWorker
//	    buf *Buffer
//	}
//
//	func (f *flusher) Run(ctx context.Context) { f.buf.Flush(ctx) }
package timewheel
