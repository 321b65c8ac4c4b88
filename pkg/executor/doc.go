// Package executor provides the execution contexts that runtime components run on.
//
// An Executor is an opaque handle: components such as the time wheel hand it a
// Task or a Work function and never see how the executor schedules it. The
// package ships one implementation, Pool, and a Manager holding the named
// executors of a process.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                              Pool                                   │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 1   │      │   Worker 2   │      │   Worker N   │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                        ┌──────┴──────┐                              │
//	│                        │  dispatch() │                              │
//	│                        └──────┬──────┘                              │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                      Work Queue                         │        │
//	│  │  [task1] [work2] [task3] ...                            │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                 Execute(task) │ Submit(work)                        │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Execute and Submit
//
//	┌──────────────┬───────────────────────────┬───────────────────────────┐
//	│ Call         │ Returns                   │ Failure                   │
//	├──────────────┼───────────────────────────┼───────────────────────────┤
//	│ Execute(t)   │ error, synchronously      │ ErrExecutorClosed,        │
//	│              │                           │ ErrQueueFull              │
//	│ Submit(w)    │ *Future[Result[any]]      │ same errors, delivered    │
//	│              │                           │ through the future        │
//	└──────────────┴───────────────────────────┴───────────────────────────┘
//
// Execute is used to spawn long-lived tasks such as a scheduling loop, where
// the caller needs to know immediately whether the spawn happened. Submit is
// used for request/response work:
//
//	future := pool.Submit(func(ctx context.Context) (any, error) {
//	    return store.Insert(ctx, record), nil
//	})
//	result := <-future.C()
//
// # Queue Limit
//
// WithQueueSize(n) bounds the number of accepted tasks that have not reached a
// worker yet. Past the limit, Execute and Submit fail with ErrQueueFull
// instead of growing the queue; callers are expected to back off and retry.
//
// # Panic Recovery
//
// Workers recover from panics. A panicking Submit work resolves its future with
// an error; a panicking Execute task is logged. Either way the worker returns
// to the pool.
//
// # Cancellation
//
// Every task receives a context derived from the pool context:
//   - future.Stop() cancels one Submit work
//   - pool.Close() cancels all of them
//
// # Graceful Shutdown
//
// Close() cancels the pool context, waits for in-flight tasks to return,
// resolves queued Submit work that never started with ErrExecutorClosed and
// stops the dispatch loop. A Task accepted by Execute always runs: if it was
// still queued it is called once from Close with the cancelled context, so it
// can release whatever it guards. It is idempotent. Long-running tasks must watch ctx.Done() or
// Close will wait for them.
//
// # Manager
//
//	mgr := executor.NewManager()
//	_ = mgr.Register(executor.NewPool("timer", 1))
//	_ = mgr.Register(executor.NewPool("io", 4, executor.WithQueueSize(1024)))
//
//	ex, err := mgr.Get("timer")   // ExecutorNotFoundError if missing
//	defer mgr.Close()
package executor
