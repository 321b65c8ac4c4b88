// Package services implements the business logic layer for tidewire.
//
// Services sit between the HTTP handlers and the runtime pieces (executors,
// time wheel, store). Each service owns its state and is safe for
// concurrent use.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── Runtime ──► executor.Manager, timewheel.TimeWheel
//	    └── Journal ──► store.RunStore, journal executor
//
//	TimeWheel ──(RunObserver)──► Journal.Observe ──(Execute)──► RunStore.Insert
//
// # Runtime
//
// Runtime owns the named executors and the time wheel.
//
//	mgr, err := services.NewExecutorManager(cfg.Executors)
//	rt := services.NewRuntime(mgr, timewheel.WithName(cfg.TimeWheel.Name))
//	workers, err := services.BuildWorkers(cfg.TimeWheel.Workers, journal, cfg.Journal.Retention)
//	err = rt.Start(cfg.TimeWheel.Executor, workers)
//	...
//	rt.Stop() // wheel shutdown, then every executor closed
//
// Start with no workers leaves the wheel NotStarted; that is not an error.
// Workers(), Worker(name), Executors() and Wheel() return status snapshots
// for the API; Worker returns WorkerNotFoundError for an unknown name.
//
// # Journal
//
// Journal is plugged into the wheel as its RunObserver. Observe runs on the
// scheduling loop, so it only builds the record and hands the insert to the
// journal executor. If that executor refuses the task (queue full or closed)
// the record is dropped, counted and logged; the loop is never slowed down
// by the database.
//
// Reads (List, Get, Summary) go straight to the store. Prune deletes old
// records and is driven by prune workers.
//
// # Worker kinds
//
//	┌───────────┬──────────────────────────────────────────────────────┐
//	│ Kind      │ Run                                                  │
//	├───────────┼──────────────────────────────────────────────────────┤
//	│ heartbeat │ debug log line with a beat counter                   │
//	│ sleep     │ busy for the configured work duration, or until ctx  │
//	│ prune     │ Journal.Prune(now - retention)                       │
//	└───────────┴──────────────────────────────────────────────────────┘
//
// Every kind embeds *timewheel.BaseWorker and only adds Run.
//
// # Simulate
//
// Simulate predicts the firing sequence of a worker table by running a real
// time wheel against a fake clock, jumping the clock from one wake time to
// the next until the horizon. It backs the "tidewire schedule" command.
package services
