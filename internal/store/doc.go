// Package store implements the data access layer for tidewire.
//
// This package persists the run journal in DuckDB. Queries with optional
// filters are built with squirrel; fixed statements live in queries.go.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                           RunStore                              │
//	│                              ▼                                  │
//	│                            runs                                 │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Data Sources
//
// Tables created by LOCAL MIGRATIONS (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  runs              │  One row per worker run (journal)           │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Initialization Flow
//
//	db, err := store.NewDB(cfg.Store.Path)   // ":memory:" for tests
//	err = migrations.Run(ctx, db)            // creates runs, indexes
//	s := store.NewStore(db)
//
// # RunStore
//
// Schema:
//
//	runs (
//	    id VARCHAR PRIMARY KEY,          -- uuid
//	    wheel VARCHAR NOT NULL,
//	    worker VARCHAR NOT NULL,
//	    scheduled_at TIMESTAMP NOT NULL, -- wake time the run was due at
//	    started_at TIMESTAMP NOT NULL,
//	    duration_ns BIGINT NOT NULL,
//	    panicked BOOLEAN NOT NULL,
//	    created_at TIMESTAMP
//	)
//
// Methods:
//   - Insert(ctx, run) → error
//   - Get(ctx, id) → *models.Run (RunNotFoundError when missing)
//   - List(ctx, opts...) → []models.Run, newest first
//   - Count(ctx, opts...) → int
//   - Summary(ctx, opts...) → []models.RunSummary, one per worker
//   - DeleteBefore(ctx, t) → rows removed (journal retention)
//
// List Options:
//
// List, Count and Summary use the functional options pattern. Each
// ListOption is a function that modifies the SQL query builder:
//
//	runs, err := s.Runs().List(ctx,
//	    store.ByWorkers("heartbeat", "prune"),
//	    store.ByPanicked(true),
//	    store.WithLimit(50),
//	    store.WithOffset(0),
//	)
//
// Filtering Options:
//
//   - ByWorkers(workers ...string)
//     SQL: WHERE worker IN (...)
//
//   - ByWheel(wheel string)
//     SQL: WHERE wheel = ?
//
//   - ByPanicked(panicked bool)
//     SQL: WHERE panicked = ?
//
//   - ByStartedRange(from, to time.Time)
//     Range is [from, to); a zero bound is left open.
//
// Pagination Options:
//
//   - WithLimit(limit uint64)
//   - WithOffset(offset uint64)
//
// Pagination options must not be passed to Count.
//
// # Thread Safety
//
// Stores hold a *sql.DB and are safe for concurrent use. The run journal is
// written from the journal executor while the HTTP handlers read it.
package store
