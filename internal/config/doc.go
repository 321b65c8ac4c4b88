// Package config defines the configuration structure for tidewire.
//
// Configuration is organized into logical sections (Server, Store, Executors,
// TimeWheel, Journal). Defaults come from struct tags applied with
// creasty/defaults; values are read with viper from an optional YAML file,
// TIDEWIRE_ environment variables and command line flags.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - status API settings
//	├── Store          - run journal database
//	├── Executors      - named goroutine pools
//	├── TimeWheel      - the wheel and its workers
//	├── Journal        - run journal behaviour
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Precedence
//
//	flag (when set) > TIDEWIRE_* env > config file > flag default > struct tag default
//
// Environment variable names are the key upper-cased with "." and "-"
// replaced by "_": server.http-port → TIDEWIRE_SERVER_HTTP_PORT.
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ Enabled          │ true    │ Serve the status API                   │
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Executors
//
//	┌───────────┬─────────┬─────────────────────────────────────────────┐
//	│ Field     │ Default │ Description                                 │
//	├───────────┼─────────┼─────────────────────────────────────────────┤
//	│ Name      │         │ Unique name, referenced by other sections   │
//	│ Workers   │ 1       │ Goroutines in the pool                      │
//	│ QueueSize │ 0       │ Pending task limit, 0 is unbounded          │
//	└───────────┴─────────┴─────────────────────────────────────────────┘
//
// Without an executors section two pools are created: "wheel" (1 worker)
// hosting the scheduling loop and "journal" (2 workers, queue 1024) writing
// run records.
//
// # TimeWheel
//
//	┌──────────┬───────────┬──────────────────────────────────────────┐
//	│ Field    │ Default   │ Description                              │
//	├──────────┼───────────┼──────────────────────────────────────────┤
//	│ Name     │ "main"    │ Wheel name, recorded in the journal      │
//	│ Executor │ "wheel"   │ Executor hosting the scheduling loop     │
//	│ Workers  │ heartbeat │ Periodic workers                         │
//	└──────────┴───────────┴──────────────────────────────────────────┘
//
// Worker kinds:
//   - heartbeat: logs a debug line on every run
//   - sleep: keeps busy for Work on every run (load simulation)
//   - prune: deletes journal entries older than Journal.Retention
//
// A worker with period 0 runs once.
//
// # Journal
//
//	┌───────────┬───────────┬─────────────────────────────────────────┐
//	│ Field     │ Default   │ Description                             │
//	├───────────┼───────────┼─────────────────────────────────────────┤
//	│ Enabled   │ true      │ Record every run in the store           │
//	│ Executor  │ "journal" │ Executor writing the records            │
//	│ Retention │ 24h       │ Age after which prune workers drop runs │
//	└───────────┴───────────┴─────────────────────────────────────────┘
//
// # Example
//
//	log-level: debug
//	executors:
//	  - name: wheel
//	  - name: journal
//	    workers: 2
//	timewheel:
//	  workers:
//	    - name: fast
//	      period: 10ms
//	    - name: janitor
//	      kind: prune
//	      period: 1h
//
// # Usage
//
//	v := viper.New()
//	config.RegisterFlags(cmd.Flags())
//	_ = config.BindFlags(v, cmd.Flags())
//	cfg, err := config.Load(v)
//
// Load validates the result; errors are InvalidConfigurationError naming
// the offending field.
package config
