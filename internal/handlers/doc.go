// Package handlers implements the HTTP API layer for tidewire.
//
// Handlers delegate to the services layer and focus on parameter parsing,
// response formatting and HTTP semantics. Every document they return is
// defined in api/v1.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│                    Runtime │ Journal                            │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
// Runtime Endpoints (status.go):
//
//	┌────────┬─────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint        │ Description                          │
//	├────────┼─────────────────┼──────────────────────────────────────┤
//	│ GET    │ /health         │ Wheel id, name, state, worker count  │
//	│ GET    │ /executors      │ Executors with size and queue depth  │
//	│ GET    │ /workers        │ Live statistics of every worker      │
//	│ GET    │ /workers/{name} │ Live statistics of one worker        │
//	└────────┴─────────────────┴──────────────────────────────────────┘
//
// Journal Endpoints (runs.go):
//
//	┌────────┬───────────────┬────────────────────────────────────────┐
//	│ Method │ Endpoint      │ Description                            │
//	├────────┼───────────────┼────────────────────────────────────────┤
//	│ GET    │ /runs         │ Journaled runs, newest first           │
//	│ GET    │ /runs/summary │ Count, panics, avg/max duration        │
//	│ GET    │ /runs/{id}    │ One journaled run                      │
//	└────────┴───────────────┴────────────────────────────────────────┘
//
// Query parameters of /runs:
//
//	worker    repeatable, keeps runs of these workers
//	wheel     keeps runs of this wheel
//	panicked  true or false
//	page      1-based page, default 1
//	pageSize  default 20, capped at 100
//
// # Error Handling
//
//	┌──────────────────────────┬──────────────┐
//	│ Condition                │ Status       │
//	├──────────────────────────┼──────────────┤
//	│ ResourceNotFoundError    │ 404          │
//	│ malformed id / panicked  │ 400          │
//	│ journal disabled         │ 503          │
//	│ anything else            │ 500 (logged) │
//	└──────────────────────────┴──────────────┘
//
// Error bodies are {"error": "..."}.
package handlers
