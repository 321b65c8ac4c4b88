// Package server provides the HTTP server for the tidewire status API.
//
// The server uses the Gin web framework. It only serves JSON under /api/v1;
// every other path answers 404 with a JSON error.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	│                        HTTP :HTTPPort                         │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.Ginzap (request/response logging, RFC3339, UTC) │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery with stack)     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"): Gin runs in debug mode and prints
// its route table.
//
// Production Mode (ServerMode = "prod"): Gin runs in release mode.
//
// # Server Lifecycle
//
// Creation:
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    handlers.RegisterHandlers(router, h)
//	})
//
// Starting:
//
//	// Blocks until Stop or until ctx ends
//	err := srv.Start(ctx)
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Stop performs a graceful shutdown, waiting for in-flight requests to
// complete or for ctx to end. Cancelling the context given to Start stops
// the server the same way with a 5 second grace period.
//
// Both middlewares log through zap.L().Named("http"), so the server must be
// created after the global logger is installed.
package server
