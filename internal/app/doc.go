// Package app wires the feature server together and manages its lifecycle.
//
// NewApplication loads the configuration, initializes logging and
// OpenTelemetry, builds the operation manager and services, and mounts the
// HTTP routes behind the standard middleware chain:
//
//	RequestID → RealIP → OTel → Logger → Recoverer → Timeout → SecurityHeaders → CORS → RateLimit
//
// Routes:
//
//	GET  /api/health           liveness and uptime
//	GET  /api/health/runtime   goroutines, memory and active operations
//	GET  /api/version          build information
//	POST /api/v1/features      build a feature table from HALF and 3Q documents
//	GET  /metrics              Prometheus exposition
//
// Run blocks until SIGINT or SIGTERM and then shuts the server and telemetry
// providers down gracefully.
package app
