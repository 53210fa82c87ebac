// Package services implements the business logic layer between the HTTP
// handlers and CLI on one side and the pipeline orchestration on the other.
//
// FeatureService turns period documents into a feature table. It loads the
// documents into tables, runs the operations manager with the request's
// policies layered over the configured defaults, and returns the table with
// row accounting and per-step states.
//
// HealthService reports liveness, version and uptime.
package services
