// Package http implements the HTTP handlers of the feature server.
//
// FeatureHandler accepts POST /api/v1/features with the two period documents
// and the pipeline policies, runs the feature service and responds with the
// feature table, row accounting and per-step states. Failures are rendered as
// RFC 7807 problems whose extensions name the failing stage and, where known,
// the column or game id.
//
// HealthHandler serves liveness and version information; MetricsHandler
// exposes the Prometheus registry fed by the OTel meter provider.
package http
