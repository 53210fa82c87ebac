package api

import (
	"net/http"
	"time"

	"boxscorecli/pkg/contracts/domain"
)

// StepSummary reports one pipeline stage of a run
type StepSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Rows       int     `json:"rows"`
	DurationMS float64 `json:"duration_ms"`
	Message    string  `json:"message,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// FeatureResponse is the result of POST /api/v1/features. Undefined feature
// values are null.
type FeatureResponse struct {
	ID      string              `json:"id"`
	Headers []string            `json:"headers"`
	Rows    [][]interface{}     `json:"rows"`
	Stats   domain.FeatureStats `json:"stats"`
	Steps   []StepSummary       `json:"steps"`
}

// Render implements the render.Renderer interface
func (r *FeatureResponse) Render(w http.ResponseWriter, req *http.Request) error {
	return nil
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Uptime        string    `json:"uptime"`
}

// Render implements the render.Renderer interface
func (r *HealthResponse) Render(w http.ResponseWriter, req *http.Request) error {
	return nil
}
