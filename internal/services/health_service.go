package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"boxscorecli/internal/operations"
	api "boxscorecli/pkg/contracts/api/v1"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	manager   *operations.Manager
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a new health service
func NewHealthService(version string, manager *operations.Manager, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized", slog.String("version", version))

	return &HealthService{
		version:   version,
		manager:   manager,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) *api.HealthResponse {
	uptime := time.Since(hs.startTime)

	hs.logger.DebugContext(ctx, "health check",
		slog.String("version", hs.version),
		slog.Duration("uptime", uptime))

	return &api.HealthResponse{
		Status:        "ok",
		Version:       hs.version,
		Timestamp:     time.Now(),
		UptimeSeconds: uptime.Seconds(),
		Uptime:        uptime.Round(time.Second).String(),
	}
}

// Runtime returns process details for diagnostics
func (hs *HealthService) Runtime() map[string]interface{} {
	active := 0
	if hs.manager != nil {
		active = len(hs.manager.ListOperations())
	}

	return map[string]interface{}{
		"version":           hs.version,
		"go_version":        runtime.Version(),
		"os":                runtime.GOOS,
		"arch":              runtime.GOARCH,
		"goroutines":        runtime.NumGoroutine(),
		"active_operations": active,
		"start_time":        hs.startTime.Format(time.RFC3339),
	}
}
