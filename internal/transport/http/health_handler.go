package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"boxscorecli/internal/services"
	"boxscorecli/pkg/contracts"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, h.service.HealthCheck(r.Context()))
}

// Runtime handles GET /api/health/runtime
func (h *HealthHandler) Runtime(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Runtime())
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}
