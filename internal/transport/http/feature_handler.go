package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apierrors "boxscorecli/internal/errors"
	"boxscorecli/internal/infrastructure"
	"boxscorecli/internal/middleware"
	api "boxscorecli/pkg/contracts/api/v1"
)

// FeatureHandler handles feature table requests
type FeatureHandler struct {
	service      FeatureServiceInterface
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewFeatureHandler creates a new feature handler
func NewFeatureHandler(service FeatureServiceInterface, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *FeatureHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if validator == nil {
		validator = middleware.NewValidator(0, logger)
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}

	return &FeatureHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "features")),
	}
}

// Routes returns a chi router for feature endpoints
func (h *FeatureHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.BuildFeatures)
	return r
}

// BuildFeatures handles POST /api/v1/features
func (h *FeatureHandler) BuildFeatures(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	ctx, span := otel.Tracer("feature-handler").Start(r.Context(), "feature_handler.build_features",
		trace.WithAttributes(
			attribute.String("request_id", reqID),
			attribute.String("component", "feature_handler"),
		),
	)
	defer span.End()
	r = r.WithContext(ctx)

	var req api.FeatureRequest
	if err := h.validator.Bind(w, r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "request_validation"))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	span.SetAttributes(
		attribute.String("pipeline.pairing", req.Pairing),
		attribute.String("pipeline.home_flag", req.HomeFlag),
		attribute.String("pipeline.profile", req.Profile),
	)

	result, err := h.service.BuildFeatures(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "feature pipeline failed")
		if step := result.FailedStep(); step != "" {
			span.SetAttributes(attribute.String("step.id", step))
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	span.SetAttributes(
		attribute.String("operation.id", result.ID),
		attribute.Int("operation.output_rows", result.Stats.OutputRows),
	)

	h.logger.InfoContext(ctx, "feature table served",
		slog.String("request_id", reqID),
		slog.String("trace_id", infrastructure.GetTraceID(ctx)),
		slog.String("operation_id", result.ID),
		slog.Int("rows", result.Stats.OutputRows),
	)

	render.Status(r, http.StatusOK)
	if err := render.Render(w, r, result.Response()); err != nil {
		h.logger.ErrorContext(ctx, "failed to render feature response", slog.String("error", err.Error()))
	}
}
