package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"boxscorecli/internal/dataprocessing"
	"boxscorecli/internal/infrastructure"
	"boxscorecli/pkg/contracts/domain"
)

const (
	TracerName = "boxscorecli.operation"
)

// OperationTracer provides OpenTelemetry instrumentation for pipeline runs
type OperationTracer struct {
	tracer          trace.Tracer
	businessMetrics *infrastructure.BusinessMetrics
}

// NewOperationTracer creates a tracer backed by the global tracer provider
// and business metrics on the providers' meter. Without a meter, metrics are
// not recorded.
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	var businessMetrics *infrastructure.BusinessMetrics
	if providers != nil && providers.Meter != nil {
		var err error
		businessMetrics, err = infrastructure.CreateBusinessMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create business metrics: %w", err)
		}
	}

	return NewOperationTracerWith(otel.Tracer(TracerName), businessMetrics), nil
}

// NewOperationTracerWith creates a tracer from explicit collaborators
func NewOperationTracerWith(tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) *OperationTracer {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &OperationTracer{tracer: tracer, businessMetrics: metrics}
}

// Metrics returns the business metrics, nil when metrics are disabled
func (pt *OperationTracer) Metrics() *infrastructure.BusinessMetrics {
	return pt.businessMetrics
}

// TraceOperationExecution creates a span for the entire operation execution
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, opts dataprocessing.Options) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "operation.execute."+OperationTypeFeatureBuild,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("operation.pairing", string(opts.Pairing)),
			attribute.String("operation.home_flag", string(opts.HomeFlag)),
			attribute.String("operation.profile", string(opts.Profile)),
		),
	)

	infrastructure.RecordActiveOperationChange(ctx, pt.businessMetrics, 1, OperationTypeFeatureBuild)
	return ctx, span
}

// TraceStageExecution creates a span for individual Step execution
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.step."+stepID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStageCompletion records Step completion on its span and in metrics
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, rows int, err error) {
	span.SetAttributes(
		attribute.Float64("step.duration_seconds", duration.Seconds()),
		attribute.Int("step.rows", rows),
	)

	infrastructure.RecordOperationStepMetrics(ctx, pt.businessMetrics, stepID, duration, err == nil)

	if err != nil {
		infrastructure.RecordError(ctx, err, trace.WithAttributes(attribute.String("step.id", stepID)))
		return
	}
	span.SetStatus(codes.Ok, "step completed")
}

// RecordOperationCompletion records the run outcome with metrics and span events
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, status OperationStatusValue, duration time.Duration, stats domain.FeatureStats, err error) {
	span.SetAttributes(
		attribute.String("operation.status", string(status)),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
		attribute.Int("operation.output_rows", stats.OutputRows),
		attribute.Int("operation.incomplete_rows_dropped", stats.IncompleteRowsDropped),
		attribute.StringSlice("operation.unpaired_games", stats.UnpairedGamesDropped),
	)

	infrastructure.RecordActiveOperationChange(ctx, pt.businessMetrics, -1, OperationTypeFeatureBuild)
	infrastructure.RecordOperationMetrics(ctx, pt.businessMetrics, OperationTypeFeatureBuild, duration, err)

	switch status {
	case OperationStatusCompleted:
		infrastructure.RecordPipelineStats(ctx, pt.businessMetrics, stats)
		infrastructure.AddSpanEvent(ctx, "operation.completed", map[string]interface{}{
			"output_rows":    stats.OutputRows,
			"output_columns": stats.OutputColumns,
		})
		span.SetStatus(codes.Ok, "operation completed")
	case OperationStatusCancelled:
		infrastructure.RecordOperationCancellation(ctx, pt.businessMetrics, OperationTypeFeatureBuild, errString(err))
		span.SetStatus(codes.Error, "operation cancelled")
	default:
		infrastructure.RecordError(ctx, err, trace.WithAttributes(attribute.String("step.id", FailedStep(err))))
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
