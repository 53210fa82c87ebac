package operations

import (
	"context"
	"log/slog"
	"time"

	"boxscorecli/internal/dataprocessing"
	"boxscorecli/pkg/contracts/domain"
)

func (m *Manager) logOperationStart(ctx context.Context, operationID string, opts dataprocessing.Options, stepCount int) {
	m.logger.InfoContext(ctx, "operation_start",
		slog.String("operation_id", operationID),
		slog.String("pairing", string(opts.Pairing)),
		slog.String("home_flag", string(opts.HomeFlag)),
		slog.String("profile", string(opts.Profile)),
		slog.Int("step_count", stepCount))
}

func (m *Manager) logOperationComplete(ctx context.Context, operationID string, duration time.Duration, status OperationStatusValue, stats domain.FeatureStats) {
	m.logger.InfoContext(ctx, "operation_complete",
		slog.String("operation_id", operationID),
		slog.String("status", string(status)),
		slog.Duration("duration", duration),
		slog.Int("output_rows", stats.OutputRows),
		slog.Int("output_columns", stats.OutputColumns))
}

func (m *Manager) logOperationError(ctx context.Context, operationID string, err error) {
	m.logger.ErrorContext(ctx, "operation_error",
		slog.String("operation_id", operationID),
		slog.String("step", FailedStep(err)),
		slog.String("error", errString(err)))
}

func (m *Manager) logStageStart(ctx context.Context, operationID, stepID string) {
	m.logger.DebugContext(ctx, "stage_start",
		slog.String("operation_id", operationID),
		slog.String("step", stepID))
}

func (m *Manager) logStageComplete(ctx context.Context, operationID, stepID string, duration time.Duration, rows int) {
	m.logger.InfoContext(ctx, "stage_completed",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.Int("rows", rows),
		slog.Duration("duration", duration))
}

func (m *Manager) logStageError(ctx context.Context, operationID, stepID string, err error) {
	m.logger.ErrorContext(ctx, "stage_error",
		slog.String("operation_id", operationID),
		slog.String("step", stepID),
		slog.String("error", errString(err)))
}
