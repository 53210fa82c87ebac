package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"boxscorecli/internal/config"
	"boxscorecli/internal/dataprocessing"
	"boxscorecli/internal/infrastructure"
	"boxscorecli/internal/operations"
	api "boxscorecli/pkg/contracts/api/v1"
	"boxscorecli/pkg/contracts/domain"
)

// FeatureService builds feature tables from period documents by running the
// operation manager
type FeatureService struct {
	manager  *operations.Manager
	defaults dataprocessing.Options
	logger   *slog.Logger
}

// FeatureResult is a finished pipeline run
type FeatureResult struct {
	ID       string
	Table    *dataprocessing.Table
	Stats    domain.FeatureStats
	Steps    []api.StepSummary
	Duration time.Duration
}

// NewFeatureService creates a feature service. Requests that leave a policy
// empty use defaults.
func NewFeatureService(manager *operations.Manager, defaults dataprocessing.Options, logger *slog.Logger) *FeatureService {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = operations.NewManager(nil, nil, nil, logger)
	}
	return &FeatureService{
		manager:  manager,
		defaults: defaults,
		logger:   infrastructure.WithComponent(logger, "feature_service"),
	}
}

// OptionsFromConfig returns the pipeline options configured for the process
func OptionsFromConfig(cfg config.PipelineConfig) dataprocessing.Options {
	return dataprocessing.Options{
		Pairing:  cfg.Pairing,
		HomeFlag: cfg.HomeFlag,
		Profile:  cfg.Profile,
	}
}

// Options overlays the non-empty request policies onto the service defaults
func (s *FeatureService) Options(pairing, homeFlag, profile string) dataprocessing.Options {
	opts := s.defaults
	if pairing != "" {
		opts.Pairing = domain.PairingMode(pairing)
	}
	if homeFlag != "" {
		opts.HomeFlag = domain.HomeFlagMode(homeFlag)
	}
	if profile != "" {
		opts.Profile = domain.OutputProfile(profile)
	}
	return opts
}

// BuildFeatures loads the request documents and runs the pipeline on them
func (s *FeatureService) BuildFeatures(ctx context.Context, req *api.FeatureRequest) (*FeatureResult, error) {
	if req == nil || req.Half == nil || req.ThirdQuarter == nil {
		return nil, ErrMissingDocument
	}

	half, q3, err := dataprocessing.LoadTables(req.Half, req.ThirdQuarter)
	if err != nil {
		s.logger.WarnContext(ctx, "documents_rejected", slog.String("error", err.Error()))
		return nil, err
	}

	return s.Run(ctx, half, q3, s.Options(req.Pairing, req.HomeFlag, req.Profile))
}

// BuildFromFiles reads the two period files concurrently and runs the pipeline
func (s *FeatureService) BuildFromFiles(ctx context.Context, halfPath, q3Path string, opts dataprocessing.Options) (*FeatureResult, error) {
	s.logger.InfoContext(ctx, "loading_documents",
		slog.String("half", halfPath),
		slog.String("third_quarter", q3Path))

	half, q3, err := dataprocessing.LoadFiles(ctx, halfPath, q3Path)
	if err != nil {
		return nil, err
	}

	return s.Run(ctx, half, q3, opts)
}

// Run executes the pipeline on loaded tables. On failure the returned result
// still carries the step states so callers can report how far the run got.
func (s *FeatureService) Run(ctx context.Context, half, q3 *dataprocessing.Table, opts dataprocessing.Options) (*FeatureResult, error) {
	resp, err := s.manager.Execute(ctx, operations.OperationRequest{
		Half:         half,
		ThirdQuarter: q3,
		Options:      opts,
	})

	var result *FeatureResult
	if resp != nil {
		result = &FeatureResult{
			ID:       resp.ID,
			Table:    resp.Table,
			Stats:    resp.Stats,
			Steps:    summarize(resp.Steps),
			Duration: resp.Duration,
		}
	}

	if err != nil {
		return result, fmt.Errorf("feature pipeline failed: %w", err)
	}

	s.logger.InfoContext(ctx, "features_built",
		slog.String("operation_id", result.ID),
		slog.Int("output_rows", result.Stats.OutputRows),
		slog.Int("output_columns", result.Stats.OutputColumns),
		slog.Duration("duration", result.Duration))

	return result, nil
}

// Response converts a result into the API wire form
func (r *FeatureResult) Response() *api.FeatureResponse {
	features := dataprocessing.Features(r.Table)
	return &api.FeatureResponse{
		ID:      r.ID,
		Headers: features.Headers,
		Rows:    features.Rows,
		Stats:   r.Stats,
		Steps:   r.Steps,
	}
}

// FailedStep returns the id of the step that failed, empty when none did
func (r *FeatureResult) FailedStep() string {
	if r == nil {
		return ""
	}
	for _, s := range r.Steps {
		if s.Status == string(operations.StepStatusFailed) {
			return s.ID
		}
	}
	return ""
}

func summarize(steps []*operations.StepState) []api.StepSummary {
	out := make([]api.StepSummary, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Summary())
	}
	return out
}
