package http

import (
	"context"

	"boxscorecli/internal/services"
	api "boxscorecli/pkg/contracts/api/v1"
)

// FeatureServiceInterface defines the feature pipeline operations the HTTP
// layer depends on
type FeatureServiceInterface interface {
	BuildFeatures(ctx context.Context, req *api.FeatureRequest) (*services.FeatureResult, error)
}

// Ensure FeatureService implements FeatureServiceInterface
var _ FeatureServiceInterface = (*services.FeatureService)(nil)
