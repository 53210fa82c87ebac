// Package api contains API contract definitions for the box-score feature
// service. Version v1 represents the current stable API version.
package api

import (
	"errors"
	"net/http"

	"boxscorecli/pkg/contracts/domain"
)

// FeatureRequest is the body of POST /api/v1/features. Empty policy fields
// fall back to the server configuration.
type FeatureRequest struct {
	Half         *domain.Document `json:"half" validate:"required"`
	ThirdQuarter *domain.Document `json:"third_quarter" validate:"required"`
	Pairing      string           `json:"pairing,omitempty" validate:"omitempty,oneof=strict lenient"`
	HomeFlag     string           `json:"home_flag,omitempty" validate:"omitempty,oneof=strict lenient"`
	Profile      string           `json:"profile,omitempty" validate:"omitempty,oneof=full model"`
}

// Bind implements the render.Binder interface. Field rules are checked by the
// validator; Bind only rejects documents without result sets.
func (r *FeatureRequest) Bind(req *http.Request) error {
	if r.Half != nil && len(r.Half.ResultSets) == 0 {
		return errors.New("half: document has no result sets")
	}
	if r.ThirdQuarter != nil && len(r.ThirdQuarter.ResultSets) == 0 {
		return errors.New("third_quarter: document has no result sets")
	}
	return nil
}
