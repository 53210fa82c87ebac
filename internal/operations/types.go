package operations

import (
	"time"

	"boxscorecli/internal/dataprocessing"
	"boxscorecli/pkg/contracts/domain"
)

// OperationTypeFeatureBuild labels feature pipeline runs in logs and metrics
const OperationTypeFeatureBuild = "feature_build"

// Step identifiers. They match the stage names carried by pipeline errors.
const (
	StepIDPrune          = dataprocessing.StagePrune
	StepIDTag            = dataprocessing.StageTag
	StepIDMerge          = dataprocessing.StageMerge
	StepIDCombine        = dataprocessing.StageCombine
	StepIDHomeFlag       = dataprocessing.StageHomeFlag
	StepIDDropIncomplete = dataprocessing.StageDropIncomplete
	StepIDOpponents      = dataprocessing.StageOpponents
	StepIDFourFactors    = dataprocessing.StageFourFactors
	StepIDFinalFilter    = dataprocessing.StageFinalFilter
)

// Step names
const (
	StepNamePrune          = "Column Pruning"
	StepNameTag            = "Period Tagging"
	StepNameMerge          = "Period Merge"
	StepNameCombine        = "Stat Combination"
	StepNameHomeFlag       = "Home Flag"
	StepNameDropIncomplete = "Incomplete Row Filter"
	StepNameOpponents      = "Opponent Join"
	StepNameFourFactors    = "Four Factors"
	StepNameFinalFilter    = "Final Column Filter"
)

// Context keys for operation state
const (
	ContextKeyHalf         = "half_table"
	ContextKeyThirdQuarter = "third_quarter_table"
	ContextKeyTable        = "table"
)

// Config keys for operation state
const (
	ConfigKeyProcessor = "processor"
)

// Default timeouts
const (
	DefaultStepTimeout = 30 * time.Second
)

// OperationRequest represents a request to build one feature table
type OperationRequest struct {
	ID           string
	Half         *dataprocessing.Table
	ThirdQuarter *dataprocessing.Table
	Options      dataprocessing.Options
}

// OperationResponse represents the response from a operation execution
type OperationResponse struct {
	ID       string                `json:"id"`
	Status   OperationStatusValue  `json:"status"`
	Duration time.Duration         `json:"duration"`
	Steps    []*StepState          `json:"steps"`
	Stats    domain.FeatureStats   `json:"stats"`
	Table    *dataprocessing.Table `json:"-"`
	Error    string                `json:"error,omitempty"`
}
