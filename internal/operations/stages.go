package operations

import (
	"context"
	"fmt"
	"log/slog"

	"boxscorecli/internal/dataprocessing"
	"boxscorecli/pkg/contracts/domain"
)

// stepFunc runs one pipeline stage against the operation state and returns
// the number of rows it produced
type stepFunc func(ctx context.Context, p *dataprocessing.Processor, state *OperationState) (int, error)

// PipelineStep adapts one Processor stage to the Step interface. It reads its
// input tables from the state context and writes its output back.
type PipelineStep struct {
	BaseStep
	inputs []string
	run    stepFunc
	logger *slog.Logger
}

func newPipelineStep(id, name string, logger *slog.Logger, run stepFunc, inputs ...string) *PipelineStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PipelineStep{
		BaseStep: NewBaseStep(id, name),
		inputs:   inputs,
		run:      run,
		logger:   logger.With(slog.String("step", id)),
	}
}

// Validate checks that the input tables and the processor are present
func (s *PipelineStep) Validate(state *OperationState) error {
	if _, err := processorFrom(state); err != nil {
		return err
	}
	for _, key := range s.inputs {
		if _, err := tableFrom(state, key); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the stage and records the produced row count on the step state
func (s *PipelineStep) Execute(ctx context.Context, state *OperationState) error {
	p, err := processorFrom(state)
	if err != nil {
		return err
	}

	rows, err := s.run(ctx, p, state)
	if err != nil {
		return err
	}

	if st := state.GetStage(s.ID()); st != nil {
		st.SetRows(rows)
	}
	s.logger.DebugContext(ctx, "stage_output",
		slog.String("operation_id", state.ID),
		slog.Int("rows", rows))
	return nil
}

func processorFrom(state *OperationState) (*dataprocessing.Processor, error) {
	v, ok := state.GetConfig(ConfigKeyProcessor)
	if !ok {
		return nil, fmt.Errorf("no processor configured")
	}
	p, ok := v.(*dataprocessing.Processor)
	if !ok || p == nil {
		return nil, fmt.Errorf("processor has type %T", v)
	}
	return p, nil
}

func tableFrom(state *OperationState, key string) (*dataprocessing.Table, error) {
	v, ok := state.GetContext(key)
	if !ok {
		return nil, fmt.Errorf("missing %s in operation context", key)
	}
	t, ok := v.(*dataprocessing.Table)
	if !ok || t == nil {
		return nil, fmt.Errorf("%s has type %T", key, v)
	}
	return t, nil
}

// periodPair loads both period tables
func periodPair(state *OperationState) (*dataprocessing.Table, *dataprocessing.Table, error) {
	half, err := tableFrom(state, ContextKeyHalf)
	if err != nil {
		return nil, nil, err
	}
	q3, err := tableFrom(state, ContextKeyThirdQuarter)
	if err != nil {
		return nil, nil, err
	}
	return half, q3, nil
}

// tableStage lifts a single-table stage into a stepFunc
func tableStage(fn func(p *dataprocessing.Processor, t *dataprocessing.Table) (*dataprocessing.Table, error)) stepFunc {
	return func(_ context.Context, p *dataprocessing.Processor, state *OperationState) (int, error) {
		t, err := tableFrom(state, ContextKeyTable)
		if err != nil {
			return 0, err
		}
		out, err := fn(p, t)
		if err != nil {
			return 0, err
		}
		state.SetContext(ContextKeyTable, out)
		return out.Len(), nil
	}
}

// pairStage lifts a two-table stage into a stepFunc
func pairStage(fn func(p *dataprocessing.Processor, half, q3 *dataprocessing.Table) (*dataprocessing.Table, *dataprocessing.Table, error)) stepFunc {
	return func(_ context.Context, p *dataprocessing.Processor, state *OperationState) (int, error) {
		half, q3, err := periodPair(state)
		if err != nil {
			return 0, err
		}
		h, q, err := fn(p, half, q3)
		if err != nil {
			return 0, err
		}
		state.SetContext(ContextKeyHalf, h)
		state.SetContext(ContextKeyThirdQuarter, q)
		return h.Len() + q.Len(), nil
	}
}

// NewPruneStep drops rank and metadata columns from both period tables
func NewPruneStep(logger *slog.Logger) *PipelineStep {
	return newPipelineStep(StepIDPrune, StepNamePrune, logger,
		pairStage((*dataprocessing.Processor).Prune),
		ContextKeyHalf, ContextKeyThirdQuarter)
}

// NewTagStep prefixes period statistics with HALF_ and 3Q_
func NewTagStep(logger *slog.Logger) *PipelineStep {
	return newPipelineStep(StepIDTag, StepNameTag, logger,
		pairStage((*dataprocessing.Processor).Tag),
		ContextKeyHalf, ContextKeyThirdQuarter)
}

// NewMergeStep joins the two period tables into one
func NewMergeStep(logger *slog.Logger) *PipelineStep {
	run := func(_ context.Context, p *dataprocessing.Processor, state *OperationState) (int, error) {
		half, q3, err := periodPair(state)
		if err != nil {
			return 0, err
		}
		merged, err := p.Merge(half, q3)
		if err != nil {
			return 0, err
		}
		state.SetContext(ContextKeyTable, merged)
		state.UpdateStats(func(s *domain.FeatureStats) { s.MergedRows = merged.Len() })
		return merged.Len(), nil
	}
	return newPipelineStep(StepIDMerge, StepNameMerge, logger, run, ContextKeyHalf, ContextKeyThirdQuarter)
}

// NewCombineStep sums period statistics and recomputes percentages
func NewCombineStep(logger *slog.Logger) *PipelineStep {
	return newPipelineStep(StepIDCombine, StepNameCombine, logger,
		tableStage((*dataprocessing.Processor).Combine), ContextKeyTable)
}

// NewHomeFlagStep derives HOME from MATCHUP
func NewHomeFlagStep(logger *slog.Logger) *PipelineStep {
	return newPipelineStep(StepIDHomeFlag, StepNameHomeFlag, logger,
		tableStage((*dataprocessing.Processor).HomeFlag), ContextKeyTable)
}

// NewDropIncompleteStep removes rows with undefined cells and orders by game
func NewDropIncompleteStep(logger *slog.Logger) *PipelineStep {
	run := func(_ context.Context, p *dataprocessing.Processor, state *OperationState) (int, error) {
		t, err := tableFrom(state, ContextKeyTable)
		if err != nil {
			return 0, err
		}
		out, dropped, err := p.DropIncomplete(t)
		if err != nil {
			return 0, err
		}
		state.SetContext(ContextKeyTable, out)
		state.UpdateStats(func(s *domain.FeatureStats) { s.IncompleteRowsDropped = dropped })
		return out.Len(), nil
	}
	return newPipelineStep(StepIDDropIncomplete, StepNameDropIncomplete, logger, run, ContextKeyTable)
}

// NewOpponentsStep attaches each team's opponent statistics
func NewOpponentsStep(logger *slog.Logger) *PipelineStep {
	run := func(_ context.Context, p *dataprocessing.Processor, state *OperationState) (int, error) {
		t, err := tableFrom(state, ContextKeyTable)
		if err != nil {
			return 0, err
		}
		out, unpaired, err := p.Opponents(t)
		if err != nil {
			return 0, err
		}
		state.SetContext(ContextKeyTable, out)
		state.UpdateStats(func(s *domain.FeatureStats) { s.UnpairedGamesDropped = unpaired })
		return out.Len(), nil
	}
	return newPipelineStep(StepIDOpponents, StepNameOpponents, logger, run, ContextKeyTable)
}

// NewFourFactorsStep adds the four-factor ratios
func NewFourFactorsStep(logger *slog.Logger) *PipelineStep {
	return newPipelineStep(StepIDFourFactors, StepNameFourFactors, logger,
		tableStage((*dataprocessing.Processor).FourFactors), ContextKeyTable)
}

// NewFinalFilterStep applies the output profile
func NewFinalFilterStep(logger *slog.Logger) *PipelineStep {
	run := func(_ context.Context, p *dataprocessing.Processor, state *OperationState) (int, error) {
		t, err := tableFrom(state, ContextKeyTable)
		if err != nil {
			return 0, err
		}
		out, err := p.Finalize(t)
		if err != nil {
			return 0, err
		}
		state.SetContext(ContextKeyTable, out)
		state.UpdateStats(func(s *domain.FeatureStats) {
			s.OutputRows = out.Len()
			s.OutputColumns = out.Width()
		})
		return out.Len(), nil
	}
	return newPipelineStep(StepIDFinalFilter, StepNameFinalFilter, logger, run, ContextKeyTable)
}

// FeatureSteps returns the pipeline steps in execution order
func FeatureSteps(logger *slog.Logger) []Step {
	return []Step{
		NewPruneStep(logger),
		NewTagStep(logger),
		NewMergeStep(logger),
		NewCombineStep(logger),
		NewHomeFlagStep(logger),
		NewDropIncompleteStep(logger),
		NewOpponentsStep(logger),
		NewFourFactorsStep(logger),
		NewFinalFilterStep(logger),
	}
}

// NewFeatureRegistry returns a registry holding every pipeline step
func NewFeatureRegistry(logger *slog.Logger) (*Registry, error) {
	registry := NewRegistry()
	for _, step := range FeatureSteps(logger) {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
