package operations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxscorecli/internal/dataprocessing"
	apperrors "boxscorecli/internal/errors"
)

func stateWithTables(t *testing.T) *OperationState {
	t.Helper()

	half, q3 := sampleTables(t)
	state := NewOperationState("op")
	state.SetContext(ContextKeyHalf, half)
	state.SetContext(ContextKeyThirdQuarter, q3)
	state.SetConfig(ConfigKeyProcessor, dataprocessing.NewProcessor(dataprocessing.DefaultOptions(), nil))
	return state
}

func runStep(t *testing.T, state *OperationState, step Step) {
	t.Helper()

	state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	require.NoError(t, step.Validate(state))
	require.NoError(t, step.Execute(context.Background(), state))
}

func TestPipelineStepsHandOffTables(t *testing.T) {
	state := stateWithTables(t)

	runStep(t, state, NewPruneStep(nil))
	half, err := tableFrom(state, ContextKeyHalf)
	require.NoError(t, err)
	assert.False(t, half.HasColumn("PTS_RANK"))

	runStep(t, state, NewTagStep(nil))
	half, err = tableFrom(state, ContextKeyHalf)
	require.NoError(t, err)
	assert.True(t, half.HasColumn("HALF_PTS"))

	merge := NewMergeStep(nil)
	assert.Error(t, NewCombineStep(nil).Validate(state), "combine needs the merged table")

	runStep(t, state, merge)
	assert.Equal(t, 2, state.GetStats().MergedRows)
	assert.Equal(t, 2, state.GetStage(StepIDMerge).GetRows())

	for _, step := range []Step{
		NewCombineStep(nil), NewHomeFlagStep(nil), NewDropIncompleteStep(nil),
		NewOpponentsStep(nil), NewFourFactorsStep(nil), NewFinalFilterStep(nil),
	} {
		runStep(t, state, step)
	}

	out, err := tableFrom(state, ContextKeyTable)
	require.NoError(t, err)
	assert.True(t, out.HasColumn(dataprocessing.ColEFGPct))
	assert.Equal(t, 54, state.GetStats().OutputColumns)
}

func TestPipelineStepValidate(t *testing.T) {
	step := NewPruneStep(nil)

	state := NewOperationState("op")
	assert.ErrorContains(t, step.Validate(state), "no processor")

	state.SetConfig(ConfigKeyProcessor, "not a processor")
	assert.ErrorContains(t, step.Validate(state), "processor has type string")

	state.SetConfig(ConfigKeyProcessor, dataprocessing.NewProcessor(dataprocessing.Options{}, nil))
	assert.ErrorContains(t, step.Validate(state), ContextKeyHalf)

	state.SetContext(ContextKeyHalf, 42)
	assert.ErrorContains(t, step.Validate(state), "has type int")
}

func TestPipelineStepReturnsStageError(t *testing.T) {
	state := stateWithTables(t)
	runStep(t, state, NewPruneStep(nil))

	err := NewPruneStep(nil).Execute(context.Background(), state)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrTypeColumnNotFound, appErr.Type)
	assert.Equal(t, StepIDPrune, appErr.Stage())
}
