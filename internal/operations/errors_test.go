package operations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "boxscorecli/internal/errors"
)

func TestOperationErrorMessage(t *testing.T) {
	cause := apperrors.NewUnpairedGameError(StepIDOpponents, "0022300002", 1)
	err := WrapError(cause, StepIDOpponents, "step execution failed")

	assert.Contains(t, err.Error(), "[execution] step opponents: step execution failed")
	assert.Contains(t, err.Error(), "0022300002")
	assert.True(t, apperrors.IsUnpairedGame(err))

	assert.Equal(t, "[fatal] no state", NewFatalError("no state", nil).Error())
	var nilErr *OperationError
	assert.Equal(t, "unknown operation error", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "merge", "x"))

	wrapped := WrapError(errBoom, "merge", "step execution failed")
	assert.Equal(t, ErrorTypeExecution, wrapped.Type)
	assert.Equal(t, "merge", wrapped.Step)
	assert.ErrorIs(t, wrapped, errBoom)

	existing := NewValidationError("", "bad")
	assert.Same(t, existing, WrapError(existing, "merge", "ignored"))
	assert.Equal(t, "merge", existing.Step)

	assert.Equal(t, ErrorTypeCancellation, WrapError(context.Canceled, "merge", "x").Type)
	assert.Equal(t, ErrorTypeTimeout, WrapError(context.DeadlineExceeded, "merge", "x").Type)
}

func TestErrorHelpers(t *testing.T) {
	assert.Equal(t, ErrorType(""), GetErrorType(nil))
	assert.Equal(t, ErrorTypeExecution, GetErrorType(errBoom))
	assert.Equal(t, ErrorTypeTimeout, GetErrorType(NewTimeoutError("s", "1s")))

	assert.Equal(t, "s", FailedStep(NewCancellationError("s", context.Canceled)))
	assert.Empty(t, FailedStep(errors.New("plain")))
}
