package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without stage or cause",
			err:  NewAppError(ErrTypeStorage, "write failed", nil),
			want: "[STORAGE] write failed",
		},
		{
			name: "with cause",
			err:  NewStorageError("write failed", errors.New("disk full")),
			want: "[STORAGE] write failed: disk full",
		},
		{
			name: "column not found carries stage",
			err:  NewColumnNotFoundError("prune", "SEASON_YEAR"),
			want: `[COLUMN_NOT_FOUND@prune] column "SEASON_YEAR" not found`,
		},
		{
			name: "unpaired game",
			err:  NewUnpairedGameError("opponents", "0022300001", 3),
			want: "[UNPAIRED_GAME@opponents] game 0022300001 has 3 rows, want one home and one away",
		},
		{
			name: "malformed input",
			err:  NewMalformedInputError("load", "half document has no resultSets"),
			want: "[MALFORMED_INPUT@load] half document has no resultSets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPipelineErrorContext(t *testing.T) {
	err := NewUnpairedGameError("opponents", "0022300001", 1)

	assert.Equal(t, "opponents", err.Stage())
	assert.Equal(t, "0022300001", err.Context[ContextGameID])
	assert.Equal(t, 1, err.Context[ContextRows])

	col := NewColumnNotFoundError("merge", "GAME_ID")
	assert.Equal(t, "GAME_ID", col.Context[ContextColumn])
	assert.Equal(t, "merge", col.Stage())

	assert.Empty(t, NewStorageError("x", nil).Stage())
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeValidation, Message: "bad"}

	got := err.WithContext(ContextRow, 4).WithContext(ContextSource, "half")

	assert.Same(t, err, got)
	assert.Equal(t, 4, err.Context[ContextRow])
	assert.Equal(t, "half", err.Context[ContextSource])
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("write failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, NewAppValidationError("x").Unwrap())
}

func TestTypePredicates(t *testing.T) {
	malformed := NewMalformedInputError("load", "bad")
	column := NewColumnNotFoundError("prune", "X")
	unpaired := NewUnpairedGameError("opponents", "g", 1)
	wrapped := fmt.Errorf("step failed: %w", unpaired)

	tests := []struct {
		name      string
		err       error
		malformed bool
		column    bool
		unpaired  bool
	}{
		{"malformed", malformed, true, false, false},
		{"column", column, false, true, false},
		{"unpaired", unpaired, false, false, true},
		{"wrapped", wrapped, false, false, true},
		{"plain", errors.New("plain"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.malformed, IsMalformedInput(tt.err))
			assert.Equal(t, tt.column, IsColumnNotFound(tt.err))
			assert.Equal(t, tt.unpaired, IsUnpairedGame(tt.err))
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("outer: %w", NewAppValidationError("unsupported output format")))
	require.True(t, ok)
	assert.Equal(t, ErrTypeValidation, appErr.Type)
	assert.Equal(t, "unsupported output format", appErr.Message)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name string
		err  *AppError
		typ  ErrorType
	}{
		{"storage", NewStorageError("bad write", cause), ErrTypeStorage},
		{"validation", NewAppValidationError("bad field"), ErrTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.NotNil(t, tt.err.Context)
			assert.True(t, IsType(tt.err, tt.typ))
		})
	}
}
