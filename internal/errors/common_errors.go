package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeMalformedInput ErrorType = "MALFORMED_INPUT"
	ErrTypeColumnNotFound ErrorType = "COLUMN_NOT_FOUND"
	ErrTypeUnpairedGame   ErrorType = "UNPAIRED_GAME"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeValidation     ErrorType = "VALIDATION"
)

// Context keys attached to pipeline errors
const (
	ContextStage  = "stage"
	ContextColumn = "column"
	ContextGameID = "game_id"
	ContextRows   = "rows"
	ContextRow    = "row"
	ContextSource = "source"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	prefix := string(e.Type)
	if stage := e.Stage(); stage != "" {
		prefix = fmt.Sprintf("%s@%s", e.Type, stage)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", prefix, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrorType returns the error type as a metric label
func (e *AppError) ErrorType() string {
	return string(e.Type)
}

// Stage returns the pipeline stage that raised the error, if any
func (e *AppError) Stage() string {
	if s, ok := e.Context[ContextStage].(string); ok {
		return s
	}
	return ""
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewMalformedInputError reports a structural violation in an input document
func NewMalformedInputError(stage, detail string) *AppError {
	return NewAppError(ErrTypeMalformedInput, detail, nil).
		WithContext(ContextStage, stage)
}

// NewColumnNotFoundError reports a column a stage needed but did not find
func NewColumnNotFoundError(stage, column string) *AppError {
	return NewAppError(ErrTypeColumnNotFound, fmt.Sprintf("column %q not found", column), nil).
		WithContext(ContextStage, stage).
		WithContext(ContextColumn, column)
}

// NewUnpairedGameError reports a game id that does not resolve to one home and one away row
func NewUnpairedGameError(stage, gameID string, rows int) *AppError {
	return NewAppError(ErrTypeUnpairedGame,
		fmt.Sprintf("game %s has %d rows, want one home and one away", gameID, rows), nil).
		WithContext(ContextStage, stage).
		WithContext(ContextGameID, gameID).
		WithContext(ContextRows, rows)
}

// NewStorageError reports a failure writing output
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError reports a request or option the pipeline cannot honour
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// AsAppError returns the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err's chain holds an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == errType
}

func IsMalformedInput(err error) bool { return IsType(err, ErrTypeMalformedInput) }

func IsColumnNotFound(err error) bool { return IsType(err, ErrTypeColumnNotFound) }

func IsUnpairedGame(err error) bool { return IsType(err, ErrTypeUnpairedGame) }
