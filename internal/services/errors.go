package services

import "errors"

// Feature service errors
var (
	ErrMissingDocument = errors.New("half and third quarter documents are required")
)
