package contract

import "errors"

var (
	ErrModelInvoke      = errors.New("model invoke failed")
	ErrSchemaViolation  = errors.New("model response violates schema")
	ErrValidation       = errors.New("validation failed")
	ErrHandler          = errors.New("model handler failed")
	ErrUnavailable      = errors.New("model library unavailable")
	ErrDuplicateHandler = errors.New("handler already registered")
	ErrToolFailed       = errors.New("tool execution failed")
)
