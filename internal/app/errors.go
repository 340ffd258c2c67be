package app

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInvalidInput          ErrorCode = "INVALID_INPUT"
	ErrNotFound              ErrorCode = "NOT_FOUND"
	ErrDependencyUnavailable ErrorCode = "DEPENDENCY_UNAVAILABLE"
)

// EngineError is the caller-visible failure of a habit engine request.
type EngineError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// InvalidInput reports input rejected before any mutation.
func InvalidInput(format string, args ...any) *EngineError {
	return &EngineError{Code: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing or foreign entity, keeping cause for errors.Is.
func NotFound(cause error, format string, args ...any) *EngineError {
	return &EngineError{Code: ErrNotFound, Message: fmt.Sprintf(format, args...), Err: cause}
}

// DependencyUnavailable reports a failed downstream store.
func DependencyUnavailable(cause error, format string, args ...any) *EngineError {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &EngineError{Code: ErrDependencyUnavailable, Message: msg, Err: cause}
}

// CodeOf returns the EngineError code in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
