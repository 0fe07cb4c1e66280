package common

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrNotFound is returned (usually wrapped) when an upload or marker
// does not exist, or exists only in the pending state.
var ErrNotFound = errors.New("not found")

type DetailedError interface {
	Detail() string
}

// Error is a custom error type that includes some additional fields
// to help us debug. See the Detail method.
type Error struct {
	Err     error
	File    string
	IsFatal bool
	Line    int
	Message string
}

func NewError(message string, err error, isFatal bool) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{
		Err:     err,
		File:    file,
		IsFatal: isFatal,
		Line:    line,
		Message: message,
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return e.Message
}

// This returns a detailed error message.
func (e *Error) Detail() string {
	prefix := ""
	if e.IsFatal {
		prefix = "FATAL: "
	}
	underlyingError := ""
	if e.Err != nil {
		underlyingError = fmt.Sprintf("(Underlying error: %s)", e.Err.Error())
	}
	return fmt.Sprintf("%s%s [%s:%d] %s",
		prefix, e.Message, e.File, e.Line, underlyingError)
}

// HttpError is a custom error struct that captures details of errors
// returned to HTTP clients. StatusCode is the status the API layer
// responds with.
type HttpError struct {
	Err        error
	Message    string
	Method     string
	StatusCode int
	URL        string
}

func NewHttpError(message string, err error, method, url string, statusCode int) *HttpError {
	return &HttpError{
		Err:        err,
		Message:    message,
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
	}
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func (e *HttpError) Error() string {
	return e.Message
}

func (e *HttpError) Detail() string {
	underlyingError := ""
	if e.Err != nil {
		underlyingError = fmt.Sprintf("(Underlying error: %s)", e.Err.Error())
	}
	return fmt.Sprintf(
		"%s: %s returned status %d. Message: %s %s",
		e.Method, e.URL, e.StatusCode, e.Message, underlyingError)
}

// ValidationError describes client input that was rejected before any
// storage or database call was made.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// CompensationError is returned when a step of the upload transaction
// failed and the cleanup that should have undone an earlier step also
// failed. Err is the original failure. CleanupErr is the failure of the
// cleanup. RecordID identifies the row that may have been left behind.
//
// errors.Is and errors.As see both errors.
type CompensationError struct {
	CleanupErr error
	Err        error
	RecordID   string
	Stage      string
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s failed for upload %s (%v) and cleanup also failed: %v",
		e.Stage, e.RecordID, e.Err, e.CleanupErr)
}

func (e *CompensationError) Unwrap() []error {
	return []error{e.Err, e.CleanupErr}
}

func (e *CompensationError) Detail() string {
	return fmt.Sprintf("FATAL: orphaned upload record %s may remain. Stage: %s. "+
		"(Original error: %v) (Cleanup error: %v)",
		e.RecordID, e.Stage, e.Err, e.CleanupErr)
}
