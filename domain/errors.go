package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnauthorized      ErrorKind = "unauthorized"
	KindInvalidRequest    ErrorKind = "invalid_request"
	KindSourceUnavailable ErrorKind = "source_unavailable"
	KindExtractionFailed  ErrorKind = "extraction_failed"
	KindPublishFailed     ErrorKind = "publish_failed"
	KindOverloaded        ErrorKind = "overloaded"
	KindInternal          ErrorKind = "internal"
)

// PipelineError is a classified failure from one pipeline component. Message
// is safe to return to callers; the wrapped cause is for logs only.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewPipelineError(kind ErrorKind, message string, err error) *PipelineError {
	return &PipelineError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func (e *PipelineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// KindOf classifies any error. Unclassified errors are internal faults.
func KindOf(err error) ErrorKind {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind
	}
	return KindInternal
}

// Detail returns the caller-safe message for an error. Unclassified errors get
// a generic message so internal detail never leaks.
func Detail(err error) string {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Message
	}
	return "internal server error"
}
