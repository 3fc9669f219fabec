package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDraft is matched by every *ValidationError.
	ErrInvalidDraft = errors.New("order: draft is invalid")
	// ErrSubmission is matched by every *SubmissionError.
	ErrSubmission = errors.New("order: submission failed")
	// ErrUnknownTopping is returned when an id is not in the catalog.
	ErrUnknownTopping = errors.New("order: unknown topping")
)

// ValidationError carries the per-field messages that blocked a submission.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Result) == 0 {
		return ErrInvalidDraft.Error()
	}
	parts := make([]string, 0, len(e.Result))
	for _, field := range e.Result.Fields() {
		parts = append(parts, field+": "+e.Result[field])
	}
	return ErrInvalidDraft.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDraft
}

// SubmissionError describes a failed network exchange with the order
// endpoint. StatusCode is zero for transport failures. Fields holds any
// per-field messages the endpoint reported.
type SubmissionError struct {
	StatusCode int
	Code       string
	Fields     map[string][]string
	Form       []string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e == nil {
		return ErrSubmission.Error()
	}
	msg := ErrSubmission.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmission
}
