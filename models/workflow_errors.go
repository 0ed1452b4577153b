package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies workflow failures so callers can decide between
// surfacing, retrying after a re-fetch, or regenerating content.
type ErrorKind string

const (
	KindInvalidTransition   ErrorKind = "INVALID_TRANSITION"
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindStaleState          ErrorKind = "STALE_STATE"
	KindMissingField        ErrorKind = "MISSING_FIELD"
	KindIncompleteDocument  ErrorKind = "INCOMPLETE_DOCUMENT"
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindNotificationFailure ErrorKind = "NOTIFICATION_FAILURE"
)

type WorkflowError struct {
	Kind    ErrorKind
	Message string
	// Details carries field names for MISSING_FIELD/VALIDATION_ERROR and
	// failed marker/threshold names for INCOMPLETE_DOCUMENT.
	Details []string
}

func (e *WorkflowError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s %v", e.Kind, e.Message, e.Details)
}

func NewInvalidTransition(from, to ApplicationStatus) error {
	return &WorkflowError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("transition from %q to %q is not allowed", from, to),
	}
}

func NewContractInvalidTransition(from, to ContractStatus) error {
	return &WorkflowError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("contract transition from %q to %q is not allowed", from, to),
	}
}

func NewValidationError(message string, fields ...string) error {
	return &WorkflowError{Kind: KindValidation, Message: message, Details: fields}
}

func NewStaleStateError(expected, actual ApplicationStatus) error {
	return &WorkflowError{
		Kind:    KindStaleState,
		Message: fmt.Sprintf("expected status %q but found %q, re-fetch and retry", expected, actual),
	}
}

func NewMissingFieldError(field string) error {
	return &WorkflowError{
		Kind:    KindMissingField,
		Message: "contract draft is missing a required field",
		Details: []string{field},
	}
}

func NewIncompleteDocumentError(failures []string) error {
	return &WorkflowError{
		Kind:    KindIncompleteDocument,
		Message: "generated document failed content validation",
		Details: failures,
	}
}

func NewNotFoundError(entity, id string) error {
	return &WorkflowError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %q not found", entity, id),
	}
}

// NewNotificationFailure marks a partial failure: the status write succeeded
// but the notice was not delivered. The transition is never rolled back.
func NewNotificationFailure(cause error) error {
	return &WorkflowError{
		Kind:    KindNotificationFailure,
		Message: fmt.Sprintf("status updated, notification dispatch failed: %v", cause),
	}
}

// IsKind walks the wrap chain looking for a WorkflowError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var wfErr *WorkflowError
	if errors.As(err, &wfErr) {
		return wfErr.Kind == kind
	}
	return false
}

// ErrorDetails returns the Details of a wrapped WorkflowError, if any.
func ErrorDetails(err error) []string {
	var wfErr *WorkflowError
	if errors.As(err, &wfErr) {
		return wfErr.Details
	}
	return nil
}
