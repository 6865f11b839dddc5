package lifecycle

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input, field by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// AuthorizationError reports that the caller lacks rights over the entity.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// ClosedTaskError reports an application against a task that is no longer open.
type ClosedTaskError struct {
	TaskID uint
	Status string
}

func (e *ClosedTaskError) Error() string {
	return fmt.Sprintf("task %d is not open for applications (status %s)", e.TaskID, e.Status)
}

// InvalidStateError reports an operation that violates the state machine.
type InvalidStateError struct {
	Entity string
	ID     uint
	Status string
	Op     string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s %d in status %s", e.Op, e.Entity, e.ID, e.Status)
}

// DuplicateApplicationError reports a second non-rejected application for the
// same (task, volunteer) pair.
type DuplicateApplicationError struct {
	TaskID      uint
	VolunteerID uint
}

func (e *DuplicateApplicationError) Error() string {
	return fmt.Sprintf("volunteer %d already has an active application for task %d", e.VolunteerID, e.TaskID)
}

// NotApprovedError reports an attendance mark for a volunteer without an
// approved application.
type NotApprovedError struct {
	TaskID      uint
	VolunteerID uint
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("volunteer %d has no approved application for task %d", e.VolunteerID, e.TaskID)
}

// EligibilityError reports unmet certificate preconditions. Retryable: the
// caller may try again once the missing state is reached.
type EligibilityError struct {
	TaskID      uint
	VolunteerID uint
	Reason      string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("certificate not issuable for task %d volunteer %d: %s", e.TaskID, e.VolunteerID, e.Reason)
}

// RenderError reports a failed or timed-out call to the external document
// renderer. Retryable; nothing was persisted.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("certificate render failed: %v", e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// ConflictError reports a lost concurrent-write race; the caller should
// re-read and decide whether to retry.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// IsRetryable reports whether the caller may retry the operation verbatim.
func IsRetryable(err error) bool {
	var eligibility *EligibilityError
	var render *RenderError
	return errors.As(err, &eligibility) || errors.As(err, &render)
}
