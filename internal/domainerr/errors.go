// Package domainerr defines the typed error taxonomy shared by all services.
// Handlers translate these into HTTP status codes; services never return
// unstructured failures for domain rule violations.
package domainerr

import (
	"errors"
	"fmt"
)

// NotFoundError indicates an unknown entity reference.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity reference.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError indicates an out-of-range value, malformed enumeration
// member, or empty required collection.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a named field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError indicates a scheduling overlap or duplicate unique key. When a
// booking overlap caused the conflict, ConflictingID names the committed
// interview that won the window.
type ConflictError struct {
	Reason        string
	ConflictingID string
}

func (e *ConflictError) Error() string {
	if e.ConflictingID == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s (conflicts with %s)", e.Reason, e.ConflictingID)
}

// Conflict builds a ConflictError naming the conflicting entity.
func Conflict(reason, conflictingID string) error {
	return &ConflictError{Reason: reason, ConflictingID: conflictingID}
}

// InvalidTransitionError indicates a state machine rule violation. The entity
// is left untouched; Current and Attempted name both sides of the rejected
// transition.
type InvalidTransitionError struct {
	Entity    string
	Current   string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Entity, e.Current, e.Attempted)
}

// InvalidTransition builds an InvalidTransitionError.
func InvalidTransition(entity, current, attempted string) error {
	return &InvalidTransitionError{Entity: entity, Current: current, Attempted: attempted}
}

// ErrAlreadyResolved is returned when acting on a reschedule request that has
// already been finalized.
var ErrAlreadyResolved = errors.New("request already resolved")

// ErrForbidden is returned when the acting user may not perform the operation.
var ErrForbidden = errors.New("insufficient permissions")

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
