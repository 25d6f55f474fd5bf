// Package errors provides custom error types for the coffeed service.
// These errors enable programmatic error checking across the store,
// command, and HTTP layers.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// Alias for the standard library errors.Is.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// Alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the coffeed service
var (
	// ErrNotFound indicates that a requested item was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that an item with the same unique key already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates that the backing store cannot be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError represents a uniqueness violation
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewConflictError creates a new ConflictError
func NewConflictError(resource, field, value string) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsNotFound checks if an error indicates a missing resource
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error indicates a uniqueness violation
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error indicates invalid input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStoreUnavailable checks if an error indicates store infrastructure failure
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// StoreError represents an infrastructure failure in the backing store
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewStoreError creates a new StoreError
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
