package domain

import (
	"errors"
	"fmt"
)

// Domain error kinds. Every failure raised by the service or a repository
// wraps exactly one of these so callers can branch with errors.Is.

var (
	// ErrTypeMismatch is returned when an identifier or payload has the wrong shape.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrIdentifierUndefined is returned when a required identifier is missing.
	ErrIdentifierUndefined = errors.New("identifier undefined")

	// ErrInvalidField is returned when a field has the wrong primitive type.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidInput is returned when a field fails a format check.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidIdentifier is returned when an identifier fails the numeric shape check.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound is returned when no active record exists for an identifier.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidArgument is returned when a required collection argument is null.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DomainError wraps a base error with additional context.
type DomainError struct {
	// Base is the underlying error kind (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string

	// ID is the identifier the operation was addressed to, when known
	ID string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error for errors.Is/As support.
func (e *DomainError) Unwrap() error {
	return e.Base
}

// NewTypeMismatchError reports that an argument has the wrong shape.
func NewTypeMismatchError(message string) *DomainError {
	return &DomainError{
		Base:    ErrTypeMismatch,
		Message: message,
	}
}

// NewIdentifierUndefinedError reports a missing identifier.
func NewIdentifierUndefinedError() *DomainError {
	return &DomainError{
		Base:    ErrIdentifierUndefined,
		Message: "id is required",
	}
}

// NewInvalidFieldError reports a field holding the wrong primitive type.
func NewInvalidFieldError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidField,
		Message: message,
		Field:   field,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewInvalidIdentifierError reports an identifier that is not numeric.
func NewInvalidIdentifierError(id Value) *DomainError {
	return &DomainError{
		Base:    ErrInvalidIdentifier,
		Message: "id must be numeric, got " + id.String(),
		ID:      id.String(),
	}
}

// NewNotFoundError creates a not found error for the user addressed by id.
func NewNotFoundError(id Value) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: "user not found by id: " + id.String(),
		ID:      id.String(),
	}
}

// NewInvalidArgumentError reports a required argument that is null.
func NewInvalidArgumentError(message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidArgument,
		Message: message,
	}
}

// IsTypeMismatch checks if an error is a type mismatch error.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsIdentifierUndefined checks if an error reports a missing identifier.
func IsIdentifierUndefined(err error) bool {
	return errors.Is(err, ErrIdentifierUndefined)
}

// IsInvalidField checks if an error is an invalid field error.
func IsInvalidField(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidIdentifier checks if an error is an invalid identifier error.
func IsInvalidIdentifier(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument checks if an error is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsArgumentError reports whether err was caused by malformed caller input,
// as opposed to a lookup miss or an infrastructure failure.
func IsArgumentError(err error) bool {
	return IsTypeMismatch(err) ||
		IsIdentifierUndefined(err) ||
		IsInvalidField(err) ||
		IsValidationError(err) ||
		IsInvalidIdentifier(err) ||
		IsInvalidArgument(err)
}
