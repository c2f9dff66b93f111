package cli

import (
	"encoding/json"
	"errors"
	"io"

	"usermanager/src/core/domain"
)

// Exit codes returned by Runner.Run.
const (
	ExitOK       = 0
	ExitNotFound = 1
	ExitInvalid  = 2
	ExitInternal = 3
)

// Success represents a successful response with data.
type Success struct {
	Data any `json:"data"`
}

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// OperationID correlates the response with log lines
	OperationID string `json:"operation_id,omitempty"`
}

func write(w io.Writer, body any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(body)
}

// OK writes a success envelope.
func OK(w io.Writer, data any) int {
	write(w, Success{Data: data})
	return ExitOK
}

// BadRequest writes a usage error.
func BadRequest(w io.Writer, message, operationID string) int {
	write(w, Error{Error: ErrorDetail{
		Code:        "BAD_REQUEST",
		Message:     message,
		OperationID: operationID,
	}})
	return ExitInvalid
}

// InternalError writes a generic failure without exposing details.
func InternalError(w io.Writer, operationID string) int {
	write(w, Error{Error: ErrorDetail{
		Code:        "INTERNAL_ERROR",
		Message:     "An unexpected error occurred",
		OperationID: operationID,
	}})
	return ExitInternal
}

// errorCode maps a domain error to its code. ok is false for errors outside
// the domain taxonomy.
func errorCode(err error) (code string, exit int, ok bool) {
	switch {
	case domain.IsNotFound(err):
		return "NOT_FOUND", ExitNotFound, true
	case domain.IsValidationError(err):
		return "VALIDATION_ERROR", ExitInvalid, true
	case domain.IsTypeMismatch(err):
		return "TYPE_MISMATCH", ExitInvalid, true
	case domain.IsIdentifierUndefined(err):
		return "IDENTIFIER_UNDEFINED", ExitInvalid, true
	case domain.IsInvalidField(err):
		return "INVALID_FIELD", ExitInvalid, true
	case domain.IsInvalidIdentifier(err):
		return "INVALID_IDENTIFIER", ExitInvalid, true
	case domain.IsInvalidArgument(err):
		return "INVALID_ARGUMENT", ExitInvalid, true
	default:
		return "", ExitInternal, false
	}
}

// FromDomainError converts a domain error to an error envelope and exit code.
// Errors outside the domain taxonomy are reported as internal errors.
func FromDomainError(w io.Writer, err error, operationID string) int {
	code, exit, ok := errorCode(err)
	if !ok {
		return InternalError(w, operationID)
	}

	detail := ErrorDetail{
		Code:        code,
		Message:     err.Error(),
		OperationID: operationID,
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		detail.Message = domainErr.Message
		detail.Field = domainErr.Field
	}
	write(w, Error{Error: detail})
	return exit
}
