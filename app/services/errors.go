package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses by the controllers.
var (
	// ErrInvalidCredentials is returned on login failure. The same value
	// covers unknown users and wrong passwords so the response does not
	// reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means the operation is blocked by related records,
	// such as deleting a customer who still has orders.
	ErrConflict = errors.New("operation conflicts with existing records")
)

// ValidationError carries per-field messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// DuplicateError means a unique field already holds the given value.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}
