// Package domain holds the error types shared by the pet and account aggregates.
package domain

import "fmt"

// NotFoundError is returned when an entity does not exist or is no longer active.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ForbiddenError is returned for bad credentials, unknown keys and foreign pets.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(msg string) error {
	return &ForbiddenError{Message: msg}
}

// ConflictError is returned on duplicate accounts and concurrent pet updates.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError creates a ConflictError.
func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

// ValidationError is returned for malformed requests, e.g. an unknown filter.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
