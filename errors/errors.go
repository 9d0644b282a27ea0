/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a document is not found
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists is returned when inserting a document whose key already exists
	ErrAlreadyExists = errors.New("document already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueryExecution is returned when a view or N1QL query cannot be executed
	// or its rows cannot be mapped (for example, the statement did not select
	// the _ID and _CAS metadata fields)
	ErrQueryExecution = errors.New("query execution failed")

	// ErrDurability is returned when a durability requirement could not be met
	ErrDurability = errors.New("durability requirement not met")

	// ErrTimeout is returned when an operation exceeded its deadline
	ErrTimeout = errors.New("operation timed out")

	// ErrNoKeyMap is returned when no key map is registered for a type
	ErrNoKeyMap = errors.New("no key map found for type")
)

// NotFoundError represents an error when a document is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when a document already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// QueryExecutionError represents a failed view or N1QL query
type QueryExecutionError struct {
	Statement string
	Message   string
	Cause     error
}

func (e *QueryExecutionError) Error() string {
	if e.Statement != "" {
		return fmt.Sprintf("query execution failed for %q: %s", e.Statement, e.Message)
	}
	return fmt.Sprintf("query execution failed: %s", e.Message)
}

func (e *QueryExecutionError) Is(target error) bool {
	return target == ErrQueryExecution
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Cause
}

// DurabilityError represents a write whose persistence or replication
// requirement could not be satisfied
type DurabilityError struct {
	Operation string
	Key       string
	Cause     error
}

func (e *DurabilityError) Error() string {
	return fmt.Sprintf("durability requirement not met for %s of key %q", e.Operation, e.Key)
}

func (e *DurabilityError) Is(target error) bool {
	return target == ErrDurability
}

func (e *DurabilityError) Unwrap() error {
	return e.Cause
}

// TimeoutError represents an operation that exceeded its deadline
type TimeoutError struct {
	Operation string
	Key       string
	Cause     error
}

func (e *TimeoutError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s of key %q timed out", e.Operation, e.Key)
	}
	return fmt.Sprintf("%s timed out", e.Operation)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(docType, key string) error {
	return &NotFoundError{Type: docType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(docType, key string) error {
	return &AlreadyExistsError{Type: docType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewQueryExecutionError creates a new QueryExecutionError
func NewQueryExecutionError(statement, message string) error {
	return &QueryExecutionError{Statement: statement, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsQueryExecution checks if an error is a query execution error
func IsQueryExecution(err error) bool {
	return errors.Is(err, ErrQueryExecution)
}

// IsDurability checks if an error is a durability error
func IsDurability(err error) bool {
	return errors.Is(err, ErrDurability)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
