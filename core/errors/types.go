// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling by callers

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents an invalid input error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// FetchErrorKind classifies why fetching a feed source failed
type FetchErrorKind string

const (
	// FetchNetwork covers unreachable sources and bad HTTP responses
	FetchNetwork FetchErrorKind = "network"

	// FetchTimeout covers fetches that exceeded the configured timeout
	FetchTimeout FetchErrorKind = "timeout"

	// FetchUnparseable covers documents that are not RSS/Atom-class XML
	FetchUnparseable FetchErrorKind = "unparseable"
)

// FetchError represents a failure to retrieve or parse a feed source
type FetchError struct {
	URL  string
	Kind FetchErrorKind
	Err  error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch failed (%s) for %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s) for %s", e.Kind, e.URL)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// StorageError represents an underlying persistence failure. The engine
// treats it as fatal and surfaces it verbatim to the caller.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// FetchKind returns the kind of a FetchError, or an empty kind when the
// error is not one
func FetchKind(err error) FetchErrorKind {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return ""
}

// IsStorage checks if an error is a StorageError
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
