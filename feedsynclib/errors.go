// ABOUTME: Error values and classification helpers for the FeedSync library
// ABOUTME: Re-exports the core error predicates for callers that embed the client

package feedsynclib

import (
	"errors"

	coreerrors "feedsync/core/errors"
)

// Configuration errors returned by NewClient
var (
	// ErrStorageRequired is returned when no storage backend is configured
	ErrStorageRequired = errors.New("configuration: storage is required")

	// ErrFetcherRequired is returned when no fetcher is configured
	ErrFetcherRequired = errors.New("configuration: fetcher is required")

	// ErrInvalidWorkerCount is returned for a non-positive worker count
	ErrInvalidWorkerCount = errors.New("configuration: sync workers must be at least 1")
)

// IsNotFound reports whether err indicates a missing feed or entry
func IsNotFound(err error) bool {
	return coreerrors.IsNotFound(err)
}

// IsInvalidInput reports whether err indicates rejected input, such as
// a malformed feed URL
func IsInvalidInput(err error) bool {
	return coreerrors.IsValidation(err)
}

// IsFetchFailed reports whether err came from downloading or parsing a
// feed document
func IsFetchFailed(err error) bool {
	return coreerrors.IsFetch(err)
}

// IsStorageFailed reports whether err came from the persistence layer
func IsStorageFailed(err error) bool {
	return coreerrors.IsStorage(err)
}
