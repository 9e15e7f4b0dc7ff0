// ABOUTME: Storage capability contract for persisting feeds and entries
// ABOUTME: Implementations must dedup on write as the final safety net

package interfaces

import (
	"context"

	"feedsync/core/domain"
)

// Storage defines the persistence capability consumed by the sync engine
// and the read views. Implementations can be SQLite, in-memory, or any
// other durable store.
//
// Implementations are accessed as a single shared resource: writes must
// be mutually exclusive, and readers must never observe a partially
// written feed or entry batch.
type Storage interface {
	// ListFeeds returns every tracked feed.
	ListFeeds(ctx context.Context) ([]domain.Feed, error)

	// GetFeed retrieves a feed by ID. Returns a NotFoundError when no
	// feed with that ID exists.
	GetFeed(ctx context.Context, id string) (*domain.Feed, error)

	// AddFeed atomically persists a feed together with its initial
	// entry set. Readers never observe the feed without its entries.
	AddFeed(ctx context.Context, feed *domain.Feed, entries []domain.Entry) error

	// UpdateFeedMeta refreshes the feed's title, description, and
	// last-synced time after a successful sync. No other feed fields
	// change after creation.
	UpdateFeedMeta(ctx context.Context, feedID, title, description string, syncedAt int64) error

	// UpsertEntries inserts the given entries for a feed and reports
	// how many were actually inserted. Entries whose (feed, natural
	// identifier) pair is already stored are ignored: dedup-on-write
	// must hold even if the caller violates the dedup invariant, and
	// stored entries are never overwritten.
	UpsertEntries(ctx context.Context, feedID string, entries []domain.Entry) (int, error)

	// ListEntries returns a feed's entries ordered by published time
	// descending, ties broken by first-seen descending then natural
	// identifier ascending. Unapproved entries are excluded unless
	// includeUnapproved is set. Returns a NotFoundError for an
	// unknown feed.
	ListEntries(ctx context.Context, feedID string, includeUnapproved bool) ([]domain.Entry, error)

	// SetEntryApproved flips an entry's approval flag. Returns a
	// NotFoundError when the feed or entry is unknown.
	SetEntryApproved(ctx context.Context, feedID, entryID string, approved bool) error

	// DeleteFeed removes a feed and all of its entries atomically,
	// leaving no orphans.
	DeleteFeed(ctx context.Context, feedID string) error
}
