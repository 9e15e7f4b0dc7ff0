// ABOUTME: In-memory Storage implementation guarded by a single mutex
// ABOUTME: Backs tests and the zero-configuration library default

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"feedsync/core/domain"
	"feedsync/core/errors"
)

// Store implements the Storage interface with maps under one mutex.
// Values are copied on the way in and out so callers can never mutate
// stored state behind the lock.
type Store struct {
	mu            sync.RWMutex
	feedsByID     map[string]domain.Feed
	feedIDByURL   map[string]string
	entriesByFeed map[string][]domain.Entry
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		feedsByID:     make(map[string]domain.Feed),
		feedIDByURL:   make(map[string]string),
		entriesByFeed: make(map[string][]domain.Entry),
	}
}

// ListFeeds returns every tracked feed, ordered by creation time then ID
// for deterministic output
func (s *Store) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feeds := make([]domain.Feed, 0, len(s.feedsByID))
	for _, f := range s.feedsByID {
		feeds = append(feeds, f)
	}
	sort.Slice(feeds, func(i, j int) bool {
		if feeds[i].CreatedAt != feeds[j].CreatedAt {
			return feeds[i].CreatedAt < feeds[j].CreatedAt
		}
		return feeds[i].ID < feeds[j].ID
	})
	return feeds, nil
}

// GetFeed retrieves one feed by ID
func (s *Store) GetFeed(ctx context.Context, id string) (*domain.Feed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.feedsByID[id]
	if !ok {
		return nil, &errors.NotFoundError{Resource: "feed", ID: id}
	}
	feed := f
	return &feed, nil
}

// AddFeed persists a feed with its initial entry set in one step
func (s *Store) AddFeed(ctx context.Context, feed *domain.Feed, entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feedsByID[feed.ID]; ok {
		return &errors.StorageError{Op: "add_feed", Err: fmt.Errorf("feed id %s already exists", feed.ID)}
	}
	if _, ok := s.feedIDByURL[feed.URL]; ok {
		return &errors.StorageError{Op: "add_feed", Err: fmt.Errorf("feed url %s already tracked", feed.URL)}
	}

	s.feedsByID[feed.ID] = *feed
	s.feedIDByURL[feed.URL] = feed.ID
	s.insertEntries(feed.ID, entries)
	return nil
}

// UpdateFeedMeta refreshes title, description, and last-synced time
func (s *Store) UpdateFeedMeta(ctx context.Context, feedID, title, description string, syncedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.feedsByID[feedID]
	if !ok {
		return &errors.NotFoundError{Resource: "feed", ID: feedID}
	}
	f.Title = title
	f.Description = description
	f.LastSyncedAt = syncedAt
	f.UpdatedAt = syncedAt
	s.feedsByID[feedID] = f
	return nil
}

// UpsertEntries inserts entries, silently ignoring any whose natural
// identifier is already stored for the feed
func (s *Store) UpsertEntries(ctx context.Context, feedID string, entries []domain.Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feedsByID[feedID]; !ok {
		return 0, &errors.NotFoundError{Resource: "feed", ID: feedID}
	}
	return s.insertEntries(feedID, entries), nil
}

// insertEntries performs the dedup-on-write insert. Callers hold the lock.
func (s *Store) insertEntries(feedID string, entries []domain.Entry) int {
	known := make(map[string]struct{}, len(s.entriesByFeed[feedID]))
	for _, e := range s.entriesByFeed[feedID] {
		known[e.NaturalID] = struct{}{}
	}

	inserted := 0
	for _, e := range entries {
		if _, ok := known[e.NaturalID]; ok {
			continue
		}
		known[e.NaturalID] = struct{}{}
		s.entriesByFeed[feedID] = append(s.entriesByFeed[feedID], e)
		inserted++
	}
	return inserted
}

// ListEntries returns a feed's entries in the reference order
func (s *Store) ListEntries(ctx context.Context, feedID string, includeUnapproved bool) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.feedsByID[feedID]; !ok {
		return nil, &errors.NotFoundError{Resource: "feed", ID: feedID}
	}

	entries := make([]domain.Entry, 0, len(s.entriesByFeed[feedID]))
	for _, e := range s.entriesByFeed[feedID] {
		if !includeUnapproved && !e.Approved {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.PublishedAt != b.PublishedAt {
			return a.PublishedAt > b.PublishedAt
		}
		if a.FirstSeenAt != b.FirstSeenAt {
			return a.FirstSeenAt > b.FirstSeenAt
		}
		return a.NaturalID < b.NaturalID
	})
	return entries, nil
}

// SetEntryApproved flips an entry's approval flag
func (s *Store) SetEntryApproved(ctx context.Context, feedID, entryID string, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feedsByID[feedID]; !ok {
		return &errors.NotFoundError{Resource: "feed", ID: feedID}
	}
	for i, e := range s.entriesByFeed[feedID] {
		if e.ID == entryID {
			s.entriesByFeed[feedID][i].Approved = approved
			return nil
		}
	}
	return &errors.NotFoundError{Resource: "entry", ID: entryID}
}

// DeleteFeed removes a feed and all of its entries in one step
func (s *Store) DeleteFeed(ctx context.Context, feedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.feedsByID[feedID]
	if !ok {
		return &errors.NotFoundError{Resource: "feed", ID: feedID}
	}
	delete(s.feedsByID, feedID)
	delete(s.feedIDByURL, f.URL)
	delete(s.entriesByFeed, feedID)
	return nil
}
