// ABOUTME: Read views produce per-feed entry lists and the cross-feed timeline
// ABOUTME: Pure query layer; ordering is total and deterministic

package views

import (
	"context"
	"sort"

	"feedsync/core/domain"
	"feedsync/core/interfaces"
)

// Service is the read-view layer over storage. It never writes.
type Service struct {
	deps interfaces.Dependencies
}

// NewService creates a read-view service over the given collaborators
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{deps: deps}
}

// ListEntries returns one feed's entries ordered by published time
// descending, ties broken by first-seen descending (most recently
// ingested wins) then natural identifier. Unapproved entries are
// excluded unless includeUnapproved is set. Fails with a NotFoundError
// for an unknown feed.
func (s *Service) ListEntries(ctx context.Context, feedID string, includeUnapproved bool) ([]domain.Entry, error) {
	entries, err := s.deps.Storage.ListEntries(ctx, feedID, includeUnapproved)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

// Timeline merges entries across all feeds into one globally
// time-ordered sequence. The order is total: published descending,
// first-seen descending, feed ID, then natural identifier, so no two
// valid inputs produce ambiguous output.
func (s *Service) Timeline(ctx context.Context, includeUnapproved bool) ([]domain.Entry, error) {
	feeds, err := s.deps.Storage.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}

	var timeline []domain.Entry
	for _, feed := range feeds {
		entries, err := s.deps.Storage.ListEntries(ctx, feed.ID, includeUnapproved)
		if err != nil {
			return nil, err
		}
		timeline = append(timeline, entries...)
	}

	sortEntries(timeline)
	return timeline, nil
}

// sortEntries applies the reference ordering. The feed ID and natural
// identifier keys only matter for cross-feed views but cost nothing for
// per-feed lists, where feed IDs are all equal.
func sortEntries(entries []domain.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.PublishedAt != b.PublishedAt {
			return a.PublishedAt > b.PublishedAt
		}
		if a.FirstSeenAt != b.FirstSeenAt {
			return a.FirstSeenAt > b.FirstSeenAt
		}
		if a.FeedID != b.FeedID {
			return a.FeedID < b.FeedID
		}
		return a.NaturalID < b.NaturalID
	})
}
