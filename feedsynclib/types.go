// ABOUTME: Public types for the FeedSync library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package feedsynclib

import (
	"feedsync/core/domain"
	"feedsync/core/syncengine"
)

// Feed represents a synchronized feed subscription
type Feed struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	LastSyncedAt int64  `json:"last_synced_at,omitempty"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

// Entry represents a stored feed entry
type Entry struct {
	ID          string `json:"id"`
	FeedID      string `json:"feed_id"`
	NaturalID   string `json:"natural_id"`
	Title       string `json:"title"`
	Link        string `json:"link,omitempty"`
	Summary     string `json:"summary,omitempty"`
	PublishedAt int64  `json:"published_at"`
	Approved    bool   `json:"approved"`
	FirstSeenAt int64  `json:"first_seen_at"`
}

// SyncOutcome reports the result of syncing one feed
type SyncOutcome struct {
	FeedID     string `json:"feed_id"`
	FeedURL    string `json:"feed_url"`
	NewEntries int    `json:"new_entries"`
	Error      string `json:"error,omitempty"`
}

// domainFeedToPublic converts a domain feed to the public type
func domainFeedToPublic(f *domain.Feed) *Feed {
	return &Feed{
		ID:           f.ID,
		URL:          f.URL,
		Title:        f.Title,
		Description:  f.Description,
		LastSyncedAt: f.LastSyncedAt,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// entriesToPublic converts domain entries to public types
func entriesToPublic(entries []domain.Entry) []*Entry {
	result := make([]*Entry, len(entries))
	for i, e := range entries {
		result[i] = &Entry{
			ID:          e.ID,
			FeedID:      e.FeedID,
			NaturalID:   e.NaturalID,
			Title:       e.Title,
			Link:        e.Link,
			Summary:     e.Summary,
			PublishedAt: e.PublishedAt,
			Approved:    e.Approved,
			FirstSeenAt: e.FirstSeenAt,
		}
	}
	return result
}

// syncResultToPublic converts an engine sync result to the public type
func syncResultToPublic(r *syncengine.SyncResult) *SyncOutcome {
	outcome := &SyncOutcome{
		FeedID:     r.FeedID,
		FeedURL:    r.FeedURL,
		NewEntries: r.NewEntries,
	}
	if r.Err != nil {
		outcome.Error = r.Err.Error()
	}
	return outcome
}
