// ABOUTME: Sync engine orchestrates adding and refreshing feeds
// ABOUTME: Fetches outside the storage lock and serializes merge/write steps

package syncengine

import (
	"context"
	"net/url"
	"sync"
	"time"

	"feedsync/core/domain"
	"feedsync/core/errors"
	"feedsync/core/interfaces"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultSyncWorkers = 8

// SyncResult reports the outcome of syncing one feed
type SyncResult struct {
	// FeedID identifies the synced feed
	FeedID string

	// FeedURL is the feed's source URL
	FeedURL string

	// NewEntries is the count of entries inserted by this sync
	NewEntries int

	// Err is the per-feed failure, nil on success
	Err error
}

// Service is the sync engine. It turns raw fetch results into durable,
// deduplicated storage state.
//
// A single mutex serializes every merge/write step so at most one write
// transaction is in flight at a time. Network fetches always happen
// outside the lock: a stalled fetch for one feed never blocks syncs of
// other feeds.
type Service struct {
	deps    interfaces.Dependencies
	mu      sync.Mutex
	workers int
	now     func() time.Time
	newID   func() string
}

// Option configures a Service
type Option func(*Service)

// WithWorkers bounds how many feeds SyncAll fetches concurrently
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClock overrides the time source, for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator overrides record ID generation, for deterministic tests
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService creates a sync engine over the given collaborators
func NewService(deps interfaces.Dependencies, opts ...Option) *Service {
	s := &Service{
		deps:    deps,
		workers: defaultSyncWorkers,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddFeed fetches the source at rawURL once and, on success, atomically
// persists a new feed together with its initial entry set. Nothing is
// persisted when the fetch fails.
func (s *Service) AddFeed(ctx context.Context, rawURL string) (*domain.Feed, error) {
	if err := validateFeedURL(rawURL); err != nil {
		return nil, err
	}

	parsed, err := s.deps.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.logWarn("fetch failed while adding feed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return nil, err
	}

	now := s.now().Unix()
	feed := &domain.Feed{
		ID:           s.newID(),
		URL:          rawURL,
		Title:        feedTitle(parsed.Title, rawURL),
		Description:  parsed.Description,
		LastSyncedAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A fresh feed has no stored entries; every candidate is new.
	entries := s.buildNewEntries(feed.ID, parsed.Entries, nil, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deps.Storage.AddFeed(ctx, feed, entries); err != nil {
		return nil, err
	}

	s.logInfo("added feed", map[string]interface{}{
		"id":      feed.ID,
		"url":     feed.URL,
		"entries": len(entries),
	})

	return feed, nil
}

// Sync refreshes one feed by ID. It fails with a NotFoundError for an
// unknown feed and surfaces the first fetch or storage failure directly;
// no partial state is committed on failure.
func (s *Service) Sync(ctx context.Context, feedID string) (*SyncResult, error) {
	feed, err := s.deps.Storage.GetFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}

	res := s.syncFeed(ctx, feed)
	if res.Err != nil {
		return nil, res.Err
	}
	return res, nil
}

// SyncAll refreshes every tracked feed and reports a per-feed outcome.
// One feed's failure never aborts the batch; the returned error is
// non-nil only when listing feeds from storage fails.
func (s *Service) SyncAll(ctx context.Context) ([]SyncResult, error) {
	feeds, err := s.deps.Storage.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SyncResult, len(feeds))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range feeds {
		i := i
		feed := feeds[i]
		g.Go(func() error {
			results[i] = *s.syncFeed(ctx, &feed)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// ListFeeds returns every tracked feed
func (s *Service) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	return s.deps.Storage.ListFeeds(ctx)
}

// GetFeed retrieves one feed by ID
func (s *Service) GetFeed(ctx context.Context, feedID string) (*domain.Feed, error) {
	return s.deps.Storage.GetFeed(ctx, feedID)
}

// RemoveFeed deletes a feed and all of its entries
func (s *Service) RemoveFeed(ctx context.Context, feedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deps.Storage.DeleteFeed(ctx, feedID)
}

// SetEntryApproved updates an entry's approved flag. Approval is the
// only entry field that may change after first sight.
func (s *Service) SetEntryApproved(ctx context.Context, feedID, entryID string, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deps.Storage.SetEntryApproved(ctx, feedID, entryID, approved)
}

// syncFeed fetches one feed outside the lock, then merges the candidates
// against stored state under it. All failures land in the result.
func (s *Service) syncFeed(ctx context.Context, feed *domain.Feed) *SyncResult {
	res := &SyncResult{FeedID: feed.ID, FeedURL: feed.URL}

	parsed, err := s.deps.Fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		s.logWarn("fetch failed during sync", map[string]interface{}{
			"id":    feed.ID,
			"url":   feed.URL,
			"error": err.Error(),
		})
		res.Err = err
		return res
	}

	now := s.now().Unix()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.deps.Storage.ListEntries(ctx, feed.ID, true)
	if err != nil {
		res.Err = err
		return res
	}

	existing := make(map[string]struct{}, len(stored))
	for _, e := range stored {
		existing[e.NaturalID] = struct{}{}
	}

	fresh := s.buildNewEntries(feed.ID, parsed.Entries, existing, now)
	if len(fresh) > 0 {
		res.NewEntries, err = s.deps.Storage.UpsertEntries(ctx, feed.ID, fresh)
		if err != nil {
			res.Err = err
			return res
		}
	}

	// The source may omit metadata it sent before; keep stored values then.
	title := feed.Title
	if parsed.Title != "" {
		title = parsed.Title
	}
	description := feed.Description
	if parsed.Description != "" {
		description = parsed.Description
	}
	if err := s.deps.Storage.UpdateFeedMeta(ctx, feed.ID, title, description, now); err != nil {
		res.Err = err
		return res
	}

	s.logInfo("synced feed", map[string]interface{}{
		"id":          feed.ID,
		"url":         feed.URL,
		"new_entries": res.NewEntries,
	})

	return res
}

func (s *Service) logInfo(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}

// validateFeedURL requires a syntactically valid absolute URL with a
// non-empty scheme and host
func validateFeedURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &errors.ValidationError{Field: "url", Message: "must be an absolute URL with scheme and host"}
	}
	return nil
}

// feedTitle falls back to the host portion of the URL when the source
// document carries no title
func feedTitle(parsedTitle, rawURL string) string {
	if parsedTitle != "" {
		return parsedTitle
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}
