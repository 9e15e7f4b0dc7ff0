package syncengine

import (
	"context"
	"sync"

	"feedsync/core/domain"
	"feedsync/core/errors"
)

// mockFetcher is a mock implementation of the Fetcher interface
type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) (*domain.ParsedFeed, error)
	calls     int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return &domain.ParsedFeed{}, nil
}

// mockStorage is an in-memory mock implementation of the Storage
// interface. It honors the dedup-on-write invariant so engine tests
// exercise realistic storage behavior.
type mockStorage struct {
	mu      sync.Mutex
	feeds   []domain.Feed
	entries map[string][]domain.Entry

	addFeedErr     error
	listFeedsErr   error
	upsertErr      error
	updateMetaErr  error
	addFeedCalls   int
	upsertCalls    int
	metaUpdates    int
	lastMetaTitle  string
	lastMetaSynced int64
}

func newMockStorage() *mockStorage {
	return &mockStorage{entries: make(map[string][]domain.Entry)}
}

func (m *mockStorage) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listFeedsErr != nil {
		return nil, m.listFeedsErr
	}
	feeds := make([]domain.Feed, len(m.feeds))
	copy(feeds, m.feeds)
	return feeds, nil
}

func (m *mockStorage) GetFeed(ctx context.Context, id string) (*domain.Feed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.feeds {
		if m.feeds[i].ID == id {
			feed := m.feeds[i]
			return &feed, nil
		}
	}
	return nil, &errors.NotFoundError{Resource: "feed", ID: id}
}

func (m *mockStorage) AddFeed(ctx context.Context, feed *domain.Feed, entries []domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addFeedCalls++
	if m.addFeedErr != nil {
		return m.addFeedErr
	}
	m.feeds = append(m.feeds, *feed)
	m.entries[feed.ID] = append([]domain.Entry(nil), entries...)
	return nil
}

func (m *mockStorage) UpdateFeedMeta(ctx context.Context, feedID, title, description string, syncedAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateMetaErr != nil {
		return m.updateMetaErr
	}
	for i := range m.feeds {
		if m.feeds[i].ID == feedID {
			m.feeds[i].Title = title
			m.feeds[i].Description = description
			m.feeds[i].LastSyncedAt = syncedAt
			m.feeds[i].UpdatedAt = syncedAt
			m.metaUpdates++
			m.lastMetaTitle = title
			m.lastMetaSynced = syncedAt
			return nil
		}
	}
	return &errors.NotFoundError{Resource: "feed", ID: feedID}
}

func (m *mockStorage) UpsertEntries(ctx context.Context, feedID string, entries []domain.Entry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	known := make(map[string]struct{})
	for _, e := range m.entries[feedID] {
		known[e.NaturalID] = struct{}{}
	}
	inserted := 0
	for _, e := range entries {
		if _, ok := known[e.NaturalID]; ok {
			continue
		}
		known[e.NaturalID] = struct{}{}
		m.entries[feedID] = append(m.entries[feedID], e)
		inserted++
	}
	return inserted, nil
}

func (m *mockStorage) ListEntries(ctx context.Context, feedID string, includeUnapproved bool) ([]domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i := range m.feeds {
		if m.feeds[i].ID == feedID {
			found = true
		}
	}
	if !found {
		return nil, &errors.NotFoundError{Resource: "feed", ID: feedID}
	}
	var out []domain.Entry
	for _, e := range m.entries[feedID] {
		if !includeUnapproved && !e.Approved {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockStorage) SetEntryApproved(ctx context.Context, feedID, entryID string, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries[feedID] {
		if e.ID == entryID {
			m.entries[feedID][i].Approved = approved
			return nil
		}
	}
	return &errors.NotFoundError{Resource: "entry", ID: entryID}
}

func (m *mockStorage) DeleteFeed(ctx context.Context, feedID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.feeds {
		if m.feeds[i].ID == feedID {
			m.feeds = append(m.feeds[:i], m.feeds[i+1:]...)
			delete(m.entries, feedID)
			return nil
		}
	}
	return &errors.NotFoundError{Resource: "feed", ID: feedID}
}

// entryByNaturalID looks up a stored entry for assertions
func (m *mockStorage) entryByNaturalID(feedID, naturalID string) (domain.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries[feedID] {
		if e.NaturalID == naturalID {
			return e, true
		}
	}
	return domain.Entry{}, false
}
