package feedsynclib

import (
	"context"
	"testing"

	"feedsync/core/domain"
	"feedsync/core/interfaces"
)

type stubFetcher struct {
	feeds map[string]*domain.ParsedFeed
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	if parsed, ok := f.feeds[url]; ok {
		return parsed, nil
	}
	return &domain.ParsedFeed{Title: "Empty"}, nil
}

func newTestClient(t *testing.T, fetcher interfaces.Fetcher) *Client {
	t.Helper()
	c, err := NewClient(WithFetcher(fetcher))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient_RejectsBadConfig(t *testing.T) {
	if _, err := NewClient(WithStorage(nil)); err != ErrStorageRequired {
		t.Errorf("nil storage: err = %v", err)
	}
	if _, err := NewClient(WithFetcher(nil)); err != ErrFetcherRequired {
		t.Errorf("nil fetcher: err = %v", err)
	}
	if _, err := NewClient(WithSyncWorkers(0)); err != ErrInvalidWorkerCount {
		t.Errorf("zero workers: err = %v", err)
	}
}

func TestAddFeedAndListEntries(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*domain.ParsedFeed{
		"https://blog.test/rss": {
			Title: "Blog",
			Entries: []domain.CandidateEntry{
				{GUID: "g1", Title: "Post one", PublishedAt: 100},
				{GUID: "g2", Title: "Post two", PublishedAt: 200},
			},
		},
	}}
	c := newTestClient(t, fetcher)
	ctx := context.Background()

	feed, err := c.AddFeed(ctx, "https://blog.test/rss")
	if err != nil {
		t.Fatalf("AddFeed: %v", err)
	}
	if feed.Title != "Blog" {
		t.Errorf("feed.Title = %q", feed.Title)
	}

	// New entries are unapproved and hidden by default.
	entries, err := c.ListEntries(ctx, feed.ID, false)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("default view has %d entries, want 0", len(entries))
	}

	all, _ := c.ListEntries(ctx, feed.ID, true)
	if len(all) != 2 {
		t.Fatalf("got %d entries, want 2", len(all))
	}
	if all[0].NaturalID != "g2" {
		t.Errorf("entries not newest-first: %+v", all)
	}
}

func TestApproveEntryShowsInTimeline(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*domain.ParsedFeed{
		"https://blog.test/rss": {
			Title:   "Blog",
			Entries: []domain.CandidateEntry{{GUID: "g1", Title: "Post", PublishedAt: 100}},
		},
	}}
	c := newTestClient(t, fetcher)
	ctx := context.Background()

	feed, err := c.AddFeed(ctx, "https://blog.test/rss")
	if err != nil {
		t.Fatalf("AddFeed: %v", err)
	}

	all, _ := c.ListEntries(ctx, feed.ID, true)
	if err := c.ApproveEntry(ctx, feed.ID, all[0].ID); err != nil {
		t.Fatalf("ApproveEntry: %v", err)
	}

	timeline, err := c.Timeline(ctx, false)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(timeline) != 1 || timeline[0].NaturalID != "g1" {
		t.Errorf("timeline = %+v", timeline)
	}

	if err := c.UnapproveEntry(ctx, feed.ID, all[0].ID); err != nil {
		t.Fatalf("UnapproveEntry: %v", err)
	}
	timeline, _ = c.Timeline(ctx, false)
	if len(timeline) != 0 {
		t.Errorf("timeline still shows unapproved entry")
	}
}

func TestSyncReportsNewEntryCount(t *testing.T) {
	parsed := &domain.ParsedFeed{
		Title:   "Blog",
		Entries: []domain.CandidateEntry{{GUID: "g1", Title: "Post", PublishedAt: 100}},
	}
	fetcher := &stubFetcher{feeds: map[string]*domain.ParsedFeed{"https://blog.test/rss": parsed}}
	c := newTestClient(t, fetcher)
	ctx := context.Background()

	feed, err := c.AddFeed(ctx, "https://blog.test/rss")
	if err != nil {
		t.Fatalf("AddFeed: %v", err)
	}

	// Nothing changed upstream.
	outcome, err := c.Sync(ctx, feed.ID)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if outcome.NewEntries != 0 || outcome.Error != "" {
		t.Errorf("outcome = %+v", outcome)
	}

	parsed.Entries = append(parsed.Entries, domain.CandidateEntry{GUID: "g2", Title: "Another", PublishedAt: 200})
	outcome, err = c.Sync(ctx, feed.ID)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if outcome.NewEntries != 1 {
		t.Errorf("NewEntries = %d, want 1", outcome.NewEntries)
	}
}

func TestSyncAllAndRemoveFeed(t *testing.T) {
	fetcher := &stubFetcher{feeds: map[string]*domain.ParsedFeed{
		"https://a.test/rss": {Title: "A"},
		"https://b.test/rss": {Title: "B"},
	}}
	c := newTestClient(t, fetcher)
	ctx := context.Background()

	feedA, _ := c.AddFeed(ctx, "https://a.test/rss")
	if _, err := c.AddFeed(ctx, "https://b.test/rss"); err != nil {
		t.Fatalf("AddFeed: %v", err)
	}

	outcomes, err := c.SyncAll(ctx)
	if err != nil {
		t.Fatalf("SyncAll: %v", err)
	}
	if len(outcomes) != 2 {
		t.Errorf("got %d outcomes, want 2", len(outcomes))
	}

	if err := c.RemoveFeed(ctx, feedA.ID); err != nil {
		t.Fatalf("RemoveFeed: %v", err)
	}
	if _, err := c.GetFeed(ctx, feedA.ID); !IsNotFound(err) {
		t.Errorf("GetFeed after remove: %v", err)
	}

	feeds, _ := c.ListFeeds(ctx)
	if len(feeds) != 1 {
		t.Errorf("feeds = %+v", feeds)
	}
}

func TestAddFeed_InvalidURL(t *testing.T) {
	c := newTestClient(t, &stubFetcher{})

	_, err := c.AddFeed(context.Background(), "not a url")
	if !IsInvalidInput(err) {
		t.Errorf("err = %v, want invalid input", err)
	}
}
