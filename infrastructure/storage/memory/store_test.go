package memory

import (
	"context"
	"testing"

	"feedsync/core/domain"
	"feedsync/core/errors"
)

func seedFeed(t *testing.T, s *Store, id, url string, entries ...domain.Entry) *domain.Feed {
	t.Helper()
	feed := &domain.Feed{ID: id, URL: url, Title: "Feed " + id, CreatedAt: 1000, UpdatedAt: 1000}
	if err := s.AddFeed(context.Background(), feed, entries); err != nil {
		t.Fatalf("AddFeed(%s): %v", id, err)
	}
	return feed
}

func TestGetFeed_Unknown(t *testing.T) {
	s := NewStore()

	_, err := s.GetFeed(context.Background(), "nope")
	if !errors.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestAddFeed_RoundTrips(t *testing.T) {
	s := NewStore()
	seedFeed(t, s, "f1", "https://x.test/rss",
		domain.Entry{ID: "e1", FeedID: "f1", NaturalID: "g1", PublishedAt: 100, FirstSeenAt: 1000})

	feed, err := s.GetFeed(context.Background(), "f1")
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}
	if feed.URL != "https://x.test/rss" {
		t.Errorf("URL = %q", feed.URL)
	}

	entries, err := s.ListEntries(context.Background(), "f1", true)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].NaturalID != "g1" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestAddFeed_RejectsDuplicateURL(t *testing.T) {
	s := NewStore()
	seedFeed(t, s, "f1", "https://x.test/rss")

	err := s.AddFeed(context.Background(), &domain.Feed{ID: "f2", URL: "https://x.test/rss"}, nil)
	if !errors.IsStorage(err) {
		t.Errorf("error = %v, want StorageError", err)
	}
}

func TestUpsertEntries_DedupsOnWrite(t *testing.T) {
	s := NewStore()
	seedFeed(t, s, "f1", "https://x.test/rss",
		domain.Entry{ID: "e1", FeedID: "f1", NaturalID: "g1", Title: "Original", PublishedAt: 100, FirstSeenAt: 1000})

	// Same natural id again plus one new entry: only the new one lands,
	// and the stored fields stay frozen.
	n, err := s.UpsertEntries(context.Background(), "f1", []domain.Entry{
		{ID: "e9", FeedID: "f1", NaturalID: "g1", Title: "Overwrite attempt", PublishedAt: 999},
		{ID: "e2", FeedID: "f1", NaturalID: "g2", Title: "New", PublishedAt: 200, FirstSeenAt: 1001},
	})
	if err != nil {
		t.Fatalf("UpsertEntries: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want 1", n)
	}

	entries, _ := s.ListEntries(context.Background(), "f1", true)
	if len(entries) != 2 {
		t.Fatalf("stored %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.NaturalID == "g1" && e.Title != "Original" {
			t.Errorf("g1 title overwritten to %q", e.Title)
		}
	}
}

func TestUpsertEntries_UnknownFeed(t *testing.T) {
	s := NewStore()

	_, err := s.UpsertEntries(context.Background(), "nope", nil)
	if !errors.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestListEntries_OrderAndFilter(t *testing.T) {
	s := NewStore()
	seedFeed(t, s, "f1", "https://x.test/rss",
		domain.Entry{ID: "e1", FeedID: "f1", NaturalID: "g1", PublishedAt: 100, FirstSeenAt: 1000},
		domain.Entry{ID: "e2", FeedID: "f1", NaturalID: "g2", PublishedAt: 200, FirstSeenAt: 1000},
		domain.Entry{ID: "e3", FeedID: "f1", NaturalID: "g3", PublishedAt: 200, FirstSeenAt: 2000})

	entries, err := s.ListEntries(context.Background(), "f1", true)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	want := []string{"g3", "g2", "g1"}
	for i, w := range want {
		if entries[i].NaturalID != w {
			t.Fatalf("order[%d] = %q, want %q", i, entries[i].NaturalID, w)
		}
	}

	filtered, _ := s.ListEntries(context.Background(), "f1", false)
	if len(filtered) != 0 {
		t.Errorf("approved-only view has %d entries, want 0", len(filtered))
	}
}

func TestSetEntryApproved(t *testing.T) {
	s := NewStore()
	seedFeed(t, s, "f1", "https://x.test/rss",
		domain.Entry{ID: "e1", FeedID: "f1", NaturalID: "g1", PublishedAt: 100})

	if err := s.SetEntryApproved(context.Background(), "f1", "e1", true); err != nil {
		t.Fatalf("SetEntryApproved: %v", err)
	}

	entries, _ := s.ListEntries(context.Background(), "f1", false)
	if len(entries) != 1 {
		t.Errorf("approved entry not visible in default view")
	}

	err := s.SetEntryApproved(context.Background(), "f1", "missing", true)
	if !errors.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestDeleteFeed_CascadesToEntries(t *testing.T) {
	s := NewStore()
	seedFeed(t, s, "f1", "https://x.test/rss",
		domain.Entry{ID: "e1", FeedID: "f1", NaturalID: "g1", PublishedAt: 100})

	if err := s.DeleteFeed(context.Background(), "f1"); err != nil {
		t.Fatalf("DeleteFeed: %v", err)
	}

	if _, err := s.GetFeed(context.Background(), "f1"); !errors.IsNotFound(err) {
		t.Errorf("feed still present after delete")
	}
	if _, err := s.ListEntries(context.Background(), "f1", true); !errors.IsNotFound(err) {
		t.Errorf("entries still listable after delete")
	}

	// The URL is free again.
	if err := s.AddFeed(context.Background(), &domain.Feed{ID: "f2", URL: "https://x.test/rss"}, nil); err != nil {
		t.Errorf("re-adding deleted URL failed: %v", err)
	}
}

func TestListFeeds_DeterministicOrder(t *testing.T) {
	s := NewStore()
	feedB := &domain.Feed{ID: "b", URL: "https://b.test/rss", CreatedAt: 2000}
	feedA := &domain.Feed{ID: "a", URL: "https://a.test/rss", CreatedAt: 1000}
	_ = s.AddFeed(context.Background(), feedB, nil)
	_ = s.AddFeed(context.Background(), feedA, nil)

	feeds, err := s.ListFeeds(context.Background())
	if err != nil {
		t.Fatalf("ListFeeds: %v", err)
	}
	if len(feeds) != 2 || feeds[0].ID != "a" || feeds[1].ID != "b" {
		t.Errorf("feeds = %+v, want creation order a,b", feeds)
	}
}
