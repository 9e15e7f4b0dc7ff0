package gofeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"feedsync/core/errors"
	cachememory "feedsync/infrastructure/cache/memory"
)

const rssSample = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Example Feed</title>
	<description>Things that happened</description>
	<item>
		<guid>urn:example:1</guid>
		<title>First post</title>
		<link>https://example.test/1</link>
		<description>Hello</description>
		<pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
	</item>
	<item>
		<title>No guid here</title>
		<link>https://example.test/2</link>
	</item>
</channel>
</rss>`

const atomSample = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom Feed</title>
	<entry>
		<id>urn:atom:1</id>
		<title>Atom entry</title>
		<link href="https://atom.test/1"/>
		<updated>2024-05-01T10:00:00Z</updated>
	</entry>
</feed>`

func serveBody(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetch_ParsesRSS(t *testing.T) {
	srv := serveBody(http.StatusOK, rssSample)
	defer srv.Close()

	f := NewFetcher()
	parsed, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if parsed.Title != "Example Feed" || parsed.Description != "Things that happened" {
		t.Errorf("feed metadata = %q / %q", parsed.Title, parsed.Description)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(parsed.Entries))
	}

	first := parsed.Entries[0]
	if first.GUID != "urn:example:1" || first.Link != "https://example.test/1" {
		t.Errorf("first entry identifiers = %+v", first)
	}
	if first.Title != "First post" || first.Summary != "Hello" {
		t.Errorf("first entry content = %+v", first)
	}
	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC).Unix()
	if first.PublishedAt != want {
		t.Errorf("PublishedAt = %d, want %d", first.PublishedAt, want)
	}

	second := parsed.Entries[1]
	if second.GUID != "" || second.Link != "https://example.test/2" {
		t.Errorf("second entry identifiers = %+v", second)
	}
	if second.PublishedAt != 0 {
		t.Errorf("missing pubDate should map to zero, got %d", second.PublishedAt)
	}
}

func TestFetch_ParsesAtom(t *testing.T) {
	srv := serveBody(http.StatusOK, atomSample)
	defer srv.Close()

	f := NewFetcher()
	parsed, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(parsed.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(parsed.Entries))
	}
	e := parsed.Entries[0]
	if e.GUID != "urn:atom:1" {
		t.Errorf("GUID = %q", e.GUID)
	}
	// Atom has no published element here; updated fills in.
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Unix()
	if e.PublishedAt != want {
		t.Errorf("PublishedAt = %d, want %d", e.PublishedAt, want)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		srv := serveBody(status, "gone")

		f := NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)
		srv.Close()

		if !errors.IsFetch(err) {
			t.Fatalf("status %d: error = %v, want FetchError", status, err)
		}
		if kind := errors.FetchKind(err); kind != errors.FetchNetwork {
			t.Errorf("status %d: kind = %q, want network", status, kind)
		}
	}
}

func TestFetch_UnparseableBody(t *testing.T) {
	srv := serveBody(http.StatusOK, "this is not a feed")
	defer srv.Close()

	f := NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	if errors.FetchKind(err) != errors.FetchUnparseable {
		t.Errorf("error = %v, want unparseable FetchError", err)
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewFetcher(WithTimeout(20 * time.Millisecond))
	_, err := f.Fetch(context.Background(), srv.URL)
	if errors.FetchKind(err) != errors.FetchTimeout {
		t.Errorf("error = %v, want timeout FetchError", err)
	}
}

func TestFetch_UnreachableHost(t *testing.T) {
	f := NewFetcher(WithTimeout(time.Second))
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/feed.xml")
	if errors.FetchKind(err) != errors.FetchNetwork {
		t.Errorf("error = %v, want network FetchError", err)
	}
}

func TestFetch_UsesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(rssSample))
	}))
	defer srv.Close()

	f := NewFetcher(WithCache(cachememory.NewMemoryCache()))

	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}
