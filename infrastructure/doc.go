// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as persistence, feed downloading, caching, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - storage/sqlite: SQLite-backed persistence for feeds and entries
// - storage/memory: In-memory persistence for tests and embedding
// - fetch/gofeed: HTTP feed fetcher with RSS/Atom parsing
// - cache/memory: In-process cache for fetched documents
// - cache/redis: Redis-based cache implementation
// - logger/logrus: Structured logger with optional file rotation
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects or functional options
// - Testable: Include both unit and integration tests
// - Production-ready: Include timeouts, rate limits, and error handling
//
// # Storage
//
// SQLite Example:
//
//	store, err := sqlite.NewStore("/var/lib/feedsync/data.sqlite3")
//	if err != nil {
//	    // Handle error
//	}
//	defer store.Close()
//
// # Fetcher
//
// The fetcher downloads documents with a bounded timeout and an optional
// shared rate limit:
//
//	f := gofeed.NewFetcher(
//	    gofeed.WithTimeout(10*time.Second),
//	    gofeed.WithCache(memory.NewMemoryCache()),
//	    gofeed.WithRateLimit(2),
//	)
//	parsed, err := f.Fetch(ctx, "https://example.com/feed.rss")
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.NewLogger(logrus.WithLevel("debug"))
//	logger.Info("synced feed", map[string]interface{}{
//	    "feed_id":     "123",
//	    "new_entries": 3,
//	})
package infrastructure
