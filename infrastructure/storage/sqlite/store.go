// ABOUTME: SQLite-backed Storage implementation for durable persistence
// ABOUTME: Single-connection access serializes writes; dedup enforced by schema

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"feedsync/core/domain"
	"feedsync/core/errors"

	_ "github.com/mattn/go-sqlite3"
)

// Store implements the Storage interface using SQLite. The connection
// pool is capped at one connection so storage access is mutually
// exclusive and readers never observe a partially written batch.
type Store struct {
	db       *sql.DB
	filePath string
}

// NewStore opens (or creates) the database at filePath and initializes
// the schema
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "feedsync.db"
	}

	db, err := sql.Open("sqlite3", filePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	store := &Store{db: db, filePath: filePath}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// NewMemoryStore opens a throwaway in-memory database, for tests
func NewMemoryStore() (*Store, error) {
	return NewStore(":memory:")
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates the tables if they don't exist
func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS feeds (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			last_synced_at INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			feed_id TEXT NOT NULL REFERENCES feeds(id) ON DELETE CASCADE,
			natural_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			published_at INTEGER NOT NULL,
			approved INTEGER NOT NULL DEFAULT 0,
			first_seen_at INTEGER NOT NULL,
			UNIQUE(feed_id, natural_id)
		);
		CREATE INDEX IF NOT EXISTS idx_entries_feed_order
			ON entries(feed_id, published_at DESC, first_seen_at DESC);
	`

	_, err := s.db.Exec(query)
	return err
}

const feedColumns = "id, url, title, description, last_synced_at, created_at, updated_at"

func scanFeed(row interface{ Scan(...interface{}) error }) (*domain.Feed, error) {
	var f domain.Feed
	err := row.Scan(&f.ID, &f.URL, &f.Title, &f.Description, &f.LastSyncedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFeeds returns every tracked feed
func (s *Store) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+feedColumns+" FROM feeds ORDER BY created_at, id")
	if err != nil {
		return nil, &errors.StorageError{Op: "list_feeds", Err: err}
	}
	defer rows.Close()

	var feeds []domain.Feed
	for rows.Next() {
		f, err := scanFeed(rows)
		if err != nil {
			return nil, &errors.StorageError{Op: "list_feeds", Err: err}
		}
		feeds = append(feeds, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.StorageError{Op: "list_feeds", Err: err}
	}
	return feeds, nil
}

// GetFeed retrieves one feed by ID
func (s *Store) GetFeed(ctx context.Context, id string) (*domain.Feed, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+feedColumns+" FROM feeds WHERE id = ?", id)
	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, &errors.NotFoundError{Resource: "feed", ID: id}
	}
	if err != nil {
		return nil, &errors.StorageError{Op: "get_feed", Err: err}
	}
	return feed, nil
}

// AddFeed persists a feed and its initial entries in one transaction
func (s *Store) AddFeed(ctx context.Context, feed *domain.Feed, entries []domain.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &errors.StorageError{Op: "add_feed", Err: err}
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO feeds ("+feedColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		feed.ID, feed.URL, feed.Title, feed.Description, feed.LastSyncedAt, feed.CreatedAt, feed.UpdatedAt)
	if err != nil {
		return &errors.StorageError{Op: "add_feed", Err: err}
	}

	if _, err := insertEntriesTx(ctx, tx, entries); err != nil {
		return &errors.StorageError{Op: "add_feed", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &errors.StorageError{Op: "add_feed", Err: err}
	}
	return nil
}

// insertEntriesTx inserts entries inside tx, ignoring duplicates on the
// (feed_id, natural_id) unique key, and reports how many went in
func insertEntriesTx(ctx context.Context, tx *sql.Tx, entries []domain.Entry) (int, error) {
	inserted := 0
	for _, e := range entries {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO entries
				(id, feed_id, natural_id, title, link, summary, published_at, approved, first_seen_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.FeedID, e.NaturalID, e.Title, e.Link, e.Summary, e.PublishedAt, boolToInt(e.Approved), e.FirstSeenAt)
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, nil
}

// UpdateFeedMeta refreshes title, description, and last-synced time
func (s *Store) UpdateFeedMeta(ctx context.Context, feedID, title, description string, syncedAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE feeds SET title = ?, description = ?, last_synced_at = ?, updated_at = ? WHERE id = ?",
		title, description, syncedAt, syncedAt, feedID)
	if err != nil {
		return &errors.StorageError{Op: "update_feed_meta", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &errors.StorageError{Op: "update_feed_meta", Err: err}
	}
	if n == 0 {
		return &errors.NotFoundError{Resource: "feed", ID: feedID}
	}
	return nil
}

// UpsertEntries inserts entries for a feed, deduplicating on write
func (s *Store) UpsertEntries(ctx context.Context, feedID string, entries []domain.Entry) (int, error) {
	if _, err := s.GetFeed(ctx, feedID); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &errors.StorageError{Op: "upsert_entries", Err: err}
	}
	defer tx.Rollback()

	inserted, err := insertEntriesTx(ctx, tx, entries)
	if err != nil {
		return 0, &errors.StorageError{Op: "upsert_entries", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return 0, &errors.StorageError{Op: "upsert_entries", Err: err}
	}
	return inserted, nil
}

// ListEntries returns a feed's entries in the reference order
func (s *Store) ListEntries(ctx context.Context, feedID string, includeUnapproved bool) ([]domain.Entry, error) {
	if _, err := s.GetFeed(ctx, feedID); err != nil {
		return nil, err
	}

	query := `SELECT id, feed_id, natural_id, title, link, summary, published_at, approved, first_seen_at
		FROM entries WHERE feed_id = ?`
	if !includeUnapproved {
		query += " AND approved = 1"
	}
	query += " ORDER BY published_at DESC, first_seen_at DESC, natural_id"

	rows, err := s.db.QueryContext(ctx, query, feedID)
	if err != nil {
		return nil, &errors.StorageError{Op: "list_entries", Err: err}
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var approved int
		err := rows.Scan(&e.ID, &e.FeedID, &e.NaturalID, &e.Title, &e.Link, &e.Summary, &e.PublishedAt, &approved, &e.FirstSeenAt)
		if err != nil {
			return nil, &errors.StorageError{Op: "list_entries", Err: err}
		}
		e.Approved = approved != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.StorageError{Op: "list_entries", Err: err}
	}
	return entries, nil
}

// SetEntryApproved flips an entry's approval flag
func (s *Store) SetEntryApproved(ctx context.Context, feedID, entryID string, approved bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE entries SET approved = ? WHERE feed_id = ? AND id = ?",
		boolToInt(approved), feedID, entryID)
	if err != nil {
		return &errors.StorageError{Op: "set_entry_approved", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &errors.StorageError{Op: "set_entry_approved", Err: err}
	}
	if n == 0 {
		return &errors.NotFoundError{Resource: "entry", ID: entryID}
	}
	return nil
}

// DeleteFeed removes a feed and its entries in one transaction, leaving
// no orphans
func (s *Store) DeleteFeed(ctx context.Context, feedID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &errors.StorageError{Op: "delete_feed", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE feed_id = ?", feedID); err != nil {
		return &errors.StorageError{Op: "delete_feed", Err: err}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", feedID)
	if err != nil {
		return &errors.StorageError{Op: "delete_feed", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &errors.StorageError{Op: "delete_feed", Err: err}
	}
	if n == 0 {
		return &errors.NotFoundError{Resource: "feed", ID: feedID}
	}

	if err := tx.Commit(); err != nil {
		return &errors.StorageError{Op: "delete_feed", Err: err}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
