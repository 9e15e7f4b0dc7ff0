// ABOUTME: Main client for the FeedSync library providing feed synchronization and read views
// ABOUTME: Offers a clean API for embedding the engine without any server dependencies

package feedsynclib

import (
	"context"

	"feedsync/core/interfaces"
	"feedsync/core/syncengine"
	"feedsync/core/views"
)

// Client is the main entry point for the FeedSync library
type Client struct {
	engine *syncengine.Service
	views  *views.Service

	deps   interfaces.Dependencies
	config Config
}

// Config holds the configuration for the client
type Config struct {
	// Storage persists feeds and entries
	Storage interfaces.Storage

	// Fetcher downloads and parses feed documents
	Fetcher interfaces.Fetcher

	// Logger configuration (optional)
	Logger interfaces.Logger

	// SyncWorkers caps concurrent feed syncs in SyncAll
	SyncWorkers int
}

// NewClient creates a new FeedSync client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Storage: config.Storage,
		Fetcher: config.Fetcher,
		Logger:  config.Logger,
	}

	return &Client{
		engine: syncengine.NewService(deps, syncengine.WithWorkers(config.SyncWorkers)),
		views:  views.NewService(deps),
		deps:   deps,
		config: config,
	}, nil
}

// AddFeed registers a feed URL, performing an initial fetch and sync
func (c *Client) AddFeed(ctx context.Context, url string) (*Feed, error) {
	feed, err := c.engine.AddFeed(ctx, url)
	if err != nil {
		return nil, err
	}
	return domainFeedToPublic(feed), nil
}

// ListFeeds returns all registered feeds
func (c *Client) ListFeeds(ctx context.Context) ([]*Feed, error) {
	domainFeeds, err := c.engine.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}

	feeds := make([]*Feed, len(domainFeeds))
	for i := range domainFeeds {
		feeds[i] = domainFeedToPublic(&domainFeeds[i])
	}
	return feeds, nil
}

// GetFeed returns one feed by ID
func (c *Client) GetFeed(ctx context.Context, feedID string) (*Feed, error) {
	feed, err := c.engine.GetFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	return domainFeedToPublic(feed), nil
}

// RemoveFeed deletes a feed and all of its entries
func (c *Client) RemoveFeed(ctx context.Context, feedID string) error {
	return c.engine.RemoveFeed(ctx, feedID)
}

// Sync re-fetches one feed and merges any new entries
func (c *Client) Sync(ctx context.Context, feedID string) (*SyncOutcome, error) {
	result, err := c.engine.Sync(ctx, feedID)
	if err != nil {
		return nil, err
	}
	return syncResultToPublic(result), nil
}

// SyncAll syncs every registered feed concurrently. Individual feed
// failures are reported per feed and never abort the batch.
func (c *Client) SyncAll(ctx context.Context) ([]*SyncOutcome, error) {
	results, err := c.engine.SyncAll(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]*SyncOutcome, len(results))
	for i := range results {
		outcomes[i] = syncResultToPublic(&results[i])
	}
	return outcomes, nil
}

// ListEntries returns a feed's entries, newest first. Unapproved
// entries are included only when includeUnapproved is set.
func (c *Client) ListEntries(ctx context.Context, feedID string, includeUnapproved bool) ([]*Entry, error) {
	domainEntries, err := c.views.ListEntries(ctx, feedID, includeUnapproved)
	if err != nil {
		return nil, err
	}
	return entriesToPublic(domainEntries), nil
}

// Timeline returns entries across all feeds, newest first
func (c *Client) Timeline(ctx context.Context, includeUnapproved bool) ([]*Entry, error) {
	domainEntries, err := c.views.Timeline(ctx, includeUnapproved)
	if err != nil {
		return nil, err
	}
	return entriesToPublic(domainEntries), nil
}

// ApproveEntry marks an entry as approved so it appears in default views
func (c *Client) ApproveEntry(ctx context.Context, feedID, entryID string) error {
	return c.engine.SetEntryApproved(ctx, feedID, entryID, true)
}

// UnapproveEntry clears an entry's approved flag
func (c *Client) UnapproveEntry(ctx context.Context, feedID, entryID string) error {
	return c.engine.SetEntryApproved(ctx, feedID, entryID, false)
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.Storage == nil {
		return ErrStorageRequired
	}
	if config.Fetcher == nil {
		return ErrFetcherRequired
	}
	if config.SyncWorkers < 1 {
		return ErrInvalidWorkerCount
	}
	return nil
}
