// ABOUTME: Subcommand handlers for the feedsync CLI writing to an io.Writer
// ABOUTME: Keeps output rendering separate from wiring so it can be tested directly

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"feedsync/core/domain"
	"feedsync/core/syncengine"
	"feedsync/core/views"
)

const noValue = "-"

// formatTimestamp renders a Unix timestamp in UTC
func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}

func orDash(s string) string {
	if s == "" {
		return noValue
	}
	return s
}

// handleDescribeFeed prints all fields for a single feed in a
// right-aligned key-value layout:
//
//	         ID: 550e8400-e29b-41d4-a716-446655440000
//	        URL: https://example.com/rss
//	      Title: My Blog
//	Description: A blog about things
//	Last Synced: 2026-02-16 12:00:00
//	    Created: 2026-02-15 08:30:00
//	    Updated: 2026-02-16 12:00:00
func handleDescribeFeed(ctx context.Context, engine *syncengine.Service, feedID string, out io.Writer) error {
	feed, err := engine.GetFeed(ctx, feedID)
	if err != nil {
		return err
	}

	lastSynced := noValue
	if feed.LastSyncedAt != 0 {
		lastSynced = formatTimestamp(feed.LastSyncedAt)
	}

	fmt.Fprintf(out, "%12s: %s\n", "ID", feed.ID)
	fmt.Fprintf(out, "%12s: %s\n", "URL", feed.URL)
	fmt.Fprintf(out, "%12s: %s\n", "Title", orDash(feed.Title))
	fmt.Fprintf(out, "%12s: %s\n", "Description", orDash(feed.Description))
	fmt.Fprintf(out, "%12s: %s\n", "Last Synced", lastSynced)
	fmt.Fprintf(out, "%12s: %s\n", "Created", formatTimestamp(feed.CreatedAt))
	fmt.Fprintf(out, "%12s: %s\n", "Updated", formatTimestamp(feed.UpdatedAt))
	return nil
}

func handleAddFeed(ctx context.Context, engine *syncengine.Service, url string, out io.Writer) error {
	feed, err := engine.AddFeed(ctx, url)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added feed %s (%s)\n", feed.ID, feed.URL)
	return nil
}

func handleListFeeds(ctx context.Context, engine *syncengine.Service, out io.Writer) error {
	feeds, err := engine.ListFeeds(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, len(feeds))
	for i, f := range feeds {
		rows[i] = []string{f.ID, f.URL}
	}
	return writeTable([]string{"ID", "URL"}, rows, out)
}

func handleListEntries(ctx context.Context, reader *views.Service, feedID string, includeUnapproved bool, out io.Writer) error {
	entries, err := reader.ListEntries(ctx, feedID, includeUnapproved)
	if err != nil {
		return err
	}
	return writeEntryTable(entries, out)
}

func handleTimeline(ctx context.Context, reader *views.Service, includeUnapproved bool, out io.Writer) error {
	entries, err := reader.Timeline(ctx, includeUnapproved)
	if err != nil {
		return err
	}
	return writeEntryTable(entries, out)
}

func writeEntryTable(entries []domain.Entry, out io.Writer) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		published := ""
		if e.PublishedAt != 0 {
			published = formatTimestamp(e.PublishedAt)
		}
		rows[i] = []string{e.ID, e.Title, published, e.Link}
	}
	return writeTable([]string{"ID", "Title", "Published", "Link"}, rows, out)
}

func handleSync(ctx context.Context, engine *syncengine.Service, feedID string, out io.Writer) error {
	result, err := engine.Sync(ctx, feedID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "synced feed %s: %d new entries\n", result.FeedID, result.NewEntries)
	return nil
}

func handleSyncAll(ctx context.Context, engine *syncengine.Service, out io.Writer) error {
	results, err := engine.SyncAll(ctx)
	if err != nil {
		return err
	}

	failures := 0
	for _, r := range results {
		if r.Err != nil {
			failures++
			fmt.Fprintf(out, "failed to sync %s: %v\n", r.FeedURL, r.Err)
		}
	}
	if failures > 0 {
		fmt.Fprintf(out, "synced %d of %d feeds\n", len(results)-failures, len(results))
		return nil
	}
	fmt.Fprintln(out, "all feeds synced")
	return nil
}

func handleApprove(ctx context.Context, engine *syncengine.Service, feedID, entryID string, out io.Writer) error {
	if err := engine.SetEntryApproved(ctx, feedID, entryID, true); err != nil {
		return err
	}
	fmt.Fprintf(out, "approved entry %s\n", entryID)
	return nil
}

func handleRemoveFeed(ctx context.Context, engine *syncengine.Service, feedID string, out io.Writer) error {
	if err := engine.RemoveFeed(ctx, feedID); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed feed %s\n", feedID)
	return nil
}
