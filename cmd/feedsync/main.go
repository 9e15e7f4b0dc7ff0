// ABOUTME: Main entry point for the feedsync command line tool
// ABOUTME: Wires together storage, cache, fetcher, and services, then dispatches subcommands

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"feedsync/core/interfaces"
	"feedsync/core/syncengine"
	"feedsync/core/views"
	cachememory "feedsync/infrastructure/cache/memory"
	cacheredis "feedsync/infrastructure/cache/redis"
	fetcher "feedsync/infrastructure/fetch/gofeed"
	logrusadapter "feedsync/infrastructure/logger/logrus"
	"feedsync/infrastructure/storage/sqlite"
	"feedsync/pkg/config"
)

const usage = `usage: feedsync <command> [arguments]

commands:
  add <url>                   register a feed and run an initial sync
  feeds [id]                  list all feeds, or describe one feed by ID
  entries <feed-id> [-all]    list a feed's approved entries (-all includes unapproved)
  timeline [-all]             list approved entries across all feeds
  sync <feed-id>              re-fetch one feed
  sync-all                    re-fetch every feed
  approve <feed-id> <entry-id>  mark an entry as approved
  remove <feed-id>            delete a feed and its entries
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	loggerOpts := []logrusadapter.Option{logrusadapter.WithLevel(cfg.Log.Level)}
	if cfg.Log.File != "" {
		loggerOpts = append(loggerOpts, logrusadapter.WithFile(cfg.Log.File))
	}
	logger := logrusadapter.NewLogger(loggerOpts...)

	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, ".feedsync", "data.sqlite3")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	store, err := sqlite.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cacheredis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Warn("Failed to connect to Redis, falling back to memory cache", map[string]interface{}{
				"error": err.Error(),
			})
			cache = cachememory.NewMemoryCache()
		} else {
			cache = redisCache
		}
	case "memory":
		cache = cachememory.NewMemoryCache()
	}

	fetchOpts := []fetcher.Option{
		fetcher.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second),
	}
	if cache != nil {
		fetchOpts = append(fetchOpts, fetcher.WithCache(cache))
	}
	if cfg.Fetch.RequestsPerSecond > 0 {
		fetchOpts = append(fetchOpts, fetcher.WithRateLimit(cfg.Fetch.RequestsPerSecond))
	}

	deps := interfaces.Dependencies{
		Storage: store,
		Fetcher: fetcher.NewFetcher(fetchOpts...),
		Logger:  logger,
	}

	engine := syncengine.NewService(deps, syncengine.WithWorkers(cfg.Fetch.Workers))
	reader := views.NewService(deps)

	if err := dispatch(context.Background(), engine, reader, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "feedsync: %v\n", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, engine *syncengine.Service, reader *views.Service, command string, args []string, out io.Writer) error {
	switch command {
	case "add":
		if len(args) != 1 {
			return fmt.Errorf("usage: feedsync add <url>")
		}
		return handleAddFeed(ctx, engine, args[0], out)
	case "feeds":
		if len(args) > 1 {
			return fmt.Errorf("usage: feedsync feeds [id]")
		}
		if len(args) == 1 {
			return handleDescribeFeed(ctx, engine, args[0], out)
		}
		return handleListFeeds(ctx, engine, out)
	case "entries":
		feedID, includeUnapproved, err := parseEntriesArgs(args)
		if err != nil {
			return err
		}
		return handleListEntries(ctx, reader, feedID, includeUnapproved, out)
	case "timeline":
		includeUnapproved, err := parseAllFlag(args)
		if err != nil {
			return fmt.Errorf("usage: feedsync timeline [-all]")
		}
		return handleTimeline(ctx, reader, includeUnapproved, out)
	case "sync":
		if len(args) != 1 {
			return fmt.Errorf("usage: feedsync sync <feed-id>")
		}
		return handleSync(ctx, engine, args[0], out)
	case "sync-all":
		if len(args) != 0 {
			return fmt.Errorf("usage: feedsync sync-all")
		}
		return handleSyncAll(ctx, engine, out)
	case "approve":
		if len(args) != 2 {
			return fmt.Errorf("usage: feedsync approve <feed-id> <entry-id>")
		}
		return handleApprove(ctx, engine, args[0], args[1], out)
	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: feedsync remove <feed-id>")
		}
		return handleRemoveFeed(ctx, engine, args[0], out)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func parseEntriesArgs(args []string) (feedID string, includeUnapproved bool, err error) {
	var rest []string
	for _, arg := range args {
		if arg == "-all" || arg == "--all" {
			includeUnapproved = true
			continue
		}
		rest = append(rest, arg)
	}
	if len(rest) != 1 {
		return "", false, fmt.Errorf("usage: feedsync entries <feed-id> [-all]")
	}
	return rest[0], includeUnapproved, nil
}

func parseAllFlag(args []string) (bool, error) {
	switch {
	case len(args) == 0:
		return false, nil
	case len(args) == 1 && (args[0] == "-all" || args[0] == "--all"):
		return true, nil
	default:
		return false, fmt.Errorf("unexpected arguments")
	}
}
