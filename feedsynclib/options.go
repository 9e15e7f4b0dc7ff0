// ABOUTME: Configuration options for the FeedSync library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package feedsynclib

import (
	"feedsync/core/interfaces"
	fetcher "feedsync/infrastructure/fetch/gofeed"
	"feedsync/infrastructure/storage/memory"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithStorage sets a custom storage backend
func WithStorage(storage interfaces.Storage) Option {
	return func(c *Config) error {
		c.Storage = storage
		return nil
	}
}

// WithFetcher sets a custom feed fetcher
func WithFetcher(f interfaces.Fetcher) Option {
	return func(c *Config) error {
		c.Fetcher = f
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithSyncWorkers caps how many feeds SyncAll fetches concurrently
func WithSyncWorkers(n int) Option {
	return func(c *Config) error {
		c.SyncWorkers = n
		return nil
	}
}

// defaultConfig returns the default client configuration: in-memory
// storage and a plain HTTP fetcher
func defaultConfig() Config {
	return Config{
		Storage:     memory.NewStore(),
		Fetcher:     fetcher.NewFetcher(),
		Logger:      nil,
		SyncWorkers: 8,
	}
}
