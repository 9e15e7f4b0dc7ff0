// Package core contains the business logic for FeedSync.
// It is designed to be framework-agnostic and can be used independently
// of any CLI, FFI surface, or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Feed, Entry, ParsedFeed)
// - syncengine: Feed registration and synchronization service
// - views: Read-side queries over stored entries
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (storage, fetcher, cache, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "feedsync/core/interfaces"
//	    "feedsync/core/syncengine"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Storage: myStorage, // implements interfaces.Storage
//	    Fetcher: myFetcher, // implements interfaces.Fetcher
//	    Logger:  myLogger,  // implements interfaces.Logger
//	}
//
//	// Create service
//	engine := syncengine.NewService(deps)
//
//	// Register and sync a feed
//	feed, err := engine.AddFeed(ctx, "https://example.com/feed.rss")
package core
