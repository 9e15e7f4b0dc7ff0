// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for collaborators required by the core logic

package interfaces

// Dependencies holds the external collaborators required by the core
// business logic. Storage and Fetcher are the two capability contracts
// the engine depends on; Logger may be nil, in which case logging is a
// no-op.
type Dependencies struct {
	// Storage provides durable keeping of feeds and entries
	Storage Storage

	// Fetcher retrieves and parses feed sources
	Fetcher Fetcher

	// Logger provides structured logging
	Logger Logger
}
