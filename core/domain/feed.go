// ABOUTME: Feed domain model represents a tracked RSS/Atom source
// ABOUTME: Feeds own their entries; deleting a feed cascades to them

package domain

// Feed represents a tracked RSS or Atom source
type Feed struct {
	// ID is the unique identifier for the feed (a UUID)
	ID string

	// URL is the feed's source URL (the actual RSS/Atom URL)
	URL string

	// Title is the human-readable title, taken from feed metadata
	// or the host portion of the URL when the source omits one
	Title string

	// Description provides a brief description of the feed's content
	Description string

	// LastSyncedAt is the Unix time of the last successful sync,
	// zero if the feed has never been synced
	LastSyncedAt int64

	// CreatedAt is the Unix time the feed was added
	CreatedAt int64

	// UpdatedAt is the Unix time of the last metadata refresh
	UpdatedAt int64
}
