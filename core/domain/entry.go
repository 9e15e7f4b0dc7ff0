// ABOUTME: Entry domain model represents one article belonging to a feed
// ABOUTME: Derives the per-feed natural identifier used as the dedup key

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Entry represents an individual item/article belonging to exactly one feed.
// Entries are immutable after insert except for the Approved flag.
type Entry struct {
	// ID is the unique identifier for the entry (a UUID)
	ID string

	// FeedID references the owning feed
	FeedID string

	// NaturalID is the per-feed dedup key derived from the source.
	// (FeedID, NaturalID) is unique.
	NaturalID string

	// Title is the entry's headline
	Title string

	// Link is the URL to the full article
	Link string

	// Summary contains the entry's description or summary text
	Summary string

	// PublishedAt is the publication Unix time. Entries whose source
	// omits a timestamp carry their ingestion time instead.
	PublishedAt int64

	// Approved gates whether the entry appears in default read views.
	// Always false on first insert; syncs never change it.
	Approved bool

	// FirstSeenAt is the ingestion Unix time, immutable
	FirstSeenAt int64
}

// ParsedFeed is the normalized result of fetching and parsing a source
// document. It is what the fetch capability hands to the sync engine.
type ParsedFeed struct {
	// Title is the feed-level title, empty if the source omits one
	Title string

	// Description is the feed-level description, if any
	Description string

	// Entries holds the candidate entries in source document order
	Entries []CandidateEntry
}

// CandidateEntry is a freshly parsed item that has not yet been merged
// against stored state.
type CandidateEntry struct {
	// GUID is the source's globally-stable identifier, if present
	GUID string

	// Link is the article URL, if present
	Link string

	// Title is the item's headline
	Title string

	// Summary is the item's description text
	Summary string

	// PublishedAt is the publication Unix time, zero if absent
	PublishedAt int64
}

// NaturalID derives the candidate's per-feed dedup key with priority
// guid, then link, then a hash of title and publish time. The first
// present value wins, which keeps identity stable for feeds that omit
// guids.
func (c CandidateEntry) NaturalID() string {
	if c.GUID != "" {
		return c.GUID
	}
	if c.Link != "" {
		return c.Link
	}
	return hashIdentity(c.Title, c.PublishedAt)
}

// hashIdentity fingerprints a title and publish time. The NUL separator
// keeps adjacent fields from colliding across different splits.
func hashIdentity(title string, publishedAt int64) string {
	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(publishedAt, 10)))
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}
