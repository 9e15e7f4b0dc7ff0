// ABOUTME: Merge/dedup step turning fetched candidates into insertable entries
// ABOUTME: Known identifiers are discarded; history freezes at first ingestion

package syncengine

import "feedsync/core/domain"

// buildNewEntries partitions candidates by natural identifier against the
// set already stored for the feed and materializes only the new ones.
// Known candidates are dropped wholesale: sources may "correct" old
// items, but stored fields stay frozen at first ingestion so timelines
// remain stable. Source document order is preserved, and a candidate
// repeated within one batch is kept once (first occurrence wins).
//
// Running the merge twice with an unchanged source is therefore
// idempotent: the second pass produces nothing.
func (s *Service) buildNewEntries(feedID string, candidates []domain.CandidateEntry, existing map[string]struct{}, now int64) []domain.Entry {
	entries := make([]domain.Entry, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		naturalID := c.NaturalID()
		if _, ok := existing[naturalID]; ok {
			continue
		}
		if _, ok := seen[naturalID]; ok {
			continue
		}
		seen[naturalID] = struct{}{}

		publishedAt := c.PublishedAt
		if publishedAt == 0 {
			publishedAt = now
		}

		entries = append(entries, domain.Entry{
			ID:          s.newID(),
			FeedID:      feedID,
			NaturalID:   naturalID,
			Title:       c.Title,
			Link:        c.Link,
			Summary:     c.Summary,
			PublishedAt: publishedAt,
			Approved:    false,
			FirstSeenAt: now,
		})
	}

	return entries
}
