// ABOUTME: Fetch capability contract for retrieving and parsing feed sources
// ABOUTME: Defines the narrow surface the sync engine depends on

package interfaces

import (
	"context"

	"feedsync/core/domain"
)

// Fetcher defines the capability of turning a feed URL into a normalized
// sequence of candidate entries. The engine only ever sees the parsed
// result, never raw HTTP or XML.
//
// Failures are reported as *errors.FetchError with a kind of Network,
// Timeout, or Unparseable.
type Fetcher interface {
	// Fetch retrieves the document at url and parses it. The returned
	// entries preserve source document order.
	Fetch(ctx context.Context, url string) (*domain.ParsedFeed, error)
}
