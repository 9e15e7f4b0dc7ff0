// ABOUTME: Feed fetcher that downloads documents over HTTP and parses them with gofeed
// ABOUTME: Supports optional response caching and outbound rate limiting

package gofeed

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"feedsync/core/domain"
	"feedsync/core/errors"
	"feedsync/core/interfaces"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "FeedSync/1.0"
	cacheTTL       = 5 * time.Minute

	// maxBodySize caps how much of a response we are willing to read.
	maxBodySize = 10 << 20
)

// Fetcher downloads feed documents and parses them into the domain model
type Fetcher struct {
	client  *http.Client
	cache   interfaces.Cache
	limiter *rate.Limiter
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithTimeout sets the HTTP request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = timeout
	}
}

// WithCache enables caching of fetched documents
func WithCache(cache interfaces.Cache) Option {
	return func(f *Fetcher) {
		f.cache = cache
	}
}

// WithRateLimit caps outbound requests per second across all feeds
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewFetcher creates a feed fetcher with the given options
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads and parses the feed at the given URL
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*domain.ParsedFeed, error) {
	body, err := f.fetchBody(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &errors.FetchError{URL: feedURL, Kind: errors.FetchUnparseable, Err: err}
	}

	return convertFeed(parsed), nil
}

// fetchBody returns the raw document, from cache when possible
func (f *Fetcher) fetchBody(ctx context.Context, feedURL string) ([]byte, error) {
	key := "feedsync:body:" + feedURL
	if f.cache != nil {
		if data, err := f.cache.Get(ctx, key); err == nil && len(data) > 0 {
			return data, nil
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &errors.FetchError{URL: feedURL, Kind: errors.FetchNetwork, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &errors.FetchError{URL: feedURL, Kind: errors.FetchNetwork, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &errors.FetchError{URL: feedURL, Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.FetchError{
			URL:  feedURL,
			Kind: errors.FetchNetwork,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &errors.FetchError{URL: feedURL, Kind: classifyTransportError(err), Err: err}
	}

	if f.cache != nil {
		// Cache failures never fail the fetch.
		_ = f.cache.Set(ctx, key, body, cacheTTL)
	}
	return body, nil
}

// classifyTransportError separates timeouts from other network failures
func classifyTransportError(err error) errors.FetchErrorKind {
	var urlErr *url.Error
	if goerrors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.FetchTimeout
	}
	if timeoutErr, ok := err.(interface{ Timeout() bool }); ok && timeoutErr.Timeout() {
		return errors.FetchTimeout
	}
	return errors.FetchNetwork
}

// convertFeed maps a parsed gofeed document onto the domain model
func convertFeed(feed *gofeed.Feed) *domain.ParsedFeed {
	result := &domain.ParsedFeed{
		Title:       feed.Title,
		Description: feed.Description,
		Entries:     make([]domain.CandidateEntry, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		result.Entries = append(result.Entries, domain.CandidateEntry{
			GUID:        item.GUID,
			Link:        item.Link,
			Title:       item.Title,
			Summary:     item.Description,
			PublishedAt: itemTimestamp(item),
		})
	}
	return result
}

// itemTimestamp prefers the published time, falls back to updated, and
// reports zero when the source provides neither
func itemTimestamp(item *gofeed.Item) int64 {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Unix()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.Unix()
	}
	return 0
}
