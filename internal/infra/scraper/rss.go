// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"techpulse/internal/domain/entity"
	"techpulse/internal/resilience/circuitbreaker"
	"techpulse/internal/usecase/pipeline"
	"techpulse/internal/utils/text"
)

// defaultUserAgent identifies the aggregator to feed servers.
const defaultUserAgent = "TechPulseBot/1.0"

// RSSFetcher implements pipeline.FeedFetcher using the gofeed library.
//
// Each feed source gets its own circuit breaker so a persistently broken
// feed stops being hammered across runs without affecting the others.
// Within a run there is exactly one fetch attempt per source; the timeout
// comes from the HTTP client and the caller's context.
type RSSFetcher struct {
	client    *http.Client
	userAgent string

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// An empty userAgent falls back to the default.
func NewRSSFetcher(client *http.Client, userAgent string) *RSSFetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &RSSFetcher{
		client:    client,
		userAgent: userAgent,
		breakers:  make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// Fetch retrieves and parses the feed of one source in a single attempt.
// Returns the feed entries in document order.
func (f *RSSFetcher) Fetch(ctx context.Context, source *entity.FeedSource) ([]pipeline.FeedItem, error) {
	cb := f.breakerFor(source.Name)

	result, err := cb.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, source.URL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("feed fetch circuit breaker open, request rejected",
				slog.String("source", source.Name),
				slog.String("url", source.URL),
				slog.String("state", cb.State().String()))
		}
		return nil, err
	}

	return result.([]pipeline.FeedItem), nil
}

// breakerFor returns the circuit breaker for a source, creating it on
// first use.
func (f *RSSFetcher) breakerFor(sourceName string) *circuitbreaker.CircuitBreaker {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cb, ok := f.breakers[sourceName]; ok {
		return cb
	}
	cfg := circuitbreaker.FeedFetchConfig()
	cfg.Name = "feed-fetch:" + sourceName
	cb := circuitbreaker.New(cfg)
	f.breakers[sourceName] = cb
	return cb
}

// doFetch performs the actual feed fetch without the circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]pipeline.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = f.userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]pipeline.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		var pubAt *time.Time
		if it.PublishedParsed != nil {
			t := *it.PublishedParsed
			pubAt = &t
		}

		// Description preferred; some feeds only carry Content.
		// Missing fields become empty strings, never nil.
		description := it.Description
		if description == "" {
			description = it.Content
		}

		var author string
		if len(it.Authors) > 0 && it.Authors[0] != nil {
			author = it.Authors[0].Name
		}

		items = append(items, pipeline.FeedItem{
			Title:       it.Title,
			Description: text.StripHTML(description),
			Link:        it.Link,
			Author:      author,
			PublishedAt: pubAt,
		})
	}

	return items, nil
}
