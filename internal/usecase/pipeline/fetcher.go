package pipeline

import (
	"context"
	"time"

	"techpulse/internal/domain/entity"
)

// FeedFetcher fetches and parses one feed source into raw items.
// Implementations make a single attempt per call; retrying is the
// caller's decision, and the aggregation run never retries.
type FeedFetcher interface {
	Fetch(ctx context.Context, source *entity.FeedSource) ([]FeedItem, error)
}

// FeedItem is a single entry parsed out of a feed, before normalization.
// Fields missing in the source entry are empty strings, never left to the
// parser's discretion.
type FeedItem struct {
	Title       string
	Description string
	Link        string
	Author      string
	PublishedAt *time.Time
}

// ContentFetcher fetches full article content from a URL.
// Used to enrich thin feed descriptions before matching. Implementations
// must guard against SSRF, oversized bodies, and unbounded redirects.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}
