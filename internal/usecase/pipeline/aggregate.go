package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"techpulse/internal/domain/entity"
	"techpulse/internal/observability/metrics"
)

// fetchAll fans out over every configured source and merges the results.
//
// Each source gets its own goroutine (bounded by Config.MaxConcurrent) and
// writes only to its own slot, so no extra synchronization is needed beyond
// the group wait. The merged article slice preserves source order, and
// within each source the feed's entry order.
func (s *Service) fetchAll(ctx context.Context) ([]*entity.Article, []*FetchError) {
	results := make([][]*entity.Article, len(s.sources))
	failures := make([]*FetchError, len(s.sources))

	// A plain group on purpose: one failing feed must not cancel its
	// siblings, so no goroutine ever returns an error.
	var eg errgroup.Group
	if s.cfg.MaxConcurrent > 0 {
		eg.SetLimit(s.cfg.MaxConcurrent)
	}

	for i, source := range s.sources {
		i, source := i, source
		eg.Go(func() error {
			results[i], failures[i] = s.fetchOne(ctx, source)
			return nil
		})
	}
	_ = eg.Wait()

	merged := make([]*entity.Article, 0, len(s.sources)*8)
	fetchErrs := make([]*FetchError, 0)
	for i := range s.sources {
		if failures[i] != nil {
			fetchErrs = append(fetchErrs, failures[i])
			continue
		}
		merged = append(merged, results[i]...)
	}
	return merged, fetchErrs
}

// fetchOne retrieves a single feed and converts its entries to normalized
// articles. A single attempt per run; on failure the feed is recorded as a
// FetchError and skipped.
func (s *Service) fetchOne(ctx context.Context, source *entity.FeedSource) ([]*entity.Article, *FetchError) {
	logger := slog.Default()

	// Feeds still queued when the run deadline hits are recorded as
	// timed out rather than silently dropped.
	if err := ctx.Err(); err != nil {
		metrics.RecordFeedFetchError(source.Name, classifyFetchError(err))
		return nil, &FetchError{Source: source, Cause: err}
	}

	fetchStart := time.Now()
	items, err := s.fetcher.Fetch(ctx, source)
	duration := time.Since(fetchStart)

	if err != nil {
		metrics.RecordFeedFetchError(source.Name, classifyFetchError(err))
		logger.Warn("failed to fetch feed",
			slog.String("source", source.Name),
			slog.String("feed_url", source.URL),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return nil, &FetchError{Source: source, Cause: err}
	}

	metrics.RecordFeedFetch(source.Name, duration, len(items))

	articles := make([]*entity.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, s.toArticle(ctx, item, source))
	}

	logger.Info("feed fetched",
		slog.String("source", source.Name),
		slog.Int("entries", len(articles)),
		slog.Duration("duration", duration),
	)
	return articles, nil
}

// toArticle maps one raw feed entry to a normalized Article. Missing
// fields become empty strings, source metadata is stamped on, and the
// description may be enriched with full page content.
func (s *Service) toArticle(ctx context.Context, item FeedItem, source *entity.FeedSource) *entity.Article {
	article := &entity.Article{
		Title:       item.Title,
		Description: s.enhanceDescription(ctx, item),
		Link:        item.Link,
		Author:      item.Author,
		SourceName:  source.Name,
		Category:    source.Category,
		PublishedAt: item.PublishedAt,
	}
	article.Normalize()
	return article
}

// classifyFetchError buckets a fetch failure for metrics labels.
func classifyFetchError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "fetch_failed"
	}
}
