package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"techpulse/internal/domain/entity"
	"techpulse/internal/observability/metrics"
	"techpulse/internal/observability/tracing"
	"techpulse/internal/usecase/relevance"
)

// Config holds the tunable knobs of an aggregation run.
type Config struct {
	// MaxConcurrent limits parallel feed fetches.
	// Zero or negative means one goroutine per feed.
	MaxConcurrent int

	// MinScore drops scored candidates strictly below it.
	MinScore float64

	// MaxArticles caps the final selection across all interests.
	// Zero or negative disables the cap.
	MaxArticles int

	// ContentThreshold is the minimum description length (in bytes) below
	// which the full article content is fetched for enrichment.
	// Zero or negative disables enrichment even when a ContentFetcher is set.
	ContentThreshold int
}

// RunStats summarizes one aggregation run.
type RunStats struct {
	RunID            string
	Sources          int
	SourcesSucceeded int
	SourcesFailed    int
	ArticlesFetched  int
	Candidates       int
	Selected         int
	Duration         time.Duration
}

// Result is the outcome of one aggregation run: the ranked selection,
// every fetched article, and the per-feed failures.
type Result struct {
	Articles    []*entity.Article
	Selected    []entity.ScoredArticle
	FetchErrors []*FetchError
	Stats       RunStats
}

// Service runs the aggregation pipeline over a fixed set of sources and
// interests. Construct it with NewService; the zero value is not usable.
type Service struct {
	fetcher        FeedFetcher
	contentFetcher ContentFetcher
	sources        []*entity.FeedSource
	interests      []*entity.Interest
	cfg            Config
}

// NewService validates the configured sources and interests and returns a
// ready-to-run Service. It fails fast on an empty feed list, an empty
// interest list, or any entity failing validation, so a bad configuration
// never reaches the network.
//
// contentFetcher may be nil to disable description enrichment.
func NewService(
	fetcher FeedFetcher,
	contentFetcher ContentFetcher,
	sources []*entity.FeedSource,
	interests []*entity.Interest,
	cfg Config,
) (*Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("%w: feed fetcher is required", entity.ErrInvalidInput)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if len(interests) == 0 {
		return nil, ErrNoInterests
	}

	for _, src := range sources {
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("feed source %q: %w", src.Name, err)
		}
	}
	for _, interest := range interests {
		if err := interest.Validate(); err != nil {
			return nil, fmt.Errorf("interest %q: %w", interest.Name, err)
		}
	}

	return &Service{
		fetcher:        fetcher,
		contentFetcher: contentFetcher,
		sources:        sources,
		interests:      interests,
		cfg:            cfg,
	}, nil
}

// Run executes one full aggregation: fetch all feeds concurrently, match
// the merged articles against every interest, then rank and select.
//
// Feed failures are collected in Result.FetchErrors and never abort the
// run; a run where every fetch fails still returns an empty selection and
// a nil error. Cancelling ctx stops in-flight fetches and records the
// remaining feeds as failed with the context error as cause.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	logger := slog.Default()
	start := time.Now()
	runID := uuid.New().String()

	ctx, span := tracing.GetTracer().Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("feeds.total", len(s.sources)),
			attribute.Int("interests.total", len(s.interests)),
		))
	defer span.End()

	logger.Info("aggregation run started",
		slog.String("run_id", runID),
		slog.Int("sources", len(s.sources)),
		slog.Int("interests", len(s.interests)),
	)

	articles, fetchErrs := s.fetchAll(ctx)

	_, matchSpan := tracing.GetTracer().Start(ctx, "pipeline.match")
	candidates := relevance.MatchAll(articles, s.interests)
	matchSpan.SetAttributes(
		attribute.Int("articles.total", len(articles)),
		attribute.Int("candidates.total", len(candidates)),
	)
	matchSpan.End()

	selected := relevance.Select(candidates, relevance.Selection{
		MinScore:    s.cfg.MinScore,
		MaxArticles: s.cfg.MaxArticles,
	})

	stats := RunStats{
		RunID:            runID,
		Sources:          len(s.sources),
		SourcesSucceeded: len(s.sources) - len(fetchErrs),
		SourcesFailed:    len(fetchErrs),
		ArticlesFetched:  len(articles),
		Candidates:       len(candidates),
		Selected:         len(selected),
		Duration:         time.Since(start),
	}

	status := "success"
	if stats.SourcesFailed > 0 {
		status = "partial"
	}
	if stats.SourcesSucceeded == 0 {
		status = "failed"
	}
	metrics.RecordPipelineRun(status, stats.Duration, stats.Selected)

	span.SetAttributes(
		attribute.Int("articles.fetched", stats.ArticlesFetched),
		attribute.Int("articles.selected", stats.Selected),
		attribute.Int("feeds.failed", stats.SourcesFailed),
	)

	logger.Info("aggregation run completed",
		slog.String("run_id", runID),
		slog.String("status", status),
		slog.Int("articles_fetched", stats.ArticlesFetched),
		slog.Int("candidates", stats.Candidates),
		slog.Int("selected", stats.Selected),
		slog.Int("feeds_failed", stats.SourcesFailed),
		slog.Duration("duration", stats.Duration),
	)

	return &Result{
		Articles:    articles,
		Selected:    selected,
		FetchErrors: fetchErrs,
		Stats:       stats,
	}, nil
}

// enhanceDescription fetches the full article content when the feed
// description is too thin for meaningful matching. It never fails: any
// fetch error falls back to the feed-provided description, and fetched
// content is only used when it is actually longer.
func (s *Service) enhanceDescription(ctx context.Context, item FeedItem) string {
	if s.contentFetcher == nil || s.cfg.ContentThreshold <= 0 {
		return item.Description
	}
	if len(item.Description) >= s.cfg.ContentThreshold || item.Link == "" {
		metrics.RecordContentFetch("skipped", 0, 0)
		return item.Description
	}

	fetchStart := time.Now()
	content, err := s.contentFetcher.FetchContent(ctx, item.Link)
	duration := time.Since(fetchStart)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return item.Description
		}
		metrics.RecordContentFetch("failure", duration, 0)
		slog.Debug("content fetch failed, keeping feed description",
			slog.String("url", item.Link),
			slog.Any("error", err))
		return item.Description
	}

	metrics.RecordContentFetch("success", duration, len(content))
	if len(content) <= len(item.Description) {
		return item.Description
	}
	return content
}
