package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"techpulse/internal/utils/text"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	Enabled bool

	// WebhookURL is the Slack Incoming Webhook URL. It embeds the
	// authentication token and must not appear in logs.
	WebhookURL string

	Timeout time.Duration
}

// SlackNotifier sends run digests to Slack via Incoming Webhook.
type SlackNotifier struct {
	config      SlackConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewSlackNotifier creates a Slack notifier. The rate limiter follows the
// Slack webhook limit of 1 message per second.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1),
	}
}

// SlackWebhookPayload is the Block Kit payload sent to the webhook.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`
	Blocks []SlackBlock `json:"blocks"`
}

// SlackBlock is one Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`
	Text     *SlackTextObject  `json:"text,omitempty"`
	Elements []SlackTextObject `json:"elements,omitempty"`
}

// SlackTextObject is a Block Kit text object.
type SlackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	// Block Kit limits
	maxSectionTextLength = 3000
	maxFallbackLength    = 150
)

// buildBlockKitPayload formats a digest as Block Kit: a header line, one
// section listing the top articles, an optional summary section, and a
// context block with the run statistics.
func (s *SlackNotifier) buildBlockKitPayload(digest *Digest) SlackWebhookPayload {
	fallback := text.Truncate(
		fmt.Sprintf("TechPulse digest: %d articles matched your interests", digest.TotalArticles),
		maxFallbackLength)

	var list bytes.Buffer
	list.WriteString(fmt.Sprintf("*TechPulse digest* %s\n", digest.GeneratedAt.Format("2006-01-02 15:04")))
	for _, item := range digest.Top {
		list.WriteString(fmt.Sprintf("\n• *<%s|%s>*  `%.1f`  %s / %s",
			item.Link, item.Title, item.Score, item.Interest, item.Source))
	}
	if len(digest.Top) == 0 {
		list.WriteString("\nNo articles matched this run.")
	}

	blocks := []SlackBlock{{
		Type: "section",
		Text: &SlackTextObject{Type: "mrkdwn", Text: text.Truncate(list.String(), maxSectionTextLength)},
	}}

	if digest.Summary != "" {
		blocks = append(blocks, SlackBlock{
			Type: "section",
			Text: &SlackTextObject{Type: "mrkdwn", Text: text.Truncate(digest.Summary, maxSectionTextLength)},
		})
	}

	contextText := fmt.Sprintf("%d articles • avg score %.1f • %d/%d feeds ok",
		digest.TotalArticles, digest.AvgScore,
		digest.FeedsSucceeded, digest.FeedsSucceeded+digest.FeedsFailed)
	blocks = append(blocks, SlackBlock{
		Type:     "context",
		Elements: []SlackTextObject{{Type: "mrkdwn", Text: contextText}},
	})

	return SlackWebhookPayload{Text: fallback, Blocks: blocks}
}

// sendWebhookRequest performs one webhook POST and classifies failures
// into RateLimitError, ClientError, or ServerError.
func (s *SlackNotifier) sendWebhookRequest(ctx context.Context, digest *Digest) error {
	jsonData, err := json.Marshal(s.buildBlockKitPayload(digest))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Message:    "Slack rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, body),
		}
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API client error: %s", string(body)),
		}
	}
	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API server error: %s", string(body)),
		}
	}
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// sendWebhookRequestWithRetry retries transient failures: max 2 attempts,
// 429 backs off for the advertised retry_after, 4xx fails immediately.
func (s *SlackNotifier) sendWebhookRequestWithRetry(ctx context.Context, digest *Digest) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.sendWebhookRequest(ctx, digest)
		if err == nil {
			slog.Info("Slack digest sent",
				slog.String("request_id", requestID),
				slog.String("run_id", digest.RunID),
				slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("Slack rate limit hit, backing off",
				slog.String("request_id", requestID),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))
			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("Slack digest failed with non-retryable error",
				slog.String("request_id", requestID),
				slog.String("run_id", digest.RunID),
				slog.Any("error", err))
			return err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("Slack webhook request failed, retrying",
				slog.String("request_id", requestID),
				slog.Any("error", err),
				slog.Duration("delay", delay))
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("slack notification failed after %d attempts: %w", maxAttempts, lastErr)
}

// SendDigest implements the Notifier interface.
func (s *SlackNotifier) SendDigest(ctx context.Context, digest *Digest) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("Starting Slack notification",
		slog.String("request_id", requestID),
		slog.String("run_id", digest.RunID))

	if err := s.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	return s.sendWebhookRequestWithRetry(ctx, digest)
}
