package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"techpulse/internal/utils/text"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled bool

	// WebhookURL is the Discord webhook URL. It embeds the authentication
	// token and must not appear in logs.
	WebhookURL string

	Timeout time.Duration
}

// DiscordNotifier sends run digests to Discord via webhook.
type DiscordNotifier struct {
	config      DiscordConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewDiscordNotifier creates a Discord notifier. The rate limiter follows
// the Discord webhook limit of 30 requests per minute.
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(0.5, 3),
	}
}

// DiscordWebhookPayload is the JSON payload sent to the webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed is one Discord embed message.
type DiscordEmbed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Color       int                `json:"color"`
	Footer      DiscordEmbedFooter `json:"footer"`
	Timestamp   string             `json:"timestamp"`
}

// DiscordEmbedFooter is the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// DiscordErrorResponse is the error body returned by the Discord API.
type DiscordErrorResponse struct {
	Message    string  `json:"message"`
	Code       int     `json:"code"`
	RetryAfter float64 `json:"retry_after"` // seconds
}

const (
	// Discord embed limits
	maxTitleLength       = 256
	maxDescriptionLength = 4096

	// #5865F2
	discordBlueColor = 5793266
)

// buildEmbedPayload formats a digest as a single embed: the top articles
// as markdown lines, the optional summary, and the run statistics in the
// footer.
func (d *DiscordNotifier) buildEmbedPayload(digest *Digest) DiscordWebhookPayload {
	var desc bytes.Buffer
	for _, item := range digest.Top {
		desc.WriteString(fmt.Sprintf("**[%s](%s)**  `%.1f`  %s / %s\n",
			item.Title, item.Link, item.Score, item.Interest, item.Source))
	}
	if len(digest.Top) == 0 {
		desc.WriteString("No articles matched this run.\n")
	}
	if digest.Summary != "" {
		desc.WriteString("\n" + digest.Summary)
	}

	embed := DiscordEmbed{
		Title:       text.Truncate(fmt.Sprintf("TechPulse digest: %d articles", digest.TotalArticles), maxTitleLength),
		Description: text.Truncate(desc.String(), maxDescriptionLength),
		Color:       discordBlueColor,
		Footer: DiscordEmbedFooter{
			Text: fmt.Sprintf("avg score %.1f • %d/%d feeds ok",
				digest.AvgScore, digest.FeedsSucceeded, digest.FeedsSucceeded+digest.FeedsFailed),
		},
		Timestamp: digest.GeneratedAt.Format(time.RFC3339),
	}
	return DiscordWebhookPayload{Embeds: []DiscordEmbed{embed}}
}

// sendWebhookRequest performs one webhook POST and classifies failures
// into RateLimitError, ClientError, or ServerError.
func (d *DiscordNotifier) sendWebhookRequest(ctx context.Context, digest *Digest) error {
	jsonData, err := json.Marshal(d.buildEmbedPayload(digest))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
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
			Message:    "Discord rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, body),
		}
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API client error: %s", string(body)),
		}
	}
	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API server error: %s", string(body)),
		}
	}
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// extractRetryAfter reads retry_after from the JSON body, falling back to
// the Retry-After header, then to 5 seconds.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var discordErr DiscordErrorResponse
	if err := json.Unmarshal(body, &discordErr); err == nil && discordErr.RetryAfter > 0 {
		return time.Duration(discordErr.RetryAfter * float64(time.Second))
	}

	if retryAfterHeader := resp.Header.Get("Retry-After"); retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	return 5 * time.Second
}

// sendWebhookRequestWithRetry retries transient failures: max 2 attempts,
// 429 backs off for the advertised retry_after, 4xx fails immediately.
func (d *DiscordNotifier) sendWebhookRequestWithRetry(ctx context.Context, digest *Digest) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := d.sendWebhookRequest(ctx, digest)
		if err == nil {
			slog.Info("Discord digest sent",
				slog.String("request_id", requestID),
				slog.String("run_id", digest.RunID),
				slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("Discord rate limit hit, backing off",
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
			slog.Error("Discord digest failed with non-retryable error",
				slog.String("request_id", requestID),
				slog.String("run_id", digest.RunID),
				slog.Any("error", err))
			return err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("Discord webhook request failed, retrying",
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

	return fmt.Errorf("discord notification failed after %d attempts: %w", maxAttempts, lastErr)
}

// SendDigest implements the Notifier interface.
func (d *DiscordNotifier) SendDigest(ctx context.Context, digest *Digest) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("Starting Discord notification",
		slog.String("request_id", requestID),
		slog.String("run_id", digest.RunID))

	if err := d.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	return d.sendWebhookRequestWithRetry(ctx, digest)
}
