package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"techpulse/internal/resilience/circuitbreaker"
	"techpulse/internal/resilience/retry"
	"techpulse/internal/utils/text"
)

// OpenAIConfig holds configuration for the OpenAI summarizer, loaded from
// environment variables with fail-closed validation.
type OpenAIConfig struct {
	// CharacterLimit is the maximum summary length. Loaded from
	// SUMMARIZER_CHAR_LIMIT, valid range 100-5000, default 500.
	CharacterLimit int

	Model     string
	MaxTokens int

	// Timeout bounds one summarization API call.
	Timeout time.Duration
}

// GetCharacterLimit implements SummarizerConfig.
func (c *OpenAIConfig) GetCharacterLimit() int {
	return c.CharacterLimit
}

// Validate implements SummarizerConfig.
func (c *OpenAIConfig) Validate() error {
	if err := ValidateCharacterLimit(c.CharacterLimit); err != nil {
		return fmt.Errorf("invalid character limit: %w", err)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadOpenAIConfig reads SUMMARIZER_CHAR_LIMIT. Unlike the Claude loader
// this one fails closed: an invalid value is an error, not a fallback.
func LoadOpenAIConfig() (*OpenAIConfig, error) {
	charLimit := defaultCharLimit

	if envLimit := os.Getenv("SUMMARIZER_CHAR_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid SUMMARIZER_CHAR_LIMIT format: %s: %w", envLimit, err)
		}
		if err := ValidateCharacterLimit(parsed); err != nil {
			return nil, fmt.Errorf("SUMMARIZER_CHAR_LIMIT out of valid range: %w", err)
		}
		charLimit = parsed
	}

	config := &OpenAIConfig{
		CharacterLimit: charLimit,
		Model:          openai.GPT3Dot5Turbo,
		MaxTokens:      1024,
		Timeout:        60 * time.Second,
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid OpenAI configuration: %w", err)
	}
	return config, nil
}

// OpenAI summarizes via OpenAI's chat API with circuit breaker and retry
// logic.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          SummarizerConfig
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates an OpenAI summarizer with the given API key.
func NewOpenAI(apiKey string, config SummarizerConfig) *OpenAI {
	slog.Info("Initialized OpenAI summarizer",
		slog.Int("character_limit", config.GetCharacterLimit()))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize implements the Summarizer interface.
func (o *OpenAI) Summarize(ctx context.Context, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doSummarize(ctx, input)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("openai summarize failed after retries: %w", retryErr)
	}
	return result, nil
}

// buildPrompt instructs the model to produce a plain-prose digest within
// the configured character limit.
func (o *OpenAI) buildPrompt(input string) string {
	return fmt.Sprintf(
		"Summarize the following technology news selection in at most %d characters. "+
			"Write one plain-prose paragraph highlighting the main themes, no markdown, no preamble:\n%s",
		o.config.GetCharacterLimit(), input)
}

// doSummarize performs one API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, input string) (string, error) {
	// gpt-3.5-turbo context is 16k tokens; leave room for the response
	const maxChars = 10000
	truncated := input
	if len(input) > maxChars {
		truncated = input[:maxChars] + "...\n(input truncated)"
		slog.Warn("text truncated for openai api",
			slog.Int("original_length", len(input)))
	}

	prompt := o.buildPrompt(truncated)

	slog.InfoContext(ctx, "Starting summarization",
		slog.Int("input_length", text.CountRunes(truncated)),
		slog.Int("character_limit", o.config.GetCharacterLimit()))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{{
			Role:    "system",
			Content: prompt,
		}},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	summary := resp.Choices[0].Message.Content
	summaryLength := text.CountRunes(summary)
	withinLimit := summaryLength <= o.config.GetCharacterLimit()

	slog.InfoContext(ctx, "Summarization completed",
		slog.Int("summary_length", summaryLength),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordLength(summaryLength)
	o.metricsRecorder.RecordDuration(duration)
	o.metricsRecorder.RecordCompliance(withinLimit)
	if !withinLimit {
		o.metricsRecorder.RecordLimitExceeded()
	}

	return summary, nil
}
