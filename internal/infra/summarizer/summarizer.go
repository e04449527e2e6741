// Package summarizer generates short AI abstracts of a run's selected
// articles for the report header and the notification digest. It includes
// adapters for the Anthropic and OpenAI APIs behind circuit breaker and
// retry logic, plus a no-op implementation for when summarization is
// disabled.
package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Summarizer condenses text into a short abstract.
type Summarizer interface {
	// Summarize returns a summary of text within the configured character
	// limit. Non-nil error means the backend failed after all retries.
	Summarize(ctx context.Context, text string) (string, error)
}

// NewFromEnv selects a backend from SUMMARIZER_TYPE: "claude", "openai",
// or "none" (the default). The API key comes from ANTHROPIC_API_KEY or
// OPENAI_API_KEY respectively; a missing key is an error rather than a
// silent fallback.
func NewFromEnv() (Summarizer, error) {
	switch kind := os.Getenv("SUMMARIZER_TYPE"); kind {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("SUMMARIZER_TYPE=claude requires ANTHROPIC_API_KEY")
		}
		return NewClaude(apiKey), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("SUMMARIZER_TYPE=openai requires OPENAI_API_KEY")
		}
		config, err := LoadOpenAIConfig()
		if err != nil {
			return nil, err
		}
		return NewOpenAI(apiKey, config), nil
	case "", "none":
		slog.Debug("Summarization disabled")
		return NewNoOp(), nil
	default:
		return nil, fmt.Errorf("unknown SUMMARIZER_TYPE %q (want claude, openai, or none)", kind)
	}
}
