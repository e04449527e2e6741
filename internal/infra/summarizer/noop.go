package summarizer

import (
	"context"

	"techpulse/internal/utils/text"
)

// NoOp passes input through, truncated to the default character limit.
// Used when summarization is disabled.
type NoOp struct{}

// NewNoOp creates a NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns the input truncated to the default character limit.
func (n *NoOp) Summarize(_ context.Context, input string) (string, error) {
	return text.Truncate(input, defaultCharLimit), nil
}
