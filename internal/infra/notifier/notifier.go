// Package notifier delivers run digests to external channels via webhooks.
// It includes Discord and Slack implementations plus a no-op notifier for
// when notifications are disabled.
package notifier

import (
	"context"
	"time"
)

// Digest is the payload of one run notification: headline numbers plus the
// top-ranked articles.
type Digest struct {
	GeneratedAt time.Time
	RunID       string

	// ReportPath is the saved HTML report, empty on dry runs.
	ReportPath string

	// Summary is an optional AI-generated abstract of the selection.
	Summary string

	TotalArticles  int
	AvgScore       float64
	MaxScore       float64
	FeedsSucceeded int
	FeedsFailed    int

	Top []DigestItem
}

// DigestItem is one article line in the digest.
type DigestItem struct {
	Title    string
	Link     string
	Interest string
	Source   string
	Score    float64
}

// Notifier sends a digest to one destination. Implementations handle rate
// limiting, retries, and logging internally.
type Notifier interface {
	// SendDigest delivers the digest. Non-nil error means delivery failed
	// after all retry attempts.
	SendDigest(ctx context.Context, digest *Digest) error
}
