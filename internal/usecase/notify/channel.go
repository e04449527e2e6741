// Package notify dispatches run digests to the configured notification
// channels. Delivery is asynchronous with a bounded worker pool and a
// per-channel circuit breaker, so a broken webhook never blocks or fails
// an aggregation run.
package notify

import (
	"context"

	"techpulse/internal/infra/notifier"
)

// Channel is one notification destination. Implementations must be safe
// for concurrent use and respect context cancellation; rate limiting and
// retries happen inside the channel.
type Channel interface {
	// Name returns the channel identifier used for logging and metric
	// labels (lowercase, e.g. "slack").
	Name() string

	// IsEnabled reports whether the channel is enabled via configuration.
	// Disabled channels are skipped during dispatching.
	IsEnabled() bool

	// Send delivers the digest. Non-nil error means delivery failed after
	// all retries.
	Send(ctx context.Context, digest *notifier.Digest) error
}
