package notifier

import "context"

// NoOpNotifier satisfies the Notifier interface while doing nothing.
// Used when a channel is disabled so callers never need nil checks.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// SendDigest does nothing and returns nil.
func (n *NoOpNotifier) SendDigest(ctx context.Context, digest *Digest) error {
	return nil
}
