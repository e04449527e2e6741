package notify

import (
	"context"

	"techpulse/internal/infra/notifier"
)

// SlackChannel adapts the Slack webhook notifier to the Channel interface.
type SlackChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewSlackChannel creates a Slack channel. When disabled, a no-op notifier
// backs it so the Channel contract holds without nil checks.
func NewSlackChannel(config notifier.SlackConfig) *SlackChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewSlackNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}
	return &SlackChannel{notifier: n, enabled: config.Enabled}
}

// Name returns "slack".
func (c *SlackChannel) Name() string {
	return "slack"
}

// IsEnabled reports whether Slack notifications are configured on.
func (c *SlackChannel) IsEnabled() bool {
	return c.enabled
}

// Send delivers the digest through the underlying webhook notifier.
func (c *SlackChannel) Send(ctx context.Context, digest *notifier.Digest) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if digest == nil {
		return ErrInvalidDigest
	}
	return c.notifier.SendDigest(ctx, digest)
}
