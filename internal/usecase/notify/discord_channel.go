package notify

import (
	"context"

	"techpulse/internal/infra/notifier"
)

// DiscordChannel adapts the Discord webhook notifier to the Channel
// interface.
type DiscordChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewDiscordChannel creates a Discord channel. When disabled, a no-op
// notifier backs it so the Channel contract holds without nil checks.
func NewDiscordChannel(config notifier.DiscordConfig) *DiscordChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewDiscordNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}
	return &DiscordChannel{notifier: n, enabled: config.Enabled}
}

// Name returns "discord".
func (c *DiscordChannel) Name() string {
	return "discord"
}

// IsEnabled reports whether Discord notifications are configured on.
func (c *DiscordChannel) IsEnabled() bool {
	return c.enabled
}

// Send delivers the digest through the underlying webhook notifier.
func (c *DiscordChannel) Send(ctx context.Context, digest *notifier.Digest) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if digest == nil {
		return ErrInvalidDigest
	}
	return c.notifier.SendDigest(ctx, digest)
}
