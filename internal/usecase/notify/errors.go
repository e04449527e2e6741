package notify

import "errors"

// Sentinel errors for digest dispatching.
var (
	// ErrChannelDisabled indicates Send was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidDigest indicates the digest is nil.
	ErrInvalidDigest = errors.New("invalid digest")

	// ErrNotificationDropped indicates a digest was dropped because the
	// worker pool stayed saturated past the acquire timeout.
	ErrNotificationDropped = errors.New("notification dropped due to pool saturation")

	// ErrCircuitBreakerOpen indicates the channel's circuit breaker is
	// open and digests are being rejected until it times out.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open for this channel")
)
