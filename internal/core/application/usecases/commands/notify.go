package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/notifications"
)

// publishEvent fans an event out after a successful commit. Notifications
// are best-effort: a failed publish is logged, never propagated, because the
// committed state change is the source of truth.
func publishEvent(
	ctx context.Context,
	publisher notifications.Publisher,
	logger *slog.Logger,
	channel notifications.ChannelKey,
	event notifications.Event,
) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, channel, event); err != nil {
		logger.Warn("failed to publish notification",
			"channel", string(channel), "event_type", string(event.Type), "error", err)
	}
}
