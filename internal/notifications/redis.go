package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisBroker fans events out over Redis Pub/Sub, so a subscriber connected
// to one node receives events published on another. Redis Pub/Sub is itself
// fire-and-forget, which matches the at-most-once contract exactly.
type RedisBroker struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisBroker connects a broker to the Redis instance at addr.
func NewRedisBroker(addr string, logger *slog.Logger) *RedisBroker {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisBroker{
		client: client,
		logger: logger.With("component", "notifications"),
	}
}

// Ping verifies the Redis connection, for startup health checks.
func (b *RedisBroker) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Publish marshals the event and publishes it to the channel. Channels
// without subscribers swallow the event, as Redis Pub/Sub natively does.
func (b *RedisBroker) Publish(ctx context.Context, channel ChannelKey, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return b.client.Publish(ctx, string(channel), payload).Err()
}

// Subscribe attaches a listener to the channel. A goroutine decodes inbound
// messages until the subscription closes; undecodable payloads are logged
// and skipped.
func (b *RedisBroker) Subscribe(ctx context.Context, channel ChannelKey) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, string(channel))

	// Force the subscription onto the wire before returning, so events
	// published after Subscribe are not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan Event, subscriberBuffer),
	}

	go func() {
		defer close(sub.events)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("dropping undecodable event",
					"channel", string(channel), "error", err)
				continue
			}
			select {
			case sub.events <- event:
			default:
				b.logger.Warn("dropping event for slow subscriber",
					"channel", string(channel), "event_type", string(event.Type))
			}
		}
	}()

	return sub, nil
}

// Close shuts down the Redis connection and with it every subscription.
func (b *RedisBroker) Close() error {
	return b.client.Close()
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan Event
}

func (s *redisSubscription) Events() <-chan Event { return s.events }

func (s *redisSubscription) Close() error {
	// Closing the PubSub closes its Channel(), which ends the decode
	// goroutine and closes events.
	return s.pubsub.Close()
}
