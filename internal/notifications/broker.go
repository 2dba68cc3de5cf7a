package notifications

import (
	"context"
	"fmt"
	"log/slog"
)

// Publisher is the write side of the fan-out. Publish is best-effort: a
// channel without subscribers swallows the event, and implementations never
// block the caller on slow consumers.
type Publisher interface {
	Publish(ctx context.Context, channel ChannelKey, event Event) error
}

// Subscription is one listener on one channel. Events stops yielding after
// Close; closing twice is safe.
type Subscription interface {
	// Events returns the stream of events published to the channel while
	// the subscription is open. Events that arrive faster than the
	// consumer reads may be dropped.
	Events() <-chan Event

	// Close detaches the subscription and releases its resources.
	Close() error
}

// Broker combines publishing with subscription management.
type Broker interface {
	Publisher

	// Subscribe attaches a new listener to the channel. The subscription
	// starts empty; events published before Subscribe are not replayed.
	Subscribe(ctx context.Context, channel ChannelKey) (Subscription, error)

	// Close shuts down the broker and every open subscription.
	Close() error
}

// NewBroker initialises the configured broker (memory, redis, or noop).
func NewBroker(driver string, redisAddr string, logger *slog.Logger) (Broker, error) {
	switch driver {
	case "noop":
		logger.Info("notifications disabled; using noop broker")
		return noopBroker{}, nil
	case "memory":
		return NewMemoryBroker(logger), nil
	case "redis":
		return NewRedisBroker(redisAddr, logger), nil
	default:
		return nil, fmt.Errorf("unsupported notifications driver: %s", driver)
	}
}

type noopBroker struct{}

func (noopBroker) Publish(context.Context, ChannelKey, Event) error { return nil }

func (noopBroker) Subscribe(context.Context, ChannelKey) (Subscription, error) {
	sub := &noopSubscription{events: make(chan Event)}
	return sub, nil
}

func (noopBroker) Close() error { return nil }

type noopSubscription struct {
	events chan Event
	closed bool
}

func (s *noopSubscription) Events() <-chan Event { return s.events }

func (s *noopSubscription) Close() error {
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	return nil
}
