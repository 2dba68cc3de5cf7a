package notifications

import (
	"context"
	"log/slog"
	"sync"
)

// subscriberBuffer bounds each subscription's channel. A consumer that falls
// further behind than this loses events, which the at-most-once contract
// allows.
const subscriberBuffer = 16

// MemoryBroker fans events out to in-process subscribers. It is the broker
// for single-node deployments and tests: no external dependencies, channels
// spring into existence on first subscribe and vanish when the last
// subscriber leaves.
type MemoryBroker struct {
	mu       sync.RWMutex
	channels map[ChannelKey]map[*memorySubscription]struct{}
	closed   bool
	logger   *slog.Logger
}

// NewMemoryBroker creates an empty in-process broker.
func NewMemoryBroker(logger *slog.Logger) *MemoryBroker {
	return &MemoryBroker{
		channels: make(map[ChannelKey]map[*memorySubscription]struct{}),
		logger:   logger.With("component", "notifications"),
	}
}

// Publish delivers the event to every current subscriber of the channel.
// Subscribers whose buffers are full are skipped rather than blocking the
// publisher. A channel with no subscribers swallows the event.
func (b *MemoryBroker) Publish(_ context.Context, channel ChannelKey, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for sub := range b.channels[channel] {
		select {
		case sub.events <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"channel", string(channel), "event_type", string(event.Type))
		}
	}
	return nil
}

// Subscribe attaches a listener to the channel.
func (b *MemoryBroker) Subscribe(_ context.Context, channel ChannelKey) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &memorySubscription{
		broker:  b,
		channel: channel,
		events:  make(chan Event, subscriberBuffer),
	}

	if b.channels[channel] == nil {
		b.channels[channel] = make(map[*memorySubscription]struct{})
	}
	b.channels[channel][sub] = struct{}{}

	return sub, nil
}

// Close shuts down the broker and every open subscription.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for channel, subs := range b.channels {
		for sub := range subs {
			sub.markClosed()
		}
		delete(b.channels, channel)
	}
	return nil
}

func (b *MemoryBroker) detach(sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.channels[sub.channel]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.channels, sub.channel)
	}
}

type memorySubscription struct {
	broker  *MemoryBroker
	channel ChannelKey
	events  chan Event

	closeOnce sync.Once
}

func (s *memorySubscription) Events() <-chan Event { return s.events }

func (s *memorySubscription) Close() error {
	s.broker.detach(s)
	s.markClosed()
	return nil
}

func (s *memorySubscription) markClosed() {
	s.closeOnce.Do(func() { close(s.events) })
}
