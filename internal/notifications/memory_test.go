package notifications

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
)

func newTestBroker() *MemoryBroker {
	return NewMemoryBroker(slog.Default())
}

func receiveEvent(t *testing.T, sub Subscription) Event {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		require.True(t, ok, "subscription closed unexpectedly")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func Test_MemoryBroker_DeliversToSubscriber(t *testing.T) {
	broker := newTestBroker()
	defer broker.Close()
	channel := SessionChannel(kernel.NewUUID())

	sub, err := broker.Subscribe(context.Background(), channel)
	require.NoError(t, err)
	defer sub.Close()

	published := NewEvent(EventOrderConfirmed, map[string]any{"order_number": "ORD-20260829-001"})
	require.NoError(t, broker.Publish(context.Background(), channel, published))

	received := receiveEvent(t, sub)
	assert.Equal(t, EventOrderConfirmed, received.Type)
	assert.Equal(t, "ORD-20260829-001", received.Data["order_number"])
}

func Test_MemoryBroker_PublishToChannelWithoutSubscribersSucceeds(t *testing.T) {
	broker := newTestBroker()
	defer broker.Close()

	err := broker.Publish(context.Background(), SessionChannel(kernel.NewUUID()),
		NewEvent(EventOrderStatusUpdate, nil))

	assert.NoError(t, err)
}

func Test_MemoryBroker_EventsBeforeSubscribeAreNotReplayed(t *testing.T) {
	broker := newTestBroker()
	defer broker.Close()
	channel := SessionChannel(kernel.NewUUID())

	require.NoError(t, broker.Publish(context.Background(), channel, NewEvent(EventOrderConfirmed, nil)))

	sub, err := broker.Subscribe(context.Background(), channel)
	require.NoError(t, err)
	defer sub.Close()

	select {
	case event := <-sub.Events():
		t.Fatalf("unexpected replayed event %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func Test_MemoryBroker_ChannelsAreIsolated(t *testing.T) {
	broker := newTestBroker()
	defer broker.Close()
	sessionA := SessionChannel(kernel.NewUUID())
	sessionB := SessionChannel(kernel.NewUUID())

	subA, err := broker.Subscribe(context.Background(), sessionA)
	require.NoError(t, err)
	defer subA.Close()
	subB, err := broker.Subscribe(context.Background(), sessionB)
	require.NoError(t, err)
	defer subB.Close()

	require.NoError(t, broker.Publish(context.Background(), sessionA, NewEvent(EventOrderConfirmed, nil)))

	assert.Equal(t, EventOrderConfirmed, receiveEvent(t, subA).Type)
	select {
	case event := <-subB.Events():
		t.Fatalf("event leaked across channels: %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func Test_MemoryBroker_FansOutToAllSubscribersOfAChannel(t *testing.T) {
	broker := newTestBroker()
	defer broker.Close()
	channel := RestaurantChannel(kernel.NewUUID())

	subs := make([]Subscription, 3)
	for i := range subs {
		sub, err := broker.Subscribe(context.Background(), channel)
		require.NoError(t, err)
		defer sub.Close()
		subs[i] = sub
	}

	require.NoError(t, broker.Publish(context.Background(), channel, NewEvent(EventOrderUnassigned, nil)))

	for _, sub := range subs {
		assert.Equal(t, EventOrderUnassigned, receiveEvent(t, sub).Type)
	}
}

func Test_MemoryBroker_ClosedSubscriberStopsReceiving(t *testing.T) {
	broker := newTestBroker()
	defer broker.Close()
	channel := StaffChannel(kernel.NewUUID())

	sub, err := broker.Subscribe(context.Background(), channel)
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	require.NoError(t, broker.Publish(context.Background(), channel, NewEvent(EventNewOrder, nil)))

	_, ok := <-sub.Events()
	assert.False(t, ok, "events channel must be closed")
}

func Test_MemoryBroker_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	broker := newTestBroker()
	defer broker.Close()
	channel := SessionChannel(kernel.NewUUID())

	sub, err := broker.Subscribe(context.Background(), channel)
	require.NoError(t, err)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Nobody reads; publishing past the buffer must not block.
		for i := 0; i < subscriberBuffer*2; i++ {
			_ = broker.Publish(context.Background(), channel, NewEvent(EventOrderStatusUpdate, nil))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
}

func Test_MemoryBroker_Close_ClosesAllSubscriptions(t *testing.T) {
	broker := newTestBroker()
	sub, err := broker.Subscribe(context.Background(), SessionChannel(kernel.NewUUID()))
	require.NoError(t, err)

	require.NoError(t, broker.Close())

	_, ok := <-sub.Events()
	assert.False(t, ok)
}
