package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventTicketProcessed, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketProcessed, TicketID: "TKT-1"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "TKT-1", received[0].TicketID)
}

func TestDispatcher_IgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventTicketAssigned, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventFeedbackRecorded}))
	assert.False(t, called)
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	secondCalled := false
	dispatcher.Subscribe(EventDuplicateDetected, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventDuplicateDetected, func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventDuplicateDetected}))
	assert.True(t, secondCalled)
}
