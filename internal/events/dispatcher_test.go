package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DeliversToSubscribedHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	var received []Event

	dispatcher.Subscribe(EventMemberCreated, func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(EventMemberDeleted, func(ctx context.Context, event Event) error {
		t.Fatal("handler for a different event type must not fire")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "e1", Type: EventMemberCreated, MemberID: 7})

	assert.NoError(t, err)
	assert.Len(t, received, 1)
	assert.Equal(t, int64(7), received[0].MemberID)
}

func TestDispatcher_HandlerErrorsDoNotFailPublish(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	calls := 0

	dispatcher.Subscribe(EventMemberUpdated, func(ctx context.Context, event Event) error {
		calls++
		return errors.New("audit sink down")
	})
	dispatcher.Subscribe(EventMemberUpdated, func(ctx context.Context, event Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventMemberUpdated})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls, "later handlers still run after an error")
}
