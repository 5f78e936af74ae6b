package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBus_NotifyInSubscriptionOrder(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var order []string
	bus.Subscribe(UserLogin, func(string, any) { order = append(order, "first") })
	bus.Subscribe(UserLogin, func(string, any) { order = append(order, "second") })
	bus.Subscribe(UserLogin, func(string, any) { order = append(order, "third") })

	bus.Notify(UserLogin, nil)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_NotifyUnknownEventIsNoop(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.Notify("never-subscribed", nil)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop())

	calls := 0
	sub := bus.Subscribe(UserLogout, func(string, any) { calls++ })
	bus.Subscribe(UserLogout, func(string, any) { calls++ })

	bus.Unsubscribe(sub)
	bus.Notify(UserLogout, nil)

	assert.Equal(t, 1, calls)
}

func TestBus_PanickingListenerDoesNotBlockDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())

	delivered := false
	bus.Subscribe(TaskCompleted, func(string, any) { panic("listener bug") })
	bus.Subscribe(TaskCompleted, func(string, any) { delivered = true })

	bus.Notify(TaskCompleted, map[string]string{"taskId": "1"})

	assert.True(t, delivered)
}

func TestBus_ListenerReceivesEventAndPayload(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var gotEvent string
	var gotPayload any
	bus.Subscribe(UserRegistered, func(event string, payload any) {
		gotEvent = event
		gotPayload = payload
	})

	bus.Notify(UserRegistered, "alice")

	assert.Equal(t, UserRegistered, gotEvent)
	assert.Equal(t, "alice", gotPayload)
}
