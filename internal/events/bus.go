package events

import (
	"sync"

	"go.uber.org/zap"
)

// Domain events announced by the controller.
const (
	UserLogin      = "user-login"
	UserRegistered = "user-registered"
	UserLogout     = "user-logout"
	TaskCompleted  = "task-completed"
)

// Listener receives an event name and its payload.
type Listener func(event string, payload any)

// Subscription identifies a registered listener for later removal.
type Subscription struct {
	event string
	id    int
}

// Bus is a generic publish/subscribe register keyed by event name. Listeners
// are invoked synchronously in subscription order; a panicking listener is
// logged and skipped so it cannot block delivery to the rest.
type Bus struct {
	mu        sync.Mutex
	log       *zap.Logger
	listeners map[string][]entry
	nextID    int
}

type entry struct {
	id int
	fn Listener
}

// NewBus creates an empty event bus.
func NewBus(log *zap.Logger) *Bus {
	return &Bus{log: log, listeners: make(map[string][]entry)}
}

// Subscribe appends listener for event and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(event string, listener Listener) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners[event] = append(b.listeners[event], entry{id: b.nextID, fn: listener})
	return Subscription{event: event, id: b.nextID}
}

// Unsubscribe removes the listener identified by sub. Unknown handles are a
// no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.listeners[sub.event]
	for i := range entries {
		if entries[i].id == sub.id {
			b.listeners[sub.event] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Notify invokes every listener registered for event, in subscription order.
func (b *Bus) Notify(event string, payload any) {
	b.mu.Lock()
	entries := append([]entry(nil), b.listeners[event]...)
	b.mu.Unlock()

	for _, e := range entries {
		b.safeCall(event, e.fn, payload)
	}
}

func (b *Bus) safeCall(event string, fn Listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Event listener panicked",
				zap.String("event", event),
				zap.Any("panic", r))
		}
	}()
	fn(event, payload)
}
