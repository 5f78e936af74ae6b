package app

import (
	"time"

	"mnemo-go/internal/models"
	"mnemo-go/internal/repository"
)

// appendNotificationLocked enqueues a notification and schedules its removal
// after the configured TTL. The timer handle is kept so Close can cancel it;
// a discarded controller never fires a stray mutation. Callers must hold mu.
func (c *Controller) appendNotificationLocked(severity, message string) {
	n := models.Notification{
		ID:        repository.GenerateID(),
		Type:      severity,
		Message:   message,
		Timestamp: time.Now(),
	}
	c.state.Notifications = append(c.state.Notifications, n)

	if c.closed {
		return
	}
	id := n.ID
	c.timers[id] = time.AfterFunc(c.notifyTTL, func() {
		c.expireNotification(id)
	})
}

// expireNotification drops one notification from the queue and broadcasts
// the shrunken state.
func (c *Controller) expireNotification(id string) {
	c.mu.Lock()
	if _, ok := c.timers[id]; !ok {
		// Cancelled by Close between firing and locking.
		c.mu.Unlock()
		return
	}
	delete(c.timers, id)
	queue := c.state.Notifications[:0:0]
	for _, n := range c.state.Notifications {
		if n.ID != id {
			queue = append(queue, n)
		}
	}
	c.state.Notifications = queue
	c.mu.Unlock()

	c.broadcast()
}
