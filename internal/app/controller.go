package app

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"mnemo-go/internal/events"
	"mnemo-go/internal/models"
	"mnemo-go/internal/repository"
	"mnemo-go/internal/session"
)

// Subscriber receives a fresh state snapshot after every command.
type Subscriber func(models.AppState)

// Subscription identifies a registered subscriber for later removal.
// Duplicate subscribers are permitted; each gets its own handle.
type Subscription int

// Controller holds the single source of truth for UI-relevant state. It is
// the only writer of its AppState: every command goes through the repository
// and the session holder, updates the cached state, and pushes an immutable
// snapshot to every subscriber.
type Controller struct {
	mu          sync.Mutex
	repo        *repository.Repository
	sessions    *session.Holder
	bus         *events.Bus
	log         *zap.Logger
	notifyTTL   time.Duration
	state       models.AppState
	subscribers []subscriberEntry
	nextSubID   Subscription
	timers      map[string]*time.Timer
	activeTest  *testRun
	closed      bool
}

type subscriberEntry struct {
	id Subscription
	fn Subscriber
}

// New assembles a Controller from its collaborators. A persisted session is
// restored immediately so a restart comes back logged in.
func New(repo *repository.Repository, sessions *session.Holder, bus *events.Bus, log *zap.Logger, notifyTTL time.Duration) *Controller {
	c := &Controller{
		repo:      repo,
		sessions:  sessions,
		bus:       bus,
		log:       log,
		notifyTTL: notifyTTL,
		timers:    make(map[string]*time.Timer),
	}
	c.state = models.AppState{
		CurrentView:   models.ViewHome,
		Tasks:         repo.Tasks(),
		Users:         repo.Accounts(),
		Notifications: []models.Notification{},
	}
	if sess := sessions.Get(); sess != nil && sess.IsAuthenticated {
		c.state.CurrentUser = sess.User
		c.state.IsAuthenticated = true
	}
	return c
}

// Subscribe registers fn to receive state snapshots and returns its handle.
func (c *Controller) Subscribe(fn Subscriber) Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubID++
	c.subscribers = append(c.subscribers, subscriberEntry{id: c.nextSubID, fn: fn})
	return c.nextSubID
}

// Unsubscribe removes the subscriber identified by sub.
func (c *Controller) Unsubscribe(sub Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.subscribers {
		if c.subscribers[i].id == sub {
			c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
			return
		}
	}
}

// State returns a copy of the current state.
func (c *Controller) State() models.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels every pending notification expiry timer and the active test
// countdown. Commands after Close still work; they just stop scheduling
// timers.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.stopTestLocked()
}

// Login authenticates and, on success, stores the session, announces the
// login and broadcasts. On failure the unchanged state is still broadcast so
// views settle; error display is the caller's concern.
func (c *Controller) Login(username, password string) bool {
	account := c.repo.Authenticate(username, password)
	if account == nil {
		c.broadcast()
		return false
	}

	c.sessions.Set(account)

	c.mu.Lock()
	c.state.CurrentUser = account
	c.state.IsAuthenticated = true
	c.appendNotificationLocked(models.NotifySuccess, fmt.Sprintf("Добро пожаловать, %s!", account.Username))
	c.mu.Unlock()

	c.bus.Notify(events.UserLogin, account.Clone())
	c.broadcast()
	return true
}

// Register delegates to the repository and passes its result through
// verbatim. The cached account list is refreshed on success.
func (c *Controller) Register(username, password string) repository.RegisterResult {
	result := c.repo.Register(username, password)

	if result.Success {
		c.mu.Lock()
		c.state.Users = c.repo.Accounts()
		c.appendNotificationLocked(models.NotifySuccess, "Регистрация успешна!")
		c.mu.Unlock()
		c.bus.Notify(events.UserRegistered, result.Account)
	}

	c.broadcast()
	return result
}

// Logout clears the session and resets the view to home.
func (c *Controller) Logout() {
	c.sessions.Clear()

	c.mu.Lock()
	c.state.CurrentUser = nil
	c.state.IsAuthenticated = false
	c.state.CurrentView = models.ViewHome
	c.stopTestLocked()
	c.appendNotificationLocked(models.NotifyInfo, "Вы вышли из системы")
	c.mu.Unlock()

	c.bus.Notify(events.UserLogout, nil)
	c.broadcast()
}

// SetView is a pure state transition; reachability guards live in the
// presentation layer.
func (c *Controller) SetView(view string) {
	c.mu.Lock()
	c.state.CurrentView = view
	c.mu.Unlock()
	c.broadcast()
}

// SelectTask sets the selected task and switches to the detail view.
func (c *Controller) SelectTask(task *models.Task) {
	c.mu.Lock()
	c.state.SelectedTask = task.Clone()
	c.state.CurrentView = models.ViewTaskDetail
	c.mu.Unlock()
	c.broadcast()
}

// CompleteTask records a completion for the logged-in account and refreshes
// the cached account from the persisted collection so the achievement shows
// up. Without a logged-in account this is a no-op with no broadcast.
func (c *Controller) CompleteTask(taskID string) {
	c.mu.Lock()
	current := c.state.CurrentUser
	if current == nil {
		c.mu.Unlock()
		return
	}
	userID := current.ID
	c.mu.Unlock()

	c.repo.CompleteTask(userID, taskID)

	refreshed := c.findAccount(userID)

	c.mu.Lock()
	if refreshed != nil {
		c.state.CurrentUser = refreshed
	}
	c.state.Users = c.repo.Accounts()
	c.appendNotificationLocked(models.NotifySuccess, "Задание выполнено! Получено достижение!")
	c.mu.Unlock()

	c.bus.Notify(events.TaskCompleted, map[string]string{"userId": userID, "taskId": taskID})
	c.broadcast()
}

// ChangePassword verifies the current password and replaces it. Both
// outcomes surface through a notification; failure additionally returns
// false.
func (c *Controller) ChangePassword(oldPassword, newPassword string) bool {
	c.mu.Lock()
	current := c.state.CurrentUser
	if current == nil || !current.CheckPassword(oldPassword) {
		c.appendNotificationLocked(models.NotifyError, "Неверный текущий пароль")
		c.mu.Unlock()
		c.broadcast()
		return false
	}

	updated := current.Clone()
	if err := updated.SetPassword(newPassword); err != nil {
		c.log.Error("Failed to hash new password", zap.Error(err))
		c.appendNotificationLocked(models.NotifyError, "Не удалось изменить пароль")
		c.mu.Unlock()
		c.broadcast()
		return false
	}
	c.state.CurrentUser = updated
	c.mu.Unlock()

	c.repo.UpdateAccount(updated)
	c.sessions.Set(updated)

	c.mu.Lock()
	c.appendNotificationLocked(models.NotifySuccess, "Пароль успешно изменен")
	c.mu.Unlock()

	c.broadcast()
	return true
}

// findAccount fetches a fresh copy of one account from the repository.
func (c *Controller) findAccount(id string) *models.Account {
	accounts := c.repo.Accounts()
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}

// snapshotLocked builds an immutable copy of the state. Accounts in the
// snapshot carry no credential hash; the internal state keeps it so
// ChangePassword can verify the current password. Callers must hold mu.
func (c *Controller) snapshotLocked() models.AppState {
	snap := c.state
	snap.CurrentUser = c.state.CurrentUser.Sanitize()
	snap.SelectedTask = c.state.SelectedTask.Clone()
	snap.Tasks = append([]models.Task(nil), c.state.Tasks...)
	snap.Users = make([]models.Account, len(c.state.Users))
	for i := range c.state.Users {
		snap.Users[i] = *c.state.Users[i].Sanitize()
	}
	snap.Notifications = append([]models.Notification(nil), c.state.Notifications...)
	return snap
}

// broadcast delivers the current snapshot to every subscriber, in
// subscription order, outside the state lock. A panicking subscriber is
// logged and skipped.
func (c *Controller) broadcast() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	subs := append([]subscriberEntry(nil), c.subscribers...)
	c.mu.Unlock()

	for _, s := range subs {
		c.safeDeliver(s.fn, snap)
	}
}

func (c *Controller) safeDeliver(fn Subscriber, snap models.AppState) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("State subscriber panicked", zap.Any("panic", r))
		}
	}()
	fn(snap)
}
