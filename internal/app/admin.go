package app

import (
	"time"

	"mnemo-go/internal/models"
	"mnemo-go/internal/repository"
)

// requireAdminLocked enforces the administrator role inside the command
// itself instead of trusting the presentation layer. On denial an error
// notification is queued and the command reports false. Callers must hold mu.
func (c *Controller) requireAdminLocked() bool {
	if c.state.CurrentUser == nil || !c.state.CurrentUser.IsAdmin {
		c.appendNotificationLocked(models.NotifyError, "Недостаточно прав для выполнения действия")
		return false
	}
	return true
}

// AddTask creates a new task with a generated id and persists the full task
// collection. Administrator only.
func (c *Controller) AddTask(task models.Task) bool {
	c.mu.Lock()
	if !c.requireAdminLocked() {
		c.mu.Unlock()
		c.broadcast()
		return false
	}
	task.ID = repository.GenerateID()
	task.CreatedAt = time.Now()
	c.state.Tasks = append(c.state.Tasks, task)
	tasks := append([]models.Task(nil), c.state.Tasks...)
	c.appendNotificationLocked(models.NotifySuccess, "Задание добавлено")
	c.mu.Unlock()

	c.repo.SaveTasks(tasks)
	c.broadcast()
	return true
}

// UpdateTask replaces the task with the same id, keeping its id and creation
// time. Unknown ids are a silent no-op. Administrator only.
func (c *Controller) UpdateTask(taskID string, updated models.Task) bool {
	c.mu.Lock()
	if !c.requireAdminLocked() {
		c.mu.Unlock()
		c.broadcast()
		return false
	}

	found := false
	for i := range c.state.Tasks {
		if c.state.Tasks[i].ID == taskID {
			updated.ID = taskID
			updated.CreatedAt = c.state.Tasks[i].CreatedAt
			c.state.Tasks[i] = updated
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		c.broadcast()
		return false
	}

	tasks := append([]models.Task(nil), c.state.Tasks...)
	c.appendNotificationLocked(models.NotifySuccess, "Задание обновлено")
	c.mu.Unlock()

	c.repo.SaveTasks(tasks)
	c.broadcast()
	return true
}

// DeleteTask filters the task out of the collection and persists the rest.
// Administrator only.
func (c *Controller) DeleteTask(taskID string) bool {
	c.mu.Lock()
	if !c.requireAdminLocked() {
		c.mu.Unlock()
		c.broadcast()
		return false
	}

	kept := c.state.Tasks[:0:0]
	for _, t := range c.state.Tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	c.state.Tasks = kept
	tasks := append([]models.Task(nil), kept...)
	c.appendNotificationLocked(models.NotifySuccess, "Задание удалено")
	c.mu.Unlock()

	c.repo.SaveTasks(tasks)
	c.broadcast()
	return true
}

// BlockUser toggles the blocked flag on exactly the targeted account and
// refreshes the cached account list. Administrator only.
func (c *Controller) BlockUser(userID string) bool {
	c.mu.Lock()
	if !c.requireAdminLocked() {
		c.mu.Unlock()
		c.broadcast()
		return false
	}
	c.mu.Unlock()

	accounts := c.repo.Accounts()
	var toggled *models.Account
	for i := range accounts {
		if accounts[i].ID == userID {
			accounts[i].IsBlocked = !accounts[i].IsBlocked
			toggled = &accounts[i]
			break
		}
	}
	if toggled == nil {
		c.broadcast()
		return false
	}
	c.repo.SaveAccounts(accounts)

	message := "Пользователь разблокирован"
	if toggled.IsBlocked {
		message = "Пользователь заблокирован"
	}

	c.mu.Lock()
	c.state.Users = accounts
	c.appendNotificationLocked(models.NotifySuccess, message)
	c.mu.Unlock()

	c.broadcast()
	return true
}
