package models

import "time"

// Views the application can show.
const (
	ViewHome       = "home"
	ViewTasks      = "tasks"
	ViewHelp       = "help"
	ViewAccount    = "account"
	ViewAdmin      = "admin"
	ViewTaskDetail = "task-detail"
)

// Notification severities.
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
	NotifyWarning = "warning"
)

// Notification is a transient status message; the controller removes it from
// the queue after a fixed delay.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AppState is the snapshot the presentation layer renders from. It is a
// derived cache: the repository's persisted collections stay authoritative.
type AppState struct {
	CurrentUser     *Account       `json:"currentUser"`
	IsAuthenticated bool           `json:"isAuthenticated"`
	CurrentView     string         `json:"currentView"`
	SelectedTask    *Task          `json:"selectedTask"`
	Tasks           []Task         `json:"tasks"`
	Users           []Account      `json:"users"`
	Notifications   []Notification `json:"notifications"`
}

// Session is the persisted `session` blob.
type Session struct {
	User            *Account `json:"user"`
	IsAuthenticated bool     `json:"isAuthenticated"`
}
