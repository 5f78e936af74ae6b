package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is a registered user, learner or administrator.
// The JSON shape matches the persisted `users` blob.
type Account struct {
	ID             string        `json:"id" yaml:"id"`
	Username       string        `json:"username" yaml:"username"`
	Password       string        `json:"password" yaml:"password"` // bcrypt hash
	IsAdmin        bool          `json:"isAdmin" yaml:"isAdmin"`
	Achievements   []Achievement `json:"achievements" yaml:"achievements"`
	CompletedTasks []string      `json:"completedTasks" yaml:"completedTasks"`
	CreatedAt      time.Time     `json:"createdAt" yaml:"createdAt"`
	LastLogin      time.Time     `json:"lastLogin" yaml:"lastLogin"`
	IsBlocked      bool          `json:"isBlocked" yaml:"isBlocked"`
}

// CheckPassword compares a candidate password against the stored hash.
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// SetPassword replaces the stored credential with a hash of password.
func (a *Account) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashed)
	return nil
}

// HasCompleted reports whether taskID is already in the completed list.
func (a *Account) HasCompleted(taskID string) bool {
	for _, id := range a.CompletedTasks {
		if id == taskID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so state snapshots cannot alias repository data.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Achievements = append([]Achievement(nil), a.Achievements...)
	cp.CompletedTasks = append([]string(nil), a.CompletedTasks...)
	return &cp
}

// Sanitize returns a deep copy with the credential hash stripped. Every
// account that leaves the process goes through this; only the persisted
// `users` blob keeps the hash.
func (a *Account) Sanitize() *Account {
	cp := a.Clone()
	if cp != nil {
		cp.Password = ""
	}
	return cp
}

// Achievement is a badge granted on first completion of a task. EarnedAt is
// unset on a task's template and stamped when the badge is copied onto an
// account.
type Achievement struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Icon        string     `json:"icon" yaml:"icon"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty" yaml:"earnedAt,omitempty"`
}
