package session

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"mnemo-go/internal/models"
	"mnemo-go/internal/store"
)

const sessionKey = "session"

// Holder is the single process-wide session slot. It is handed to whoever
// assembles the application rather than living as a package global, so the
// controller stays independently testable.
//
// A session never expires on its own; it lasts until Clear.
type Holder struct {
	mu       sync.Mutex
	store    store.Store
	log      *zap.Logger
	current  *models.Session
	hydrated bool
}

// NewHolder creates a Holder persisting through the given store.
func NewHolder(s store.Store, log *zap.Logger) *Holder {
	return &Holder{store: s, log: log}
}

// Set stores the authenticated account in memory and persists it so a
// restart restores the session.
func (h *Holder) Set(account *models.Account) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = &models.Session{User: account.Clone(), IsAuthenticated: true}
	h.hydrated = true

	raw, err := json.Marshal(h.current)
	if err != nil {
		h.log.Error("Failed to marshal session", zap.Error(err))
		return
	}
	if err := h.store.Set(sessionKey, string(raw)); err != nil {
		h.log.Error("Failed to persist session", zap.Error(err))
	}
}

// Get returns the current session, hydrating from the store at most once per
// process lifetime. Returns nil when nobody is logged in.
func (h *Holder) Get() *models.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil && !h.hydrated {
		h.hydrated = true
		raw, ok, err := h.store.Get(sessionKey)
		if err != nil {
			h.log.Error("Failed to read session from store", zap.Error(err))
			return nil
		}
		if ok {
			var sess models.Session
			if err := json.Unmarshal([]byte(raw), &sess); err != nil {
				h.log.Error("Corrupt session blob, discarding", zap.Error(err))
				return nil
			}
			h.current = &sess
		}
	}
	if h.current == nil {
		return nil
	}
	cp := *h.current
	cp.User = h.current.User.Clone()
	return &cp
}

// Clear empties the slot and the persisted copy.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = nil
	h.hydrated = true
	if err := h.store.Delete(sessionKey); err != nil {
		h.log.Error("Failed to clear persisted session", zap.Error(err))
	}
}
