package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mnemo-go/internal/models"
	"mnemo-go/internal/store"
)

func testAccount() *models.Account {
	return &models.Account{
		ID:             "2",
		Username:       "user",
		Achievements:   []models.Achievement{},
		CompletedTasks: []string{},
		CreatedAt:      time.Now(),
		LastLogin:      time.Now(),
	}
}

func TestHolder_SetThenGet(t *testing.T) {
	h := NewHolder(store.NewMemStore(), zap.NewNop())

	h.Set(testAccount())

	sess := h.Get()
	require.NotNil(t, sess)
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "user", sess.User.Username)
}

func TestHolder_GetWithoutSession(t *testing.T) {
	h := NewHolder(store.NewMemStore(), zap.NewNop())
	assert.Nil(t, h.Get())
}

func TestHolder_HydratesFromStore(t *testing.T) {
	blobs := store.NewMemStore()

	first := NewHolder(blobs, zap.NewNop())
	first.Set(testAccount())

	// A fresh holder over the same store simulates a process restart.
	second := NewHolder(blobs, zap.NewNop())
	sess := second.Get()
	require.NotNil(t, sess)
	assert.Equal(t, "2", sess.User.ID)
}

func TestHolder_ClearEmptiesMemoryAndStore(t *testing.T) {
	blobs := store.NewMemStore()

	h := NewHolder(blobs, zap.NewNop())
	h.Set(testAccount())
	h.Clear()

	assert.Nil(t, h.Get())

	// The persisted copy is gone too: a restart stays logged out.
	restarted := NewHolder(blobs, zap.NewNop())
	assert.Nil(t, restarted.Get())
}

func TestHolder_GetReturnsCopy(t *testing.T) {
	h := NewHolder(store.NewMemStore(), zap.NewNop())
	h.Set(testAccount())

	sess := h.Get()
	sess.User.Username = "mutated"

	assert.Equal(t, "user", h.Get().User.Username)
}
