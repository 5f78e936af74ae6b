package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore_GetMissingKey(t *testing.T) {
	s := NewMemStore()

	value, ok, err := s.Get("users")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestMemStore_SetReplacesWholesale(t *testing.T) {
	s := NewMemStore()

	require.NoError(t, s.Set("tasks", `[{"id":"1"}]`))
	require.NoError(t, s.Set("tasks", `[]`))

	value, ok, err := s.Get("tasks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, value)
}

func TestMemStore_DeleteAbsentKeyIsNoError(t *testing.T) {
	s := NewMemStore()

	require.NoError(t, s.Set("session", `{}`))
	require.NoError(t, s.Delete("session"))
	require.NoError(t, s.Delete("session"))

	_, ok, err := s.Get("session")
	require.NoError(t, err)
	assert.False(t, ok)
}
