package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateResolveDestroy(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	token, err := m.Create(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, ok, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	require.NoError(t, m.Destroy(ctx, token))

	_, ok, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManagerDestroyUnknownTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	assert.NoError(t, m.Destroy(ctx, "never-issued"))
}

func TestManagerTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	t1, err := m.Create(ctx, "alice")
	require.NoError(t, err)
	t2, err := m.Create(ctx, "alice")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)

	// both sessions stay valid: multiple devices per user
	_, ok, _ := m.Resolve(ctx, t1)
	assert.True(t, ok)
	_, ok, _ = m.Resolve(ctx, t2)
	assert.True(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, "tok", "alice", -time.Second))

	_, ok, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = store.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestManagerResolveEmptyToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)

	_, ok, err := m.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}
