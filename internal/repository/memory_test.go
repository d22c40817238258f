package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stageai/api/internal/models"
)

func TestMemoryUserStoreDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	original := models.User{ID: "1", Username: "alice", PasswordHash: []byte("hash-a")}
	require.NoError(t, store.Create(ctx, original))

	err := store.Create(ctx, models.User{ID: "2", Username: "alice", PasswordHash: []byte("hash-b")})
	assert.ErrorIs(t, err, ErrUserExists)

	// the original record is untouched
	got, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash-a"), got.PasswordHash)
}

func TestMemoryUserStoreNotFound(t *testing.T) {
	store := NewMemoryUserStore()

	_, err := store.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryHistoryStoreOrderAndScope(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, models.HistoryEntry{
			ID:       fmt.Sprintf("a%d", i),
			Username: "alice",
			Kind:     models.KindText,
			Prompt:   fmt.Sprintf("prompt %d", i),
		}))
		require.NoError(t, store.Append(ctx, models.HistoryEntry{
			ID:       fmt.Sprintf("b%d", i),
			Username: "bob",
			Kind:     models.KindImage,
		}))
	}

	entries, err := store.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, entry := range entries {
		assert.Equal(t, "alice", entry.Username)
		assert.Equal(t, fmt.Sprintf("prompt %d", i), entry.Prompt)
	}
}

func TestMemoryHistoryStoreEmpty(t *testing.T) {
	store := NewMemoryHistoryStore()

	entries, err := store.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
