package repository

import (
	"context"
	"sync"

	"stageai/api/internal/models"
)

// MemoryUserStore keeps users in a process-local map. It is the default
// driver for single-instance deployments and for tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return ErrUserExists
	}
	s.users[user.Username] = user
	return nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// MemoryHistoryStore appends entries to a slice, preserving insertion
// order.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

func (s *MemoryHistoryStore) Append(_ context.Context, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryHistoryStore) ListByUser(_ context.Context, username string) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.HistoryEntry, 0)
	for _, entry := range s.entries {
		if entry.Username == username {
			result = append(result, entry)
		}
	}
	return result, nil
}
