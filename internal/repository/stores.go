package repository

import (
	"context"
	"errors"

	"stageai/api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already registered")
)

// UserStore holds credentials. Implementations must be safe for
// concurrent use.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// HistoryStore is an append-only ledger of generation requests.
// ListByUser returns a user's entries in creation order.
type HistoryStore interface {
	Append(ctx context.Context, entry models.HistoryEntry) error
	ListByUser(ctx context.Context, username string) ([]models.HistoryEntry, error)
}
