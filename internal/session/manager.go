// Package session issues and resolves the opaque tokens that identify a
// logged-in browser. Tokens carry no user data; they are random handles
// resolved against server-side state, so the backing store can move out
// of process without changing the contract.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// CookieName is the cookie the token travels in.
const CookieName = "session_token"

const tokenBytes = 64

// Store binds tokens to usernames for a bounded lifetime.
// Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, token string, username string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, bool, error)
	Delete(ctx context.Context, token string) error
}

type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Create issues a fresh unguessable token bound to username. A user may
// hold any number of concurrent sessions.
func (m *Manager) Create(ctx context.Context, username string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	if err := m.store.Save(ctx, token, username, m.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Resolve returns the bound username, or ok=false for an unknown or
// expired token.
func (m *Manager) Resolve(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	return m.store.Get(ctx, token)
}

// Destroy removes the binding. Destroying an unknown token is a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// TTL reports the session lifetime, used to bound the cookie's max age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
