package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"stageai/api/internal/ids"
	"stageai/api/internal/models"
	"stageai/api/internal/repository"
	"stageai/api/internal/security"
	"stageai/api/internal/session"
)

var (
	// ErrInvalidCredentials covers both unknown user and wrong password,
	// so a caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidInput = errors.New("username and password required")
)

type AuthService struct {
	users    repository.UserStore
	sessions *session.Manager
	log      zerolog.Logger
}

func NewAuthService(users repository.UserStore, sessions *session.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout destroys the session; unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}
