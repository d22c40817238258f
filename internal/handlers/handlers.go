package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"stageai/api/internal/config"
	"stageai/api/internal/gen"
	"stageai/api/internal/middleware"
	"stageai/api/internal/repository"
	"stageai/api/internal/service"
	"stageai/api/internal/session"
	"stageai/api/internal/storage"
)

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	auth       *service.AuthService
	generation *service.GenerationService
	sessions   *session.Manager
	artifacts  storage.ArtifactStore

	// db and cache are nil when the memory drivers are selected; the
	// health endpoint skips what is not wired.
	db    *pgxpool.Pool
	cache *redis.Client
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	auth *service.AuthService,
	generation *service.GenerationService,
	sessions *session.Manager,
	artifacts storage.ArtifactStore,
	db *pgxpool.Pool,
	cache *redis.Client,
) HandlerSet {
	return HandlerSet{
		log:        log,
		cfg:        cfg,
		auth:       auth,
		generation: generation,
		sessions:   sessions,
		artifacts:  artifacts,
		db:         db,
		cache:      cache,
	}
}

func (h HandlerSet) Register(router gin.IRouter) {
	router.GET("/healthz", h.Health)

	router.POST("/register", h.RegisterUser)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	router.POST("/chat", h.gate(h.cfg.Policy.RequireAuthChat), h.Chat)
	router.POST("/generate-text", middleware.RequireSession(h.sessions), h.GenerateText)
	router.POST("/generate-image", h.gate(h.cfg.Policy.RequireAuthImage), h.GenerateImage)

	router.GET("/history", middleware.RequireSession(h.sessions), h.History)
	router.GET("/image/:filename", h.ServeImage)
}

// gate picks the session middleware for the endpoints whose auth
// requirement is deployment policy.
func (h HandlerSet) gate(required bool) gin.HandlerFunc {
	if required {
		return middleware.RequireSession(h.sessions)
	}
	return middleware.OptionalSession(h.sessions)
}

// renderError maps domain errors to a status code and a stable reason.
// Upstream and driver error text never reaches the client.
func (h HandlerSet) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gen.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty_prompt", "message": "prompt is required"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "username and password are required"})
	case errors.Is(err, repository.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "already_exists", "message": "username is already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "invalid username or password"})
	case errors.Is(err, gen.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "not_configured", "message": "text generation is not configured"})
	case errors.Is(err, gen.ErrUpstream):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upstream_error", "message": "text generation failed"})
	case errors.Is(err, gen.ErrGeneration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation_error", "message": "image generation failed"})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "internal error"})
	}
}
