package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"stageai/api/internal/cache"
	"stageai/api/internal/config"
	"stageai/api/internal/database"
	"stageai/api/internal/gen"
	"stageai/api/internal/handlers"
	"stageai/api/internal/jobs"
	"stageai/api/internal/log"
	"stageai/api/internal/repository"
	"stageai/api/internal/server"
	"stageai/api/internal/service"
	"stageai/api/internal/session"
	"stageai/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	var (
		dbPool  *pgxpool.Pool
		users   repository.UserStore
		history repository.HistoryStore
	)
	switch cfg.Storage.Driver {
	case "postgres":
		if err := database.Migrate(cfg.Postgres.DSN); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}
		dbPool, err = database.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect postgres")
		}
		users = repository.NewPostgresUserStore(dbPool)
		history = repository.NewPostgresHistoryStore(dbPool)
	default:
		users = repository.NewMemoryUserStore()
		history = repository.NewMemoryHistoryStore()
	}

	var (
		redisClient  *redis.Client
		sessionStore session.Store
		sweeper      jobs.Sweeper
	)
	switch cfg.Session.Driver {
	case "redis":
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		sessionStore = session.NewRedisStore(redisClient)
	default:
		memStore := session.NewMemoryStore()
		sessionStore = memStore
		sweeper = memStore
	}
	sessions := session.NewManager(sessionStore, cfg.Session.TTL)

	var artifacts storage.ArtifactStore
	switch cfg.Artifacts.Driver {
	case "minio":
		artifacts, err = storage.NewMinioStore(ctx, cfg.Artifacts)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init artifact store")
		}
	default:
		artifacts, err = storage.NewLocalStore(cfg.Artifacts.Dir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init artifact store")
		}
	}

	textClient := gen.NewChatClient(cfg.Text)
	pipeline := gen.NewImagePipeline(gen.LoaderFor(cfg.Image), logger)

	authService := service.NewAuthService(users, sessions, logger)
	generationService := service.NewGenerationService(textClient, pipeline, history, artifacts, logger)

	handlerSet := handlers.NewHandlerSet(logger, cfg, authService, generationService, sessions, artifacts, dbPool, redisClient)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(sweeper, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	if db != nil {
		db.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
