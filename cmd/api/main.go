package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/poolcraft/backoffice/internal/api"
	"github.com/poolcraft/backoffice/internal/api/handlers"
	"github.com/poolcraft/backoffice/internal/queue/tasks"
	"github.com/poolcraft/backoffice/internal/repository"
	"github.com/poolcraft/backoffice/internal/services"
	"github.com/poolcraft/backoffice/pkg/cache"
	"github.com/poolcraft/backoffice/pkg/config"
	"github.com/poolcraft/backoffice/pkg/database"
	"github.com/poolcraft/backoffice/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting pool back-office API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)
	if cfg.UsesDefaultSecret() {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
	}

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, database.Options{
		Verbose:       cfg.IsDevelopment(),
		SlowThreshold: 500 * time.Millisecond,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()
	log.Info("database connected")

	// Redis backs the public listing cache and the task queue. Neither is on
	// the critical path, so a failed ping is only logged.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer func() { _ = rdb.Close() }()
	var publicCache cache.Cache = cache.NewRedisCache(rdb, "backoffice")
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, public cache disabled and follow-up scheduling degraded", zap.Error(err))
		publicCache = cache.Noop{}
	}

	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer func() { _ = queue.Close() }()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	updateRepo := repository.NewProjectUpdateRepository(db)
	contactRepo := repository.NewContactRepository(db)
	contentRepo := repository.NewContentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.JWTTTL)
	projectSvc := services.NewProjectService(projectRepo, updateRepo, publicCache, cfg.PublicCacheTTL)
	documentSvc := services.NewProjectDocumentService(projectRepo, publicCache)
	contactSvc := services.NewContactService(contactRepo, userRepo, tasks.NewEnqueuer(queue))
	contentSvc := services.NewContentService(contentRepo)
	adminSvc := services.NewAdminService(userRepo, statsRepo)

	router := api.NewRouter(api.Dependencies{
		Tokens:         authSvc,
		FrontendURL:    cfg.FrontendURL,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,

		HealthHandler: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		AuthHandler:             handlers.NewAuthHandler(authSvc, cfg.JWTTTL, cfg.AppEnv == "production"),
		ProjectsHandler:         handlers.NewProjectsHandler(projectSvc),
		ProjectDocumentsHandler: handlers.NewProjectDocumentsHandler(documentSvc),
		ContactsHandler:         handlers.NewContactsHandler(contactSvc),
		ContentHandler:          handlers.NewContentHandler(contentSvc),
		AdminHandler:            handlers.NewAdminHandler(adminSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
