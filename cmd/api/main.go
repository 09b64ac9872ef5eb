// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/carterperez-dev/mindtrack/internal/admin"
	"github.com/carterperez-dev/mindtrack/internal/analytics"
	"github.com/carterperez-dev/mindtrack/internal/auth"
	"github.com/carterperez-dev/mindtrack/internal/config"
	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/habit"
	"github.com/carterperez-dev/mindtrack/internal/health"
	"github.com/carterperez-dev/mindtrack/internal/middleware"
	"github.com/carterperez-dev/mindtrack/internal/migration"
	"github.com/carterperez-dev/mindtrack/internal/mood"
	"github.com/carterperez-dev/mindtrack/internal/server"
	"github.com/carterperez-dev/mindtrack/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog := setupLogger(cfg.Log)
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"timezone", cfg.App.Timezone,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"driver", cfg.Database.Driver,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)

	if cfg.Database.AutoMigrate {
		runner, err := migration.ForDriver(db.DB, logger)
		if err != nil {
			return err
		}
		if _, err := runner.Apply(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var rdb *core.Redis
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		redisClient = rdb.Client
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	} else {
		logger.Warn("redis not configured, running without cache and token blacklist")
	}

	generated, err := auth.EnsureKeys(cfg.JWT)
	if err != nil {
		return err
	}
	if generated {
		logger.Warn("generated development signing keys",
			"private_key_path", cfg.JWT.PrivateKeyPath,
		)
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	loc := cfg.App.Location()

	var cache *analytics.Cache
	if cfg.Cache.Enabled && redisClient != nil {
		cache = analytics.NewCache(redisClient, cfg.Cache.TTL, logger)
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc, redisClient)
	authHandler := auth.NewHandler(authSvc)

	habitRepo := habit.NewRepository(db.DB)
	moodRepo := mood.NewRepository(db.DB)

	analyticsSvc := analytics.NewService(habitRepo, moodRepo,
		analytics.WithLocation(loc),
		analytics.WithCache(cache),
	)
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	habitSvc := habit.NewService(habitRepo,
		habit.WithLocation(loc),
		habit.WithInvalidator(analyticsSvc),
	)
	habitHandler := habit.NewHandler(habitSvc)

	moodSvc := mood.NewService(moodRepo,
		mood.WithLocation(loc),
		mood.WithInvalidator(analyticsSvc),
	)
	moodHandler := mood.NewHandler(moodSvc)

	var redisChecker health.Checker
	if rdb.Enabled() {
		redisChecker = rdb
	}
	healthHandler := health.NewHandler(db, redisChecker)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: rdb.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redisPing(rdb),
		Counts: func(ctx context.Context) (admin.DomainCounts, error) {
			return domainCounts(ctx, userSvc, habitRepo, moodRepo)
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	if cfg.RateLimit.UserRequests > 0 {
		authenticator = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.UserRequests,
				cfg.RateLimit.UserBurst,
			),
			KeyFunc:  middleware.KeyByUser,
			FailOpen: true,
		}).After(authenticator)
	}
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		habitHandler.RegisterRoutes(r, authenticator)
		moodHandler.RegisterRoutes(r, authenticator)
		analyticsHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()
	healthHandler.SetReady(true)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func redisPing(rdb *core.Redis) func(context.Context) error {
	if !rdb.Enabled() {
		return nil
	}
	return rdb.Ping
}

func domainCounts(
	ctx context.Context,
	users *user.Service,
	habits habit.Repository,
	moods mood.Repository,
) (admin.DomainCounts, error) {
	userCount, err := users.Count(ctx)
	if err != nil {
		return admin.DomainCounts{}, err
	}

	habitCount, completionCount, err := habits.Counts(ctx)
	if err != nil {
		return admin.DomainCounts{}, err
	}

	moodCount, err := moods.Count(ctx)
	if err != nil {
		return admin.DomainCounts{}, err
	}

	return admin.DomainCounts{
		Users:       userCount,
		Habits:      habitCount,
		Completions: completionCount,
		Moods:       moodCount,
	}, nil
}

// setupLogger writes to stdout and, when log.file is set, to a rotating
// file as well. The returned func closes the file.
func setupLogger(cfg config.LogConfig) (*slog.Logger, func()) {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var out io.Writer = os.Stdout
	closeFn := func() {}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closeFn = func() { _ = rotator.Close() }
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler), closeFn
}
