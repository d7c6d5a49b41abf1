// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zingbizz/blog-backend/internal/admin"
	"github.com/zingbizz/blog-backend/internal/auth"
	"github.com/zingbizz/blog-backend/internal/config"
	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/health"
	"github.com/zingbizz/blog-backend/internal/media"
	"github.com/zingbizz/blog-backend/internal/middleware"
	"github.com/zingbizz/blog-backend/internal/post"
	"github.com/zingbizz/blog-backend/internal/role"
	"github.com/zingbizz/blog-backend/internal/server"
	"github.com/zingbizz/blog-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	generateKeys := flag.Bool(
		"generate-keys",
		false,
		"generate a new ES256 key pair and exit",
	)
	privateKeyPath := flag.String(
		"private-key",
		"keys/private.pem",
		"private key output path for -generate-keys",
	)
	publicKeyPath := flag.String(
		"public-key",
		"keys/public.pem",
		"public key output path for -generate-keys",
	)
	flag.Parse()

	if *generateKeys {
		if err := auth.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			slog.Error("key generation error", "error", err)
			os.Exit(1)
		}
		slog.Info("key pair generated",
			"private_key", *privateKeyPath,
			"public_key", *publicKeyPath,
		)
		return
	}

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

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
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
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	// Role rows must exist before any signup resolves a label against them.
	roleRepo := role.NewRepository(db.DB)
	if err := role.Seed(ctx, roleRepo); err != nil {
		return err
	}
	logger.Info("roles seeded", "roles", role.All())

	var mediaStorage *media.Storage
	if cfg.Media.Enabled {
		mediaStorage, err = media.New(cfg.Media)
		if err != nil {
			return err
		}
		if err := mediaStorage.EnsureBucket(ctx); err != nil {
			return err
		}
		logger.Info("media storage connected",
			"endpoint", cfg.Media.Endpoint,
			"bucket", cfg.Media.Bucket,
		)
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, roleRepo)

	authSvc := auth.NewService(
		userSvc,
		jwtManager,
		redis.Client,
		cfg.JWT.SessionExpire,
	)
	authHandler := auth.NewHandler(authSvc)

	userHandler := user.NewHandler(userSvc, authSvc)

	postRepo := post.NewRepository(db.DB)
	postSvc := post.NewService(postRepo)

	var imageStorage post.ImageStorage
	if mediaStorage != nil {
		imageStorage = mediaStorage
	}
	postHandler := post.NewHandler(postSvc, imageStorage)

	healthCheckers := []health.NamedChecker{
		{Name: "database", Checker: db},
		{Name: "redis", Checker: redis},
	}
	if mediaStorage != nil {
		healthCheckers = append(healthCheckers, health.NamedChecker{
			Name:    "media",
			Checker: mediaStorage,
		})
	}
	healthHandler := health.NewHandler(healthCheckers...)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:       db.Stats,
		RedisStats:    redis.PoolStats,
		DBPing:        db.Ping,
		RedisPing:     redis.Ping,
		UserCount:     userSvc.Count,
		PostTotal:     postRepo.CountAll,
		PostPublished: postRepo.CountPublished,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := middleware.RequireAdmin
	editorOnly := middleware.RequireRole(role.Editor, role.Admin)

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		r.With(authenticator).Get("/auth/me", authHandler.Me(userSvc))

		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)

		postHandler.RegisterPublicRoutes(r)
		postHandler.RegisterRoutes(r, authenticator, editorOnly)

		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

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

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
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

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
