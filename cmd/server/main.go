package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/config"
	"github.com/polinatih/school-proj/internal/api/handler"
	"github.com/polinatih/school-proj/internal/api/middleware"
	"github.com/polinatih/school-proj/internal/api/router"
	"github.com/polinatih/school-proj/internal/repository"
	"github.com/polinatih/school-proj/internal/service"
	"github.com/polinatih/school-proj/pkg/database"
	"github.com/polinatih/school-proj/pkg/identity"
	"github.com/polinatih/school-proj/pkg/jwt"
	applogger "github.com/polinatih/school-proj/pkg/logger"
	"github.com/polinatih/school-proj/pkg/metrics"
	"github.com/polinatih/school-proj/pkg/redis"
	"github.com/polinatih/school-proj/pkg/storage"
)

func main() {
	// 0. optional .env for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	// 1. configuration
	cfg, err := config.Load(os.Getenv("SCHOOL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("enforce_roles", cfg.Auth.EnforceRoles),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. redis (optional: rate limiting is skipped without it)
	var rdb *redis.Client
	var limiter middleware.Limiter
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			limiter = rdb
		}
	}

	// 5. sessions, roles and metrics
	jwtMgr := jwt.NewManager(&cfg.Auth)
	m := metrics.New()

	var base identity.Resolver
	if cfg.Auth.Provider.Enabled() {
		base = identity.NewClient(&cfg.Auth.Provider, logger)
		logger.Info("roles resolved by identity provider", zap.String("base_url", cfg.Auth.Provider.BaseURL))
	} else {
		base = identity.NewStaticResolver(cfg.Auth.StaticRoles)
		logger.Warn("no identity provider configured, using static roles", zap.Int("users", len(cfg.Auth.StaticRoles)))
	}
	resolver := identity.NewCachingResolver(base, cfg.Auth.RoleCacheTTL)

	// 6. object storage (optional: uploads answer 503 without it)
	var objects service.ObjectStore
	if cfg.Storage.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := storage.NewClient(ctx, &cfg.Storage, logger)
		cancel()
		if err != nil {
			logger.Warn("object storage unavailable, uploads disabled", zap.Error(err))
		} else {
			objects = store
		}
	}

	// 7. dependency injection: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, objects, logger)
	h := handler.NewHandler(svc)

	// 8. routes
	engine := router.Setup(cfg, h, router.Deps{
		JWT:      jwtMgr,
		Resolver: resolver,
		Limiter:  limiter,
		Metrics:  m,
		DB:       db,
		Logger:   logger,
	})

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
