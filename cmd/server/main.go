package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/tanvir/courierpay/internal/adapter/http"
	"github.com/tanvir/courierpay/internal/adapter/http/handler"
	"github.com/tanvir/courierpay/internal/adapter/http/middleware"
	postgresRepo "github.com/tanvir/courierpay/internal/adapter/repository/postgres"
	redisRepo "github.com/tanvir/courierpay/internal/adapter/repository/redis"
	"github.com/tanvir/courierpay/internal/infrastructure/auth"
	"github.com/tanvir/courierpay/internal/infrastructure/config"
	"github.com/tanvir/courierpay/internal/infrastructure/eventpublisher"
	"github.com/tanvir/courierpay/internal/infrastructure/logging"
	"github.com/tanvir/courierpay/internal/infrastructure/metrics"
	"github.com/tanvir/courierpay/internal/infrastructure/postgres"
	"github.com/tanvir/courierpay/internal/infrastructure/redis"
	"github.com/tanvir/courierpay/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// slog callers (migrator, retrier, event publisher) share the same level
	// and format as the zerolog side.
	appLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(appLogger.Logger)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, resolveMigrationsPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	parcelRepo := postgresRepo.NewParcelRepository(pool)
	cashoutRepo := postgresRepo.NewCashoutRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)

	// With events disabled the null outbox swallows writes and the
	// publisher never starts.
	var outboxRepo usecase.OutboxRepository = postgresRepo.NewOutboxRepository(pool)
	if !cfg.EventsEnabled {
		outboxRepo = postgresRepo.NewNullOutboxRepository()
		log.Info().Msg("outbox event publishing disabled")
	}
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	appMetrics := metrics.New()

	minimum, err := decimal.NewFromString(cfg.CashoutMinimum)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.CashoutMinimum).Msg("invalid cash-out minimum")
	}

	// Initialize use cases
	settlementUC := usecase.NewSettlementUseCase(
		txManager, parcelRepo, cashoutRepo, outboxRepo, auditRepo,
		idGen, cache, appMetrics, minimum, cfg.CashoutMaxRetries,
	).WithRetrier(postgresRepo.NewRetrier())
	parcelUC := usecase.NewParcelUseCase(txManager, parcelRepo, outboxRepo, idGen, appMetrics).
		WithAudit(auditRepo)
	earningsUC := usecase.NewEarningsUseCase(parcelRepo, cashoutRepo, cache)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	parcelHandler := handler.NewParcelHandler(parcelUC)
	cashoutHandler := handler.NewCashoutHandler(settlementUC)
	earningsHandler := handler.NewEarningsHandler(earningsUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	auditHandler := handler.NewAuditHandler(auditRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ParcelHandler:    parcelHandler,
		CashoutHandler:   cashoutHandler,
		EarningsHandler:  earningsHandler,
		AuthHandler:      authHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(100, 200, appMetrics),
		RequestLogger:    middleware.NewLoggingMiddleware(log.Logger),
		JWTManager:       jwtManager,
		AuthEnabled:      cfg.AuthEnabled,
	})

	// Start outbox publisher
	publisherCtx, cancelPublisher := context.WithCancel(ctx)
	defer cancelPublisher()

	if cfg.EventsEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  eventpublisher.NewLogPublisher(slog.Default()),
		})
		go func() {
			if err := publisher.Start(publisherCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancelPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func resolveMigrationsPath() string {
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		return path
	}
	return "migrations"
}
