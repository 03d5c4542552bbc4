package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tanvir/courierpay/internal/adapter/http/handler"
	"github.com/tanvir/courierpay/internal/adapter/http/middleware"
	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/infrastructure/auth"
	"github.com/tanvir/courierpay/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ParcelHandler    *handler.ParcelHandler
	CashoutHandler   *handler.CashoutHandler
	EarningsHandler  *handler.EarningsHandler
	AuthHandler      *handler.AuthHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	RequestLogger    *middleware.LoggingMiddleware
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RequestLogger != nil {
		r.Use(cfg.RequestLogger.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			if cfg.AuthHandler != nil {
				r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)
				r.With(requireRole(cfg, domain.RoleAdmin)).
					Post("/auth/register", cfg.AuthHandler.Register)
			}

			// Parcels
			r.Route("/parcels", func(r chi.Router) {
				r.With(requireRole(cfg, domain.RoleDispatcher)).
					Post("/", cfg.ParcelHandler.Create)
				r.Get("/{id}", cfg.ParcelHandler.Get)
				r.With(requireRole(cfg, domain.RoleDispatcher)).
					Post("/{id}/assign", cfg.ParcelHandler.AssignRider)
				r.With(requireRole(cfg, domain.RoleDispatcher, domain.RoleRider)).
					Patch("/{id}/status", cfg.ParcelHandler.UpdateStatus)

				if cfg.AuditHandler != nil {
					r.With(requireRole(cfg, domain.RoleAdmin)).
						Get("/{id}/audit", cfg.AuditHandler.ParcelTrail)
				}
			})

			// Cash-outs
			r.With(requireRole(cfg, domain.RoleRider)).
				Post("/cashouts", cfg.CashoutHandler.Create)

			// Riders
			r.Route("/riders/{id}", func(r chi.Router) {
				r.Get("/parcels", cfg.ParcelHandler.ListByRider)
				r.Get("/cashouts", cfg.EarningsHandler.ListCashouts)
				r.Get("/earnings", cfg.EarningsHandler.GetSummary)
			})
		})
	})

	return r
}

// requireRole gates a route on role when auth is enabled; with auth disabled
// every caller passes.
func requireRole(cfg RouterConfig, roles ...domain.Role) func(http.Handler) http.Handler {
	if !cfg.AuthEnabled {
		return func(next http.Handler) http.Handler { return next }
	}

	return middleware.RequireRole(roles...)
}
